package category

// Item is one category in the listing, with the number of products filed
// under it.
type Item struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}
