package product

import "errors"

var ErrNotFound = errors.New("product not found")

// ErrorKind enumerates the ways a list request can be rejected.
type ErrorKind int

const (
	InvalidPageNumber ErrorKind = iota + 1
	InvalidPageSize
	InvalidSortCriteria
	PageExceedsTotal
)

// Code is the machine-readable error code sent to API clients.
func (k ErrorKind) Code() string {
	switch k {
	case InvalidPageNumber:
		return "INVALID_PAGE_NUMBER"
	case InvalidPageSize:
		return "INVALID_PAGE_SIZE"
	case InvalidSortCriteria:
		return "INVALID_SORT_CRITERIA"
	case PageExceedsTotal:
		return "PAGE_EXCEEDS_TOTAL"
	}
	return "UNKNOWN"
}

func (k ErrorKind) String() string {
	switch k {
	case InvalidPageNumber:
		return "InvalidPageNumber"
	case InvalidPageSize:
		return "InvalidPageSize"
	case InvalidSortCriteria:
		return "InvalidSortCriteria"
	case PageExceedsTotal:
		return "PageExceedsTotal"
	}
	return "UnknownErrorKind"
}

// ValidationError is returned by Query when the request cannot be served.
// The failure is permanent for the given input.
type ValidationError struct {
	Kind ErrorKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidPageNumber:
		return "Page number must be greater than 0"
	case InvalidPageSize:
		return "Page size must be 12, 24, or 36"
	case InvalidSortCriteria:
		return "Invalid sort criteria"
	case PageExceedsTotal:
		return "Page number exceeds total pages"
	}
	return "invalid list request"
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidPageNumber   = &ValidationError{Kind: InvalidPageNumber}
	ErrInvalidPageSize     = &ValidationError{Kind: InvalidPageSize}
	ErrInvalidSortCriteria = &ValidationError{Kind: InvalidSortCriteria}
	ErrPageExceedsTotal    = &ValidationError{Kind: PageExceedsTotal}
)
