package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/lumamoveis/catalog-backend/internal/response"
)

// JWT guards a route with an HS256 bearer token signed with secret. The
// parsed token is stored in c.Locals("user").
func JWT(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(response.Error("Invalid or missing token", response.CodeUnauthorized, nil))
		},
	})
}
