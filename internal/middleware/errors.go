package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/lumamoveis/catalog-backend/internal/response"
)

// ErrorHandler renders errors that escaped a handler. Fiber errors keep
// their status; anything else is an unexpected 500 and is logged.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := response.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = response.CodeNotFound
		case fiber.StatusBadRequest:
			code = response.CodeValidation
		case fiber.StatusUnauthorized:
			code = response.CodeUnauthorized
		case fiber.StatusForbidden:
			code = response.CodeForbidden
		}
		return c.Status(fe.Code).JSON(response.Error(fe.Message, code, nil))
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.OriginalURL(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(response.Error("Internal server error", response.CodeInternal, nil))
}
