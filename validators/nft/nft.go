package nftValidator

import (
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

// Mint validator middleware
func Mint() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ReceiverID string `json:"receiver_id" validate:"required"`
			Metadata   *struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Media       string `json:"media"`
			} `json:"metadata" validate:"required"`
			CertificateID *uint `json:"certificate_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Transfer validator middleware
func Transfer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ReceiverID string `json:"receiver_id" validate:"required"`
			TokenID    string `json:"token_id" validate:"required"`
			Memo       string `json:"memo"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
