package paymentValidator

import (
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

// Process validator middleware
func Process() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Amount       string `json:"amount" validate:"required,number"`
			SenderWallet string `json:"sender_wallet" validate:"required"`
			RecipientID  string `json:"recipient_id" validate:"required"`
			Purpose      string `json:"purpose"`
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
