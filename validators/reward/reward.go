package rewardValidator

import (
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

// Grant validator middleware
func Grant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LearnerWallet string `json:"learner_wallet" validate:"required"`
			Milestone     string `json:"milestone" validate:"required"`
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
