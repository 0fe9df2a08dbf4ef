package certificateValidator

import (
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

// IssueCertificate validator middleware
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LearnerName    string   `json:"learner_name" validate:"required"`
			CourseName     string   `json:"course_name" validate:"required"`
			OrganizationID string   `json:"organization_id" validate:"required"`
			LearnerWallet  string   `json:"learner_wallet" validate:"required"`
			Skills         []string `json:"skills"`
			Grade          string   `json:"grade"`
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

// UpdateStatus validator middleware
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status" validate:"required,oneof=pending active revoked"`
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
