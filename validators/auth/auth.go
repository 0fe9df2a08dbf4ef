package authValidator

import (
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterIndividual validator middleware
func RegisterIndividual() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name" validate:"required,min=2"`
			DOB           string `json:"dob" validate:"required"`
			Email         string `json:"email" validate:"required,email"`
			WalletAddress string `json:"wallet_address" validate:"required"`
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

// RegisterOrganization validator middleware
func RegisterOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name" validate:"required,min=2"`
			ContactInfo   string `json:"contact_info" validate:"required"`
			WalletAddress string `json:"wallet_address" validate:"required"`
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
