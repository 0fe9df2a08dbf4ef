package roleValidator

import (
	"achievo/blockchain"
	"achievo/middleware"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func validRoleNames() string {
	names := make([]string, 0, len(blockchain.RoleLevels))
	for name := range blockchain.RoleLevels {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// Assign validator middleware
func Assign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AccountID string `json:"account_id" validate:"required"`
			Role      string `json:"role" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := middleware.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Role != "" && !blockchain.ValidRole(reqData.Role) {
			errors["role"] = fmt.Sprintf("Invalid role. Valid roles: %s!", validRoleNames())
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Remove validator middleware
func Remove() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AccountID string `json:"account_id" validate:"required"`
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
