package authRoutes

import (
	authControllers "achievo/controllers/auth"
	authValidators "achievo/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register-individual", authValidators.RegisterIndividual(), authControllers.RegisterIndividual)
	authGroup.Post("/register-organization", authValidators.RegisterOrganization(), authControllers.RegisterOrganization)
}
