package validationRoutes

import (
	validationControllers "achievo/controllers/validation"

	"github.com/gofiber/fiber/v2"
)

func SetupValidationRoutes(app *fiber.App) {
	validationGroup := app.Group("/api/validation")

	validationGroup.Get("/certificate/:certificate_id", validationControllers.ValidateCertificate)
	validationGroup.Get("/certificate/:certificate_id/history", validationControllers.GetCertificateHistory)
}
