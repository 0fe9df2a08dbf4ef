package certificateRoutes

import (
	"achievo/blockchain"
	certificateControllers "achievo/controllers/certificates"
	"achievo/middleware"
	certificateValidators "achievo/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/api/certificates")

	certGroup.Post("/issue", certificateValidators.IssueCertificate(), certificateControllers.IssueCertificate)
	certGroup.Put("/status/:certificate_id", certificateValidators.UpdateStatus(), certificateControllers.UpdateCertificateStatus)
	certGroup.Post("/revoke/:certificate_id", middleware.RequireRole(blockchain.RoleModerator), certificateControllers.RevokeCertificate)
}
