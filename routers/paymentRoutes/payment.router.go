package paymentRoutes

import (
	paymentControllers "achievo/controllers/payments"
	paymentValidators "achievo/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/payments")

	paymentGroup.Post("/process", paymentValidators.Process(), paymentControllers.ProcessPayment)
}
