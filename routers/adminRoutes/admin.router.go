package adminRoutes

import (
	"achievo/blockchain"
	adminControllers "achievo/controllers/admin"
	"achievo/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")

	// Legacy allow-set accounts pass RequireRole regardless of on-chain role
	adminGroup.Post("/verify-organization/:organization_id", middleware.RequireRole(blockchain.RoleAdmin), adminControllers.VerifyOrganization)
	adminGroup.Get("/users", middleware.RequireRole(blockchain.RoleAdmin), adminControllers.ListUsers)
}
