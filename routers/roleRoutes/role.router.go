package roleRoutes

import (
	"achievo/blockchain"
	roleControllers "achievo/controllers/roles"
	"achievo/middleware"
	roleValidators "achievo/validators/role"

	"github.com/gofiber/fiber/v2"
)

func SetupRoleRoutes(app *fiber.App) {
	roleGroup := app.Group("/api/roles")

	roleGroup.Post("/assign", middleware.RequireRole(blockchain.RoleAdmin), roleValidators.Assign(), roleControllers.AssignRole)
	roleGroup.Post("/remove", middleware.RequireRole(blockchain.RoleAdmin), roleValidators.Remove(), roleControllers.RemoveRole)
	roleGroup.Get("/user/:account_id", roleControllers.GetUserRole)
	roleGroup.Get("/me", middleware.RequireIdentity, roleControllers.GetMyRole)
}
