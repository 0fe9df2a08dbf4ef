package rewardRoutes

import (
	"achievo/blockchain"
	rewardControllers "achievo/controllers/rewards"
	"achievo/middleware"
	rewardValidators "achievo/validators/reward"

	"github.com/gofiber/fiber/v2"
)

func SetupRewardRoutes(app *fiber.App) {
	rewardGroup := app.Group("/api/rewards")

	rewardGroup.Post("/grant", middleware.RequireRole(blockchain.RoleModerator), rewardValidators.Grant(), rewardControllers.GrantReward)
	rewardGroup.Get("/list/:wallet_address", rewardControllers.ListRewards)
}
