package nftRoutes

import (
	nftControllers "achievo/controllers/nft"
	"achievo/middleware"
	nftValidators "achievo/validators/nft"

	"github.com/gofiber/fiber/v2"
)

func SetupNFTRoutes(app *fiber.App) {
	nftGroup := app.Group("/api/nft")

	nftGroup.Post("/mint", middleware.RequireIdentity, nftValidators.Mint(), nftControllers.MintNFT)
	nftGroup.Post("/transfer", middleware.RequireIdentity, nftValidators.Transfer(), nftControllers.TransferNFT)
	nftGroup.Get("/owner/:owner_id", nftControllers.GetNFTsForOwner)
	nftGroup.Get("/token/:token_id", nftControllers.GetNFTToken)
	nftGroup.Get("/metadata", nftControllers.GetNFTMetadata)
}
