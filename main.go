package main

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/ipfs"
	adminRouter "achievo/routers/adminRoutes"
	authRouter "achievo/routers/authRoutes"
	certificateRouter "achievo/routers/certificateRoutes"
	nftRouter "achievo/routers/nftRoutes"
	paymentRouter "achievo/routers/paymentRoutes"
	rewardRouter "achievo/routers/rewardRoutes"
	roleRouter "achievo/routers/roleRoutes"
	validationRouter "achievo/routers/validationRoutes"
	"achievo/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Ledger and content store handles are built once here, before the
	// listener starts, and shared read-only by all requests
	blockchain.Connect()
	ipfs.Connect()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,wallet_address",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "Server is running"})
	})

	authRouter.SetupAuthRoutes(app)
	certificateRouter.SetupCertificateRoutes(app)
	nftRouter.SetupNFTRoutes(app)
	rewardRouter.SetupRewardRoutes(app)
	paymentRouter.SetupPaymentRoutes(app)
	roleRouter.SetupRoleRoutes(app)
	adminRouter.SetupAdminRoutes(app)
	validationRouter.SetupValidationRoutes(app)

	utils.StartMirrorAudit()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
