package adminController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"achievo/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// VerifyOrganization verifies a pending organization: ledger change call
// first, then the mirror flips Verified and Status together. The two fields
// never diverge.
func VerifyOrganization(c *fiber.Ctx) error {
	adminWallet := c.Locals("wallet").(string)
	organizationID := c.Params("organization_id")

	db := database.Database.Db

	var org models.Organization
	if err := db.Where("id = ?", organizationID).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	contract := blockchain.Chain.Account(adminWallet).
		Contract(config.AppConfig.ContractName,
			[]string{"get_organization"},
			[]string{"verify_organization"})

	_, err := contract.CallChange("verify_organization", fiber.Map{
		"organization_id": org.WalletAddress,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to verify on blockchain!")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"verified":    true,
		"status":      "verified",
		"verified_at": &now,
	}
	if err := db.Model(&org).Updates(updates).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: organization %s verification not mirrored: %v", organizationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify organization!", nil)
	}

	go utils.SendOrganizationVerifiedEmail(org.Name, org.ContactInfo)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Organization verified successfully!", fiber.Map{
		"organization_id": org.ID,
	})
}

// ListUsers dumps users and organizations from the mirror with counts.
func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list users!", nil)
	}

	var organizations []models.Organization
	if err := db.Find(&organizations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to list organizations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users and organizations retrieved successfully!", fiber.Map{
		"users":         users,
		"organizations": organizations,
		"counts": fiber.Map{
			"total_users":         len(users),
			"total_organizations": len(organizations),
		},
	})
}
