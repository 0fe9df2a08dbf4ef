package authController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// RegisterIndividual registers a learner: mirror uniqueness pre-check,
// ledger registration, then the mirror row. The ledger call always comes
// before the mirror write.
func RegisterIndividual(c *fiber.Ctx) error {
	reqData := new(struct {
		Name          string `json:"name"`
		DOB           string `json:"dob"`
		Email         string `json:"email"`
		WalletAddress string `json:"wallet_address"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Pre-write uniqueness check; not ledger-enforced, a race can still
	// create duplicates
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already exists!", nil)
	}

	contract := blockchain.Chain.Account(reqData.WalletAddress).
		Contract(config.AppConfig.ContractName,
			[]string{"get_individual"},
			[]string{"register_individual"})

	_, err := contract.CallChange("register_individual", fiber.Map{
		"name":  reqData.Name,
		"dob":   reqData.DOB,
		"email": reqData.Email,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to register on blockchain!")
	}

	newUser := models.User{
		Name:          reqData.Name,
		DOB:           reqData.DOB,
		Email:         reqData.Email,
		WalletAddress: reqData.WalletAddress,
		Type:          "individual",
		Status:        "active",
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: user %s registered on chain but not mirrored: %v", reqData.WalletAddress, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Individual registered successfully!", newUser)
}

// RegisterOrganization registers an organization as pending and unverified.
// Verified/status only flip together later through organization
// verification.
func RegisterOrganization(c *fiber.Ctx) error {
	reqData := new(struct {
		Name          string `json:"name"`
		ContactInfo   string `json:"contact_info"`
		WalletAddress string `json:"wallet_address"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("wallet_address = ?", reqData.WalletAddress).First(&models.Organization{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Organization already exists!", nil)
	}

	contract := blockchain.Chain.Account(reqData.WalletAddress).
		Contract(config.AppConfig.ContractName,
			[]string{"get_organization"},
			[]string{"register_organization"})

	_, err := contract.CallChange("register_organization", fiber.Map{
		"name":         reqData.Name,
		"contact_info": reqData.ContactInfo,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to register on blockchain!")
	}

	newOrg := models.Organization{
		Name:          reqData.Name,
		ContactInfo:   reqData.ContactInfo,
		WalletAddress: reqData.WalletAddress,
		Type:          "organization",
		Verified:      false,
		Status:        "pending",
	}

	if err := db.Create(&newOrg).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: organization %s registered on chain but not mirrored: %v", reqData.WalletAddress, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save organization!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Organization registered successfully (pending verification)!", newOrg)
}
