package validationController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ValidateCertificate reconciles the mirror record with the ledger for one
// certificate. The verdict is valid only when the ledger returns a non-null
// validation object AND the mirror is not revoked; revocation always
// dominates. Both sources are in the response so callers can see them
// disagree.
func ValidateCertificate(c *fiber.Ctx) error {
	certificateID := c.Params("certificate_id")

	var certificate models.Certificate
	if err := database.Database.Db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found in database!", nil)
	}

	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName, []string{"validate_certificate"}, nil)

	blockchainData, err := contract.CallView("validate_certificate", fiber.Map{
		"certificate_id": certificate.BlockchainID,
	})
	if err != nil {
		log.Printf("NEAR contract validation error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Certificate validation failed on blockchain!")
	}

	valid := string(blockchainData) != "null" && certificate.Status != "revoked"

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate validation successful!", fiber.Map{
		"certificate_id":  certificate.ID,
		"valid":           valid,
		"blockchain_data": blockchainData,
		"local_data":      certificate,
	})
}

// GetCertificateHistory returns the ledger's history for a certificate.
// A failed history query is reported as an empty history.
func GetCertificateHistory(c *fiber.Ctx) error {
	certificateID := c.Params("certificate_id")

	var certificate models.Certificate
	if err := database.Database.Db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName, []string{"get_certificate_history"}, nil)

	history := json.RawMessage("[]")
	if result, err := contract.CallView("get_certificate_history", fiber.Map{
		"certificate_id": certificate.BlockchainID,
	}); err != nil {
		log.Printf("NEAR contract history error: %v", err)
	} else if string(result) != "null" {
		history = result
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate history retrieved!", fiber.Map{
		"certificate_id":     certificate.ID,
		"blockchain_history": history,
		"local_data":         certificate,
	})
}
