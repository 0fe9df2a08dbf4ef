package certificateController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/ipfs"
	"achievo/middleware"
	"achievo/models"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// certificateMetadata is the immutable credential payload pinned to IPFS.
type certificateMetadata struct {
	LearnerName    string   `json:"learner_name"`
	CourseName     string   `json:"course_name"`
	IssueDate      string   `json:"issue_date"`
	OrganizationID string   `json:"organization_id"`
	Skills         []string `json:"skills,omitempty"`
	Grade          string   `json:"grade,omitempty"`
	Status         string   `json:"status"`
}

// IssueCertificate runs the issuance saga: pin metadata, then the ledger
// change call, then the mirror row. Pin failure aborts before any state
// mutation. Ledger failure leaves the pinned blob orphaned (content storage
// has no delete) but no certificate anywhere. Mirror failure after ledger
// success is logged for reconciliation and surfaced as a 500; no rollback
// is attempted.
func IssueCertificate(c *fiber.Ctx) error {
	reqData := new(struct {
		LearnerName    string   `json:"learner_name"`
		CourseName     string   `json:"course_name"`
		OrganizationID string   `json:"organization_id"`
		LearnerWallet  string   `json:"learner_wallet"`
		Skills         []string `json:"skills"`
		Grade          string   `json:"grade"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	metadata := certificateMetadata{
		LearnerName:    reqData.LearnerName,
		CourseName:     reqData.CourseName,
		IssueDate:      time.Now().Format("2006-01-02"),
		OrganizationID: reqData.OrganizationID,
		Skills:         reqData.Skills,
		Grade:          reqData.Grade,
		Status:         "Completed",
	}

	cid, err := ipfs.Store.PinJSON(metadata)
	if err != nil {
		log.Printf("Error uploading to Pinata: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload certificate metadata!", nil)
	}

	contract := blockchain.Chain.Account(reqData.OrganizationID).
		Contract(config.AppConfig.ContractName,
			[]string{"validate_certificate"},
			[]string{"issue_certificate"})

	result, err := contract.CallChange("issue_certificate", fiber.Map{
		"learner_id":   reqData.LearnerWallet,
		"course_name":  reqData.CourseName,
		"metadata_cid": cid,
	}, nil)
	if err != nil {
		// The pinned blob stays behind; it is inert without a ledger or
		// mirror record
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to issue certificate on blockchain!")
	}

	blockchainID, err := blockchain.DecodeUint(result)
	if err != nil {
		log.Printf("issue_certificate returned an unreadable id %q: %v", string(result), err)
		return middleware.BlockchainErrorResponse(c, "Failed to issue certificate on blockchain!")
	}

	payload, _ := json.Marshal(metadata)

	certificate := models.Certificate{
		LearnerName:    reqData.LearnerName,
		LearnerWallet:  reqData.LearnerWallet,
		CourseName:     reqData.CourseName,
		OrganizationID: reqData.OrganizationID,
		BlockchainID:   blockchainID,
		MetadataCID:    cid,
		IpfsURL:        ipfs.GatewayURL(cid),
		Payload:        datatypes.JSON(payload),
		Status:         "active",
	}

	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: certificate blockchain_id=%d cid=%s not mirrored: %v", blockchainID, cid, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", fiber.Map{
		"certificate_id": certificate.ID,
		"ipfs_cid":       cid,
		"certificate":    certificate,
	})
}

// UpdateCertificateStatus changes a certificate's status, ledger first.
// A revoked certificate is terminal and cannot transition elsewhere.
func UpdateCertificateStatus(c *fiber.Ctx) error {
	certificateID := c.Params("certificate_id")

	reqData := new(struct {
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if certificate.Status == "revoked" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate is revoked and cannot change status!", nil)
	}

	contract := blockchain.Chain.Account(certificate.OrganizationID).
		Contract(config.AppConfig.ContractName,
			[]string{"validate_certificate"},
			[]string{"update_certificate_status"})

	_, err := contract.CallChange("update_certificate_status", fiber.Map{
		"certificate_id": certificate.BlockchainID,
		"status":         reqData.Status,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to update certificate status on blockchain!")
	}

	if err := db.Model(&certificate).Updates(map[string]interface{}{"status": reqData.Status}).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: certificate %s status=%s not mirrored: %v", certificateID, reqData.Status, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate status updated successfully!", fiber.Map{
		"certificate_id": certificate.ID,
		"new_status":     reqData.Status,
	})
}

// RevokeCertificate revokes a certificate, ledger first. Revocation is
// terminal: repeat calls only refresh RevokedAt and the reason.
func RevokeCertificate(c *fiber.Ctx) error {
	certificateID := c.Params("certificate_id")

	reqData := new(struct {
		Reason string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil && len(c.Body()) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Reason == "" {
		reqData.Reason = "No reason provided"
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	contract := blockchain.Chain.Account(certificate.OrganizationID).
		Contract(config.AppConfig.ContractName,
			[]string{"validate_certificate"},
			[]string{"revoke_certificate"})

	_, err := contract.CallChange("revoke_certificate", fiber.Map{
		"certificate_id": certificate.BlockchainID,
		"reason":         reqData.Reason,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to revoke certificate on blockchain!")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            "revoked",
		"revoked_at":        &now,
		"revocation_reason": reqData.Reason,
	}
	if err := db.Model(&certificate).Updates(updates).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: certificate %s revocation not mirrored: %v", certificateID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", fiber.Map{
		"certificate_id": certificate.ID,
	})
}
