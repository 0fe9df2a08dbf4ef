package nftController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// nftMetadata follows the NEP-177 token metadata shape the contract
// expects.
type nftMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Media         string `json:"media,omitempty"`
	MediaHash     string `json:"media_hash,omitempty"`
	Copies        int    `json:"copies"`
	Extra         string `json:"extra,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceHash string `json:"reference_hash,omitempty"`
}

// MintNFT mints a certificate token. Only a verified organization may mint;
// the mirror check runs before any ledger call so an unauthorized mint is
// rejected without spending gas.
func MintNFT(c *fiber.Ctx) error {
	wallet := c.Locals("wallet").(string)

	reqData := new(struct {
		ReceiverID string `json:"receiver_id"`
		Metadata   struct {
			Title         string `json:"title"`
			Description   string `json:"description"`
			Media         string `json:"media"`
			MediaHash     string `json:"media_hash"`
			Copies        int    `json:"copies"`
			Reference     string `json:"reference"`
			ReferenceHash string `json:"reference_hash"`
		} `json:"metadata"`
		CertificateID *uint `json:"certificate_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var org models.Organization
	if err := db.Where("wallet_address = ? AND verified = ?", wallet, true).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only verified organizations can mint NFT certificates!", nil)
	}

	metadata := nftMetadata{
		Title:         reqData.Metadata.Title,
		Description:   reqData.Metadata.Description,
		Media:         reqData.Metadata.Media,
		MediaHash:     reqData.Metadata.MediaHash,
		Copies:        reqData.Metadata.Copies,
		Reference:     reqData.Metadata.Reference,
		ReferenceHash: reqData.Metadata.ReferenceHash,
	}
	if metadata.Title == "" {
		metadata.Title = "Achievement Certificate"
	}
	if metadata.Description == "" {
		metadata.Description = "Digital certificate of achievement"
	}
	if metadata.Copies == 0 {
		metadata.Copies = 1
	}
	if reqData.CertificateID != nil {
		metadata.Extra = fmt.Sprintf("certificate_id:%d", *reqData.CertificateID)
	}

	contract := blockchain.Chain.Account(wallet).
		Contract(config.AppConfig.ContractName,
			[]string{"nft_token"},
			[]string{"mint_nft_certificate"})

	result, err := contract.CallChange("mint_nft_certificate", fiber.Map{
		"receiver_id":    reqData.ReceiverID,
		"metadata":       metadata,
		"certificate_id": reqData.CertificateID,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to mint NFT certificate on blockchain!")
	}

	tokenID, err := blockchain.DecodeString(result)
	if err != nil {
		log.Printf("mint_nft_certificate returned an unreadable token id %q: %v", string(result), err)
		return middleware.BlockchainErrorResponse(c, "Failed to mint NFT certificate on blockchain!")
	}

	metadataJSON, _ := json.Marshal(metadata)

	nft := models.NFTCertificate{
		TokenID:       tokenID,
		OwnerID:       reqData.ReceiverID,
		MinterOrg:     wallet,
		Metadata:      datatypes.JSON(metadataJSON),
		CertificateID: reqData.CertificateID,
		Status:        "active",
	}

	if err := db.Create(&nft).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: NFT token_id=%s not mirrored: %v", tokenID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save NFT certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "NFT Certificate minted successfully!", fiber.Map{
		"token_id": tokenID,
		"nft_id":   nft.ID,
		"nft":      nft,
	})
}

// TransferNFT transfers a token on the ledger and updates the mirror row if
// one exists. A token minted outside this API has no mirror row; the ledger
// transfer still succeeds and is reported as such, and the missing row is
// only logged for reconciliation.
func TransferNFT(c *fiber.Ctx) error {
	wallet := c.Locals("wallet").(string)

	reqData := new(struct {
		ReceiverID string `json:"receiver_id"`
		TokenID    string `json:"token_id"`
		Memo       string `json:"memo"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	contract := blockchain.Chain.Account(wallet).
		Contract(config.AppConfig.ContractName,
			[]string{"nft_token"},
			[]string{"nft_transfer"})

	_, err := contract.CallChange("nft_transfer", fiber.Map{
		"receiver_id": reqData.ReceiverID,
		"token_id":    reqData.TokenID,
		"memo":        reqData.Memo,
	}, &blockchain.ChangeOpts{Deposit: "1"}) // 1 yocto per NEP-171
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to transfer NFT on blockchain!")
	}

	db := database.Database.Db

	var nft models.NFTCertificate
	if err := db.Where("token_id = ?", reqData.TokenID).First(&nft).Error; err == nil {
		now := time.Now()
		updates := map[string]interface{}{
			"owner_id":       reqData.ReceiverID,
			"transferred_at": &now,
			"transfer_memo":  reqData.Memo,
		}
		if err := db.Model(&nft).Updates(updates).Error; err != nil {
			log.Printf("MIRROR WRITE FAILED after ledger success: NFT token_id=%s transfer not mirrored: %v", reqData.TokenID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update NFT certificate!", nil)
		}
	} else {
		log.Printf("NFT token_id=%s transferred on chain with no mirror record; left for reconciliation", reqData.TokenID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "NFT Certificate transferred successfully!", fiber.Map{
		"token_id":  reqData.TokenID,
		"new_owner": reqData.ReceiverID,
	})
}

// GetNFTsForOwner lists an account's tokens straight from the ledger; the
// mirror is not consulted on read paths.
func GetNFTsForOwner(c *fiber.Ctx) error {
	ownerID := c.Params("owner_id")
	fromIndex := c.QueryInt("from_index", 0)
	limit := c.QueryInt("limit", 50)

	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName,
			[]string{"nft_tokens_for_owner", "nft_supply_for_owner"}, nil)

	nfts := json.RawMessage("[]")
	if result, err := contract.CallView("nft_tokens_for_owner", fiber.Map{
		"account_id": ownerID,
		"from_index": fromIndex,
		"limit":      limit,
	}); err != nil {
		log.Printf("NEAR contract error: %v", err)
	} else {
		nfts = result
	}

	totalSupply := json.RawMessage("0")
	if result, err := contract.CallView("nft_supply_for_owner", fiber.Map{
		"account_id": ownerID,
	}); err != nil {
		log.Printf("NEAR contract error: %v", err)
	} else {
		totalSupply = result
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "NFT certificates retrieved successfully!", fiber.Map{
		"owner_id":     ownerID,
		"nfts":         nfts,
		"total_supply": totalSupply,
		"pagination": fiber.Map{
			"from_index": fromIndex,
			"limit":      limit,
		},
	})
}

// GetNFTToken returns a single token from the ledger verbatim.
func GetNFTToken(c *fiber.Ctx) error {
	tokenID := c.Params("token_id")

	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName, []string{"nft_token"}, nil)

	result, err := contract.CallView("nft_token", fiber.Map{"token_id": tokenID})
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "NFT token not found!", nil)
	}
	if string(result) == "null" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "NFT token not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "NFT token retrieved successfully!", fiber.Map{
		"nft": result,
	})
}

// GetNFTMetadata returns the collection metadata and total supply from the
// ledger.
func GetNFTMetadata(c *fiber.Ctx) error {
	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName,
			[]string{"nft_metadata", "nft_total_supply"}, nil)

	metadata := json.RawMessage("{}")
	if result, err := contract.CallView("nft_metadata", fiber.Map{}); err != nil {
		log.Printf("NEAR contract error: %v", err)
	} else {
		metadata = result
	}

	totalSupply := json.RawMessage("0")
	if result, err := contract.CallView("nft_total_supply", fiber.Map{}); err != nil {
		log.Printf("NEAR contract error: %v", err)
	} else {
		totalSupply = result
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "NFT metadata retrieved successfully!", fiber.Map{
		"metadata":     metadata,
		"total_supply": totalSupply,
	})
}
