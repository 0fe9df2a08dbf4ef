package rewardController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// defaultRewardAmount matches the contract's configured milestone payout,
// used when an older contract build returns a bare id instead of the grant
// object.
const defaultRewardAmount = "100"

// GrantReward grants a milestone reward: ledger change call first, mirror
// row second. The amount comes from the contract, never the request body.
func GrantReward(c *fiber.Ctx) error {
	granter := c.Locals("wallet").(string)

	reqData := new(struct {
		LearnerWallet string `json:"learner_wallet"`
		Milestone     string `json:"milestone"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	contract := blockchain.Chain.Account(granter).
		Contract(config.AppConfig.ContractName,
			[]string{"list_rewards"},
			[]string{"grant_reward"})

	result, err := contract.CallChange("grant_reward", fiber.Map{
		"learner_id": reqData.LearnerWallet,
		"milestone":  reqData.Milestone,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to grant reward on blockchain!")
	}

	blockchainID, amount := decodeGrant(result)

	reward := models.Reward{
		ReferenceID:   uuid.NewString(),
		BlockchainID:  blockchainID,
		LearnerWallet: reqData.LearnerWallet,
		Milestone:     reqData.Milestone,
		Amount:        amount,
		GranterWallet: granter,
		Status:        "active",
	}

	if err := database.Database.Db.Create(&reward).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: reward blockchain_id=%d not mirrored: %v", blockchainID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reward!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Reward granted successfully!", fiber.Map{
		"reward_id":     reward.ID,
		"blockchain_id": blockchainID,
		"reward":        reward,
	})
}

// decodeGrant reads the grant_reward result, which is either a grant object
// or a bare reward id.
func decodeGrant(raw json.RawMessage) (uint64, string) {
	var grant struct {
		ID     json.RawMessage `json:"id"`
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(raw, &grant); err == nil && grant.ID != nil {
		id, err := blockchain.DecodeUint(grant.ID)
		if err != nil {
			return 0, defaultRewardAmount
		}
		amount := defaultRewardAmount
		if grant.Amount != nil {
			if a, err := blockchain.DecodeString(grant.Amount); err == nil {
				amount = a
			}
		}
		return id, amount
	}

	id, err := blockchain.DecodeUint(raw)
	if err != nil {
		return 0, defaultRewardAmount
	}
	return id, defaultRewardAmount
}

// ListRewards returns a learner's rewards from the mirror, most recent
// first.
func ListRewards(c *fiber.Ctx) error {
	walletAddress := c.Params("wallet_address")

	var rewards []models.Reward
	if err := database.Database.Db.
		Where("learner_wallet = ?", walletAddress).
		Order("created_at desc").
		Find(&rewards).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rewards!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rewards retrieved successfully!", fiber.Map{
		"count":   len(rewards),
		"rewards": rewards,
	})
}
