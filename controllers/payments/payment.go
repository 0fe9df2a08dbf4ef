package paymentController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProcessPayment executes a payment on the ledger with the amount attached
// as the deposit, then writes an audit log row. The log is write-only and
// records only what the ledger actually executed.
func ProcessPayment(c *fiber.Ctx) error {
	reqData := new(struct {
		Amount       string `json:"amount"`
		SenderWallet string `json:"sender_wallet"`
		RecipientID  string `json:"recipient_id"`
		Purpose      string `json:"purpose"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Purpose == "" {
		reqData.Purpose = "Payment"
	}

	contract := blockchain.Chain.Account(reqData.SenderWallet).
		Contract(config.AppConfig.ContractName,
			nil,
			[]string{"process_payment"})

	_, err := contract.CallChange("process_payment", fiber.Map{
		"recipient_id": reqData.RecipientID,
		"amount":       reqData.Amount,
	}, &blockchain.ChangeOpts{
		Deposit: reqData.Amount,
		Gas:     blockchain.DefaultGas,
	})
	if err != nil {
		log.Printf("NEAR payment error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to process payment on blockchain!")
	}

	transaction := models.Transactions{
		ReferenceID:         uuid.NewString(),
		Amount:              reqData.Amount,
		Sender:              reqData.SenderWallet,
		Receiver:            reqData.RecipientID,
		Purpose:             reqData.Purpose,
		Status:              "completed",
		BlockchainProcessed: true,
	}

	if err := database.Database.Db.Create(&transaction).Error; err != nil {
		log.Printf("MIRROR WRITE FAILED after ledger success: payment %s -> %s amount=%s not logged: %v",
			reqData.SenderWallet, reqData.RecipientID, reqData.Amount, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log transaction!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment processed successfully on blockchain!", fiber.Map{
		"transaction_id": transaction.ID,
		"transaction":    transaction,
	})
}
