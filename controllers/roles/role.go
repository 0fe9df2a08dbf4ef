package roleController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

// rolePermissions is the per-role permission list surfaced on /me.
var rolePermissions = map[string][]string{
	blockchain.RoleUser:                 {"view_certificates", "receive_rewards"},
	blockchain.RoleOrganizationVerifier: {"view_certificates", "receive_rewards", "verify_organizations"},
	blockchain.RoleModerator:            {"view_certificates", "receive_rewards", "verify_organizations", "grant_rewards", "revoke_certificates"},
	blockchain.RoleAdmin:                {"all_permissions"},
}

// AssignRole writes a role assignment to the ledger. Role assignments live
// only on the ledger; nothing is mirrored.
func AssignRole(c *fiber.Ctx) error {
	adminWallet := c.Locals("wallet").(string)

	reqData := new(struct {
		AccountID string `json:"account_id"`
		Role      string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	contract := blockchain.Chain.Account(adminWallet).
		Contract(config.AppConfig.ContractName,
			[]string{"get_user_role"},
			[]string{"assign_role"})

	_, err := contract.CallChange("assign_role", fiber.Map{
		"account_id": reqData.AccountID,
		"role":       reqData.Role,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to assign role on blockchain!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role assigned successfully!", fiber.Map{
		"account_id":  reqData.AccountID,
		"role":        reqData.Role,
		"assigned_by": adminWallet,
	})
}

// RemoveRole removes a role assignment on the ledger.
func RemoveRole(c *fiber.Ctx) error {
	adminWallet := c.Locals("wallet").(string)

	reqData := new(struct {
		AccountID string `json:"account_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	contract := blockchain.Chain.Account(adminWallet).
		Contract(config.AppConfig.ContractName,
			[]string{"get_user_role"},
			[]string{"remove_role"})

	_, err := contract.CallChange("remove_role", fiber.Map{
		"account_id": reqData.AccountID,
	}, nil)
	if err != nil {
		log.Printf("NEAR contract error: %v", err)
		return middleware.BlockchainErrorResponse(c, "Failed to remove role on blockchain!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role removed successfully!", fiber.Map{
		"account_id": reqData.AccountID,
		"removed_by": adminWallet,
	})
}

// GetUserRole resolves any account's role. An unreachable ledger reports
// the default role here; only guarded mutations fail closed.
func GetUserRole(c *fiber.Ctx) error {
	accountID := c.Params("account_id")

	role, _ := blockchain.ResolveRole(accountID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role retrieved successfully!", fiber.Map{
		"account_id": accountID,
		"role":       role,
	})
}

// GetMyRole resolves the caller's own role and its permission list.
func GetMyRole(c *fiber.Ctx) error {
	wallet := c.Locals("wallet").(string)

	role, _ := blockchain.ResolveRole(wallet)

	permissions, ok := rolePermissions[role]
	if !ok {
		permissions = rolePermissions[blockchain.RoleUser]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Current user role retrieved successfully!", fiber.Map{
		"account_id":  wallet,
		"role":        role,
		"permissions": permissions,
	})
}
