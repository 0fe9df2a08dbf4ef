package middleware

import (
	"achievo/blockchain"
	"achievo/config"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// WalletHeader carries the caller's ledger identity on every
// identity-bearing request.
const WalletHeader = "wallet_address"

// RequireIdentity rejects requests without a wallet address header and
// stores the identity for downstream handlers.
func RequireIdentity(c *fiber.Ctx) error {
	wallet := c.Get(WalletHeader)
	if wallet == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Wallet address required!", nil)
	}

	c.Locals("wallet", wallet)
	return c.Next()
}

// IsLegacyAdmin reports whether a wallet belongs to the pre-role-system
// allow-set, which keeps admin-equivalent access regardless of on-chain
// role.
func IsLegacyAdmin(wallet string) bool {
	for _, admin := range config.AppConfig.LegacyAdmins {
		if wallet == admin {
			return true
		}
	}
	return false
}

// RequireRole returns a middleware that admits a request when the caller's
// resolved on-chain role satisfies the required minimum level, or when the
// caller is in the legacy allow-set. The two predicates are independent and
// OR-combined. When the requirement is above "user" and the ledger cannot
// be reached for resolution, the request is denied rather than downgraded.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Get(WalletHeader)
		if wallet == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Wallet address required!", nil)
		}
		c.Locals("wallet", wallet)

		if IsLegacyAdmin(wallet) {
			c.Locals("userRole", blockchain.RoleAdmin)
			return c.Next()
		}

		requiredLevel := blockchain.RoleLevels[requiredRole]
		role, available := blockchain.ResolveRole(wallet)

		if !available && requiredLevel > blockchain.RoleLevels[blockchain.RoleUser] {
			return JsonResponse(c, fiber.StatusForbidden, false, "Role verification unavailable!", nil)
		}

		if blockchain.RoleLevels[role] < requiredLevel {
			message := fmt.Sprintf("Access denied. Required role: %s, your role: %s", requiredRole, role)
			return JsonResponse(c, fiber.StatusForbidden, false, message, nil)
		}

		c.Locals("userRole", role)
		return c.Next()
	}
}
