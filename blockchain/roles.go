package blockchain

import (
	"achievo/config"
	"encoding/json"
	"log"
)

// Role names as stored by the contract.
const (
	RoleUser                 = "user"
	RoleOrganizationVerifier = "organization_verifier"
	RoleModerator            = "moderator"
	RoleAdmin                = "admin"
)

// RoleLevels is the total order used for minimum-level authorization.
var RoleLevels = map[string]int{
	RoleUser:                 0,
	RoleOrganizationVerifier: 1,
	RoleModerator:            2,
	RoleAdmin:                3,
}

// ValidRole reports whether a role name is one the contract accepts.
func ValidRole(role string) bool {
	_, ok := RoleLevels[role]
	return ok
}

// ResolveRole reads an account's role from the contract. The second return
// distinguishes "the ledger answered" from "the ledger was unreachable":
// an account with no assigned role resolves to ("user", true), while an RPC
// failure resolves to ("user", false) so guards can fail closed instead of
// treating an outage as an ordinary user. Roles are never cached; every
// request resolves fresh.
func ResolveRole(accountID string) (string, bool) {
	contract := Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName, []string{"get_user_role"}, nil)

	raw, err := contract.CallView("get_user_role", map[string]string{"account_id": accountID})
	if err != nil {
		log.Printf("Role resolution unavailable for %s: %v", accountID, err)
		return RoleUser, false
	}

	var role *string
	if err := json.Unmarshal(raw, &role); err != nil || role == nil || *role == "" {
		return RoleUser, true
	}
	if !ValidRole(*role) {
		return RoleUser, true
	}
	return *role, true
}
