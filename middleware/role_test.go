package middleware

import (
	"achievo/blockchain"
	"achievo/config"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChain serves get_user_role from a fixed role map; err makes every
// call fail to simulate an unreachable ledger.
type fakeChain struct {
	roles map[string]string
	err   error
}

func (f *fakeChain) Account(accountID string) blockchain.AccountHandle {
	return fakeAccount{chain: f}
}

type fakeAccount struct{ chain *fakeChain }

func (a fakeAccount) Contract(name string, viewMethods, changeMethods []string) blockchain.ContractHandle {
	return fakeContract{chain: a.chain}
}

type fakeContract struct{ chain *fakeChain }

func (c fakeContract) CallView(method string, args interface{}) (json.RawMessage, error) {
	if c.chain.err != nil {
		return nil, c.chain.err
	}
	accountID := args.(map[string]string)["account_id"]
	role, ok := c.chain.roles[accountID]
	if !ok {
		return json.RawMessage("null"), nil
	}
	encoded, _ := json.Marshal(role)
	return encoded, nil
}

func (c fakeContract) CallChange(method string, args interface{}, opts *blockchain.ChangeOpts) (json.RawMessage, error) {
	return nil, errors.New("change calls not supported in role fake")
}

func guardedApp(requiredRole string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", RequireRole(requiredRole), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"role": c.Locals("userRole"),
		})
	})
	return app
}

func setupGuardTest(chain *fakeChain) {
	config.AppConfig = &config.Config{
		ContractName: "achievo.testnet",
		LegacyAdmins: []string{"achievo.testnet", "achievo-admin.testnet"},
	}
	blockchain.Chain = chain
}

func TestRequireRole_MissingHeader(t *testing.T) {
	setupGuardTest(&fakeChain{})
	app := guardedApp(blockchain.RoleAdmin)

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_InsufficientRole(t *testing.T) {
	setupGuardTest(&fakeChain{roles: map[string]string{"verifier.test": "organization_verifier"}})
	app := guardedApp(blockchain.RoleAdmin)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "verifier.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_ExactLevelAllowed(t *testing.T) {
	setupGuardTest(&fakeChain{roles: map[string]string{"verifier.test": "organization_verifier"}})
	app := guardedApp(blockchain.RoleOrganizationVerifier)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "verifier.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_HigherLevelAllowed(t *testing.T) {
	setupGuardTest(&fakeChain{roles: map[string]string{"mod.test": "moderator"}})
	app := guardedApp(blockchain.RoleOrganizationVerifier)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "mod.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_LegacyAllowSetBypassesHierarchy(t *testing.T) {
	// Resolver failing outright must not matter for allow-set accounts
	setupGuardTest(&fakeChain{err: errors.New("rpc down")})
	app := guardedApp(blockchain.RoleAdmin)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "achievo-admin.testnet")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_FailsClosedWhenLedgerUnavailable(t *testing.T) {
	setupGuardTest(&fakeChain{err: errors.New("rpc down")})
	app := guardedApp(blockchain.RoleModerator)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "mod.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_UserLevelUnaffectedByOutage(t *testing.T) {
	setupGuardTest(&fakeChain{err: errors.New("rpc down")})
	app := guardedApp(blockchain.RoleUser)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set(WalletHeader, "anyone.test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/me", RequireIdentity, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", c.Locals("wallet"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set(WalletHeader, "alice.test")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
