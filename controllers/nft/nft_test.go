package nftController

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/middleware"
	"achievo/models"
	nftValidators "achievo/validators/nft"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeChain struct {
	views   map[string]string
	changes map[string]string
	fail    map[string]bool

	signer      string
	viewCalls   []string
	changeCalls []string
	lastOpts    *blockchain.ChangeOpts
}

func (f *fakeChain) Account(accountID string) blockchain.AccountHandle {
	f.signer = accountID
	return f
}

func (f *fakeChain) Contract(name string, viewMethods, changeMethods []string) blockchain.ContractHandle {
	return f
}

func (f *fakeChain) CallView(method string, args interface{}) (json.RawMessage, error) {
	f.viewCalls = append(f.viewCalls, method)
	if f.fail[method] {
		return nil, errors.New(method + " failed")
	}
	result, ok := f.views[method]
	if !ok {
		result = "null"
	}
	return json.RawMessage(result), nil
}

func (f *fakeChain) CallChange(method string, args interface{}, opts *blockchain.ChangeOpts) (json.RawMessage, error) {
	if f.fail[method] {
		return nil, errors.New(method + " failed")
	}
	f.changeCalls = append(f.changeCalls, method)
	f.lastOpts = opts
	result, ok := f.changes[method]
	if !ok {
		result = "null"
	}
	return json.RawMessage(result), nil
}

func setupTest(t *testing.T, chain *fakeChain) *fiber.App {
	config.AppConfig = &config.Config{
		ContractName: "achievo.testnet",
		LegacyAdmins: []string{"achievo.testnet"},
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "mirror.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Organization{}, &models.NFTCertificate{}))
	database.Database = database.DbInstance{Db: db}

	blockchain.Chain = chain

	app := fiber.New()
	app.Post("/api/nft/mint", middleware.RequireIdentity, nftValidators.Mint(), MintNFT)
	app.Post("/api/nft/transfer", middleware.RequireIdentity, nftValidators.Transfer(), TransferNFT)
	app.Get("/api/nft/owner/:owner_id", GetNFTsForOwner)
	app.Get("/api/nft/token/:token_id", GetNFTToken)
	app.Get("/api/nft/metadata", GetNFTMetadata)
	return app
}

func jsonRequest(t *testing.T, method, target, wallet string, body interface{}) *http.Request {
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set(middleware.WalletHeader, wallet)
	}
	return req
}

func seedOrganization(t *testing.T, wallet string, verified bool) {
	status := "pending"
	if verified {
		status = "verified"
	}
	org := models.Organization{
		Name:          "Org",
		WalletAddress: wallet,
		Verified:      verified,
		Status:        status,
	}
	require.NoError(t, database.Database.Db.Create(&org).Error)
}

func mintBody() fiber.Map {
	return fiber.Map{
		"receiver_id": "alice.test",
		"metadata": fiber.Map{
			"title": "Graduation NFT",
			"media": "ipfs://QmMedia",
		},
	}
}

func TestMintNFT_MissingIdentity(t *testing.T) {
	chain := &fakeChain{}
	app := setupTest(t, chain)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/mint", "", mintBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMintNFT_UnverifiedOrgRejectedBeforeLedger(t *testing.T) {
	chain := &fakeChain{}
	app := setupTest(t, chain)
	seedOrganization(t, "org1.test", false)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/mint", "org1.test", mintBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, chain.changeCalls)
}

func TestMintNFT_Success(t *testing.T) {
	chain := &fakeChain{changes: map[string]string{"mint_nft_certificate": `"42"`}}
	app := setupTest(t, chain)
	seedOrganization(t, "org1.test", true)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/mint", "org1.test", mintBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, "org1.test", chain.signer)
	assert.Equal(t, []string{"mint_nft_certificate"}, chain.changeCalls)

	var nft models.NFTCertificate
	require.NoError(t, database.Database.Db.First(&nft).Error)
	assert.Equal(t, "42", nft.TokenID)
	assert.Equal(t, "alice.test", nft.OwnerID)
	assert.Equal(t, "org1.test", nft.MinterOrg)
	assert.Equal(t, "active", nft.Status)
}

func TestMintNFT_LedgerFailureLeavesNoMirrorRow(t *testing.T) {
	chain := &fakeChain{fail: map[string]bool{"mint_nft_certificate": true}}
	app := setupTest(t, chain)
	seedOrganization(t, "org1.test", true)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/mint", "org1.test", mintBody()))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.NFTCertificate{}).Count(&count)
	assert.Zero(t, count)
}

func TestTransferNFT_UpdatesMirrorOwner(t *testing.T) {
	chain := &fakeChain{changes: map[string]string{"nft_transfer": "null"}}
	app := setupTest(t, chain)

	nft := models.NFTCertificate{TokenID: "42", OwnerID: "alice.test", MinterOrg: "org1.test", Status: "active"}
	require.NoError(t, database.Database.Db.Create(&nft).Error)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/transfer", "alice.test", fiber.Map{
		"receiver_id": "bob.test",
		"token_id":    "42",
		"memo":        "congrats",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// NEP-171 transfers attach exactly one yocto
	require.NotNil(t, chain.lastOpts)
	assert.Equal(t, "1", chain.lastOpts.Deposit)

	var updated models.NFTCertificate
	require.NoError(t, database.Database.Db.First(&updated, nft.ID).Error)
	assert.Equal(t, "bob.test", updated.OwnerID)
	assert.Equal(t, "congrats", updated.TransferMemo)
	require.NotNil(t, updated.TransferredAt)
}

func TestTransferNFT_MirrorMissStillSucceeds(t *testing.T) {
	chain := &fakeChain{changes: map[string]string{"nft_transfer": "null"}}
	app := setupTest(t, chain)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/nft/transfer", "alice.test", fiber.Map{
		"receiver_id": "bob.test",
		"token_id":    "42",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			NewOwner string `json:"new_owner"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "bob.test", payload.Data.NewOwner)

	// The divergence is observable: the ledger transferred, the mirror
	// has nothing
	var count int64
	database.Database.Db.Model(&models.NFTCertificate{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetNFTToken_ReadsLedgerNotMirror(t *testing.T) {
	chain := &fakeChain{views: map[string]string{"nft_token": `{"token_id":"42","owner_id":"alice.test"}`}}
	app := setupTest(t, chain)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nft/token/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"nft_token"}, chain.viewCalls)
}

func TestGetNFTToken_NullIsNotFound(t *testing.T) {
	chain := &fakeChain{views: map[string]string{"nft_token": "null"}}
	app := setupTest(t, chain)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nft/token/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetNFTsForOwner_LedgerFailureDegradesToEmpty(t *testing.T) {
	chain := &fakeChain{fail: map[string]bool{"nft_tokens_for_owner": true, "nft_supply_for_owner": true}}
	app := setupTest(t, chain)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/nft/owner/alice.test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
