package utils

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/models"
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeChain struct {
	validates map[uint64]bool
	fail      bool
	calls     int
}

func (f *fakeChain) Account(accountID string) blockchain.AccountHandle { return f }

func (f *fakeChain) Contract(name string, viewMethods, changeMethods []string) blockchain.ContractHandle {
	return f
}

func (f *fakeChain) CallView(method string, args interface{}) (json.RawMessage, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("node unreachable")
	}
	id, _ := args.(map[string]interface{})["certificate_id"].(uint64)
	if f.validates[id] {
		return json.RawMessage(`{"valid":true}`), nil
	}
	return json.RawMessage("null"), nil
}

func (f *fakeChain) CallChange(method string, args interface{}, opts *blockchain.ChangeOpts) (json.RawMessage, error) {
	return nil, errors.New("audit never mutates")
}

func setupAudit(t *testing.T, chain *fakeChain) {
	config.AppConfig = &config.Config{ContractName: "achievo.testnet"}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "mirror.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Certificate{}))
	database.Database = database.DbInstance{Db: db}

	blockchain.Chain = chain
}

func seedAuditCertificate(t *testing.T, blockchainID uint64, status string) {
	require.NoError(t, database.Database.Db.Create(&models.Certificate{
		LearnerName:    "Alice",
		LearnerWallet:  "alice.test",
		CourseName:     "Go 101",
		OrganizationID: "org1.test",
		BlockchainID:   blockchainID,
		MetadataCID:    "Qm123",
		Status:         status,
	}).Error)
}

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })
	return &buf
}

func TestAuditCertificates_FlagsLiveMirrorLedgerMiss(t *testing.T) {
	chain := &fakeChain{validates: map[uint64]bool{}}
	setupAudit(t, chain)
	seedAuditCertificate(t, 7, "active")

	buf := captureLog(t)
	auditCertificates()

	assert.Contains(t, buf.String(), "DRIFT")
	assert.Contains(t, buf.String(), "blockchain_id=7")
}

func TestAuditCertificates_FlagsRevokedMirrorLedgerLive(t *testing.T) {
	chain := &fakeChain{validates: map[uint64]bool{7: true}}
	setupAudit(t, chain)
	seedAuditCertificate(t, 7, "revoked")

	buf := captureLog(t)
	auditCertificates()

	assert.Contains(t, buf.String(), "DRIFT")
	assert.Contains(t, buf.String(), "ledger still validates")
}

func TestAuditCertificates_AgreementIsSilent(t *testing.T) {
	chain := &fakeChain{validates: map[uint64]bool{7: true}}
	setupAudit(t, chain)
	seedAuditCertificate(t, 7, "active")

	buf := captureLog(t)
	auditCertificates()

	assert.NotContains(t, buf.String(), "DRIFT")
}

func TestAuditCertificates_AbortsPassWhenLedgerUnavailable(t *testing.T) {
	chain := &fakeChain{fail: true}
	setupAudit(t, chain)
	seedAuditCertificate(t, 7, "active")
	seedAuditCertificate(t, 8, "active")

	buf := captureLog(t)
	auditCertificates()

	// One failed call aborts the whole pass instead of reporting drift
	assert.Equal(t, 1, chain.calls)
	assert.NotContains(t, buf.String(), "DRIFT")
	assert.Contains(t, buf.String(), "aborting pass")
}
