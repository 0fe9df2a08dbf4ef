package utils

import (
	"achievo/blockchain"
	"achievo/config"
	"achievo/database"
	"achievo/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// auditBatchSize caps how many certificates one audit pass inspects.
const auditBatchSize = 100

// logAudit logs audit events with timestamp
func logAudit(message string) {
	log.Printf("[MIRROR-AUDIT %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartMirrorAudit schedules the periodic ledger/mirror drift check. The
// audit only detects and logs disagreements; repairing them stays an
// operator process.
func StartMirrorAudit() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.MirrorAuditSchedule, auditCertificates)
	if err != nil {
		log.Fatalf("Invalid mirror audit schedule %q: %v", config.AppConfig.MirrorAuditSchedule, err)
	}

	c.Start()
	logAudit("Scheduled with " + config.AppConfig.MirrorAuditSchedule)
	return c
}

// auditCertificates re-runs the ledger validation view for recently updated
// certificates and logs every disagreement between mirror and ledger.
func auditCertificates() {
	db := database.Database.Db

	var certificates []models.Certificate
	if err := db.Order("updated_at desc").Limit(auditBatchSize).Find(&certificates).Error; err != nil {
		logAudit("Failed to fetch certificates: " + err.Error())
		return
	}

	contract := blockchain.Chain.Account(config.AppConfig.ContractName).
		Contract(config.AppConfig.ContractName, []string{"validate_certificate"}, nil)

	drifted := 0
	for _, cert := range certificates {
		result, err := contract.CallView("validate_certificate", map[string]interface{}{
			"certificate_id": cert.BlockchainID,
		})
		if err != nil {
			logAudit("Ledger unavailable, aborting pass: " + err.Error())
			return
		}

		onLedger := string(result) != "null"
		switch {
		case !onLedger && cert.Status != "revoked":
			logAudit(auditLine(cert, "mirror has a live certificate the ledger does not validate"))
			drifted++
		case onLedger && cert.Status == "revoked":
			logAudit(auditLine(cert, "mirror is revoked but the ledger still validates"))
			drifted++
		}
	}

	if drifted > 0 {
		logAudit("Pass complete with drift detected")
	}
}

func auditLine(cert models.Certificate, detail string) string {
	return fmt.Sprintf("DRIFT certificate_id=%d blockchain_id=%d: %s", cert.ID, cert.BlockchainID, detail)
}
