package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NFTCertificate mirrors a minted certificate token. TokenID is assigned by
// the contract. A token minted outside this API may exist on the ledger
// with no row here; read paths go to the ledger directly.
type NFTCertificate struct {
	gorm.Model
	TokenID       string         `gorm:"unique;not null" json:"token_id"`
	OwnerID       string         `gorm:"not null;index" json:"owner_id"`
	MinterOrg     string         `gorm:"not null;index" json:"minter_org"`
	Metadata      datatypes.JSON `json:"metadata"`
	CertificateID *uint          `json:"certificate_id"`
	Status        string         `gorm:"default:'active'" json:"status"`
	TransferredAt *time.Time     `json:"transferred_at"`
	TransferMemo  string         `gorm:"default:''" json:"transfer_memo"`
}
