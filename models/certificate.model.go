package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate mirrors a credential issued on the ledger. BlockchainID is
// assigned by the contract and written here only after the change call
// succeeded; the ledger stays authoritative for it. MetadataCID points at
// the immutable IPFS document holding the full credential payload.
type Certificate struct {
	gorm.Model
	LearnerName      string         `gorm:"not null" json:"learner_name"`
	LearnerWallet    string         `gorm:"not null;index" json:"learner_wallet"`
	CourseName       string         `gorm:"not null" json:"course_name"`
	OrganizationID   string         `gorm:"not null;index" json:"organization_id"`
	BlockchainID     uint64         `gorm:"index" json:"blockchain_id"`
	MetadataCID      string         `gorm:"not null" json:"metadata_cid"`
	IpfsURL          string         `gorm:"default:''" json:"ipfs_url"`
	Payload          datatypes.JSON `json:"payload"`
	Status           string         `gorm:"default:'pending'" json:"status"` // pending/active/revoked
	RevokedAt        *time.Time     `json:"revoked_at"`
	RevocationReason string         `gorm:"default:''" json:"revocation_reason"`
}
