package models

import (
	"gorm.io/gorm"
)

// Reward mirrors a milestone reward granted on the ledger. Amount is what
// the contract reported, never what the caller claimed.
type Reward struct {
	gorm.Model
	ReferenceID   string `gorm:"unique;not null" json:"reference_id"`
	BlockchainID  uint64 `gorm:"index" json:"blockchain_id"`
	LearnerWallet string `gorm:"not null;index" json:"learner_wallet"`
	Milestone     string `gorm:"not null" json:"milestone"`
	Amount        string `gorm:"not null" json:"amount"`
	GranterWallet string `gorm:"not null" json:"granter_wallet"`
	Status        string `gorm:"default:'active'" json:"status"`
}
