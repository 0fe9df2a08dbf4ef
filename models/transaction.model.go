package models

import (
	"gorm.io/gorm"
)

// Transactions is a write-only payment audit log. Rows are never mutated.
type Transactions struct {
	gorm.Model
	ReferenceID         string `gorm:"unique;not null" json:"reference_id"`
	Amount              string `gorm:"not null" json:"amount"`
	Sender              string `gorm:"not null;index" json:"sender"`
	Receiver            string `gorm:"not null" json:"receiver"`
	Purpose             string `gorm:"default:'Payment'" json:"purpose"`
	Status              string `gorm:"not null" json:"status"` // pending/completed
	BlockchainProcessed bool   `gorm:"default:false" json:"blockchain_processed"`
}
