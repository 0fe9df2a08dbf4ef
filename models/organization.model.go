package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization is a registrant that can issue certificates once verified.
// Verified and Status must always agree: Verified == true exactly when
// Status == "verified". Every write path sets them together.
type Organization struct {
	gorm.Model
	Name          string     `gorm:"not null" json:"name"`
	ContactInfo   string     `gorm:"default:''" json:"contact_info"`
	WalletAddress string     `gorm:"unique;not null" json:"wallet_address"`
	Type          string     `gorm:"default:'organization'" json:"type"`
	Verified      bool       `gorm:"default:false" json:"verified"`
	Status        string     `gorm:"default:'pending'" json:"status"` // pending/verified/rejected
	VerifiedAt    *time.Time `json:"verified_at"`
}
