package models

import (
	"gorm.io/gorm"
)

// User is an individual registrant. The wallet address is the ledger
// identity; the row is only a query mirror of the on-chain registration.
type User struct {
	gorm.Model
	Name          string `gorm:"not null" json:"name"`
	DOB           string `gorm:"default:''" json:"dob"`
	Email         string `gorm:"unique;not null" json:"email"`
	WalletAddress string `gorm:"not null;index" json:"wallet_address"`
	Type          string `gorm:"default:'individual'" json:"type"`
	Status        string `gorm:"default:'active'" json:"status"`
}
