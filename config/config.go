package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	// NEAR ledger
	NetworkID    string
	NodeURL      string
	RelayURL     string // signing relay for change calls
	ContractName string

	// Pinata content store
	PinataBaseURL   string
	PinataAPIKey    string
	PinataSecretKey string
	PinataGateway   string

	// Notifications
	SendGridKey string
	EmailSender string

	// Pre-role-system accounts with admin-equivalent access
	LegacyAdmins []string

	// Cron expression for the mirror drift audit
	MirrorAuditSchedule string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "5000"),

		NetworkID:    getEnv("NEAR_NETWORK_ID", "testnet"),
		NodeURL:      getEnv("NEAR_NODE_URL", "https://rpc.testnet.near.org"),
		RelayURL:     getEnv("NEAR_RELAY_URL", "http://localhost:3030"),
		ContractName: getEnv("NEAR_CONTRACT_NAME", "achievo.testnet"),

		PinataBaseURL:   getEnv("PINATA_BASE_URL", "https://api.pinata.cloud"),
		PinataAPIKey:    getEnv("PINATA_API_KEY", ""),
		PinataSecretKey: getEnv("PINATA_SECRET_API_KEY", ""),
		PinataGateway:   getEnv("PINATA_GATEWAY", "https://gateway.pinata.cloud/ipfs"),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@achievo.io"),

		LegacyAdmins: getEnvList("LEGACY_ADMIN_ACCOUNTS", "achievo.testnet,achievo-admin.testnet"),

		MirrorAuditSchedule: getEnv("MIRROR_AUDIT_SCHEDULE", "@every 15m"),
	}

	// Validate critical configuration
	if AppConfig.PinataAPIKey == "" {
		log.Println("Warning: PINATA_API_KEY is not set. Certificate metadata uploads will fail.")
	}
	if AppConfig.SendGridKey == "" {
		log.Println("Warning: SENDGRID_API_KEY is not set. Verification emails will be skipped.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvList retrieves a comma-separated environment variable as a slice
func getEnvList(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
