package utils

import (
	"log"
	"os"
)

// IsProduction masks personal data in logs when the server runs in release
// mode.
var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production"

// MaskEmail hides an email address in production logs.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

// MaskID keeps the first 8 characters of an ID in production logs.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// LogAuthAction logs a signup/login/logout attempt without leaking the email
// in production.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, MaskEmail(email), status)
}

// LogTransactionAction logs a transaction mutation without leaking amounts.
func LogTransactionAction(action, transactionID, userID string) {
	log.Printf("[Transaction] %s - Transaction: %s User: %s",
		action, MaskID(transactionID), MaskID(userID))
}
