package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func randHexUpper(n int) string {
	b := make([]byte, (n+1)/2)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))[:n]
}

// NewApplicationID: APP + year + 8 upper hex, e.g. APP2026A1B2C3D4.
func NewApplicationID() string {
	return "APP" + time.Now().UTC().Format("2006") + randHexUpper(8)
}

// NewDisbursementID: DISB + yyyymmdd + 8 upper hex.
func NewDisbursementID() string {
	return "DISB" + time.Now().UTC().Format("20060102") + randHexUpper(8)
}

// NewTransactionID: TXN + yyyymmdd + 8 upper hex.
func NewTransactionID() string {
	return "TXN" + time.Now().UTC().Format("20060102") + randHexUpper(8)
}

// NewBatchID groups the disbursements of one DBT call under one id.
func NewBatchID() string {
	u := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "DBT" + time.Now().UTC().Format("200601021504") + u[:6]
}

// NewTransferReference is generated only for successful simulated transfers.
func NewTransferReference() string {
	return "DBT" + time.Now().UTC().Format("20060102150405") + randHexUpper(4)
}
