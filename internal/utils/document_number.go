package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Prefixes of generated business document numbers.
const (
	PrefixContract = "CT"
	PrefixInvoice  = "INV"
	PrefixPurchase = "PO"
	PrefixJournal  = "JE"
)

// NewDocumentNumber returns "<PREFIX>-YYYYMMDD-XXXXXX" with a random uppercase hex suffix.
func NewDocumentNumber(prefix string, at time.Time) (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%s-%s-%s", prefix, at.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(b))), nil
}
