package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a 32-char lowercase hex identifier. Ledger entities (loans,
// repayments, approvals, signatures, contributions, expenses) are addressed
// by one of these on the wire; numeric primary keys stay internal.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
