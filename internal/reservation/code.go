package reservation

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Cancellation codes are 6 characters drawn from a 36-symbol alphabet.
const (
	codeLength   = 6
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// CodeGenerator produces the secret cancellation codes handed out with new
// reservations.
type CodeGenerator interface {
	NewCode() (string, error)
}

// CryptoCodeGenerator draws each code character from crypto/rand.
type CryptoCodeGenerator struct{}

func (CryptoCodeGenerator) NewCode() (string, error) {
	size := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate cancellation code failed: %w", err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
