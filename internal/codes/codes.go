// Package codes generates booking reference codes.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	// PNRLength is the length of a passenger name record code.
	PNRLength = 6
	// BoardingPassLength is the length of a boarding pass code.
	BoardingPassLength = 13
)

// MaxAttempts bounds collision retries when a caller needs a code that
// is unique in some scope.
const MaxAttempts = 5

var alphabetLen = big.NewInt(int64(len(alphabet)))

// Generate returns a code of n characters drawn uniformly from A-Z0-9.
func Generate(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("draw random index: %w", err)
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}

// NewPNR returns a fresh 6-character passenger name record code.
func NewPNR() (string, error) {
	return Generate(PNRLength)
}

// NewBoardingPass returns a fresh 13-character boarding pass code.
func NewBoardingPass() (string, error) {
	return Generate(BoardingPassLength)
}
