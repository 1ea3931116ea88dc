package codes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	for _, n := range []int{PNRLength, BoardingPassLength, 1, 32} {
		code, err := Generate(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q", c)
		}
	}
}

func TestNewPNR(t *testing.T) {
	pnr, err := NewPNR()
	require.NoError(t, err)
	assert.Len(t, pnr, 6)
}

func TestNewBoardingPass(t *testing.T) {
	pass, err := NewBoardingPass()
	require.NoError(t, err)
	assert.Len(t, pass, 13)
}

func TestGenerate_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := Generate(PNRLength)
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from 36^6 possibilities colliding down to one value would
	// mean the generator is broken.
	assert.Greater(t, len(seen), 1)
}
