package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known Anvil deterministic account 0.
const (
	anvilKey0     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	anvilAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestStripHexPrefix(t *testing.T) {
	t.Run("strips 0x marker", func(t *testing.T) {
		assert.Equal(t, "abcdef", StripHexPrefix("0xabcdef"))
	})

	t.Run("strips 0X marker", func(t *testing.T) {
		assert.Equal(t, "abcdef", StripHexPrefix("0Xabcdef"))
	})

	t.Run("leaves bare keys unchanged", func(t *testing.T) {
		assert.Equal(t, anvilKey0, StripHexPrefix(anvilKey0))
	})

	t.Run("handles short strings", func(t *testing.T) {
		assert.Equal(t, "", StripHexPrefix(""))
		assert.Equal(t, "0", StripHexPrefix("0"))
	})
}

func TestAddressFromKey(t *testing.T) {
	t.Run("derives address from bare key", func(t *testing.T) {
		addr, err := AddressFromKey(anvilKey0)
		require.NoError(t, err)
		assert.Equal(t, anvilAddress0, addr.Hex())
	})

	t.Run("derives same address from prefixed key", func(t *testing.T) {
		addr, err := AddressFromKey("0x" + anvilKey0)
		require.NoError(t, err)
		assert.Equal(t, anvilAddress0, addr.Hex())
	})

	t.Run("fails on malformed key", func(t *testing.T) {
		_, err := AddressFromKey("not-a-key")
		assert.Error(t, err)
	})
}
