// Package wallet handles operator credential normalization and address
// derivation for batch poster and validator keys.
package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// StripHexPrefix drops a leading 0x marker from a private key. This is a
// syntactic normalization only; the key material is unchanged.
func StripHexPrefix(key string) string {
	if len(key) >= 2 && key[0] == '0' && (key[1] == 'x' || key[1] == 'X') {
		return key[2:]
	}
	return key
}

// AddressFromKey derives the operator address for a hex-encoded private key.
// A leading 0x marker is accepted and stripped.
func AddressFromKey(privateKey string) (common.Address, error) {
	key, err := crypto.HexToECDSA(StripHexPrefix(privateKey))
	if err != nil {
		return common.Address{}, fmt.Errorf("parse private key: %w", err)
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}
