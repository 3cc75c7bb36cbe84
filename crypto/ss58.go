package crypto

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vedhavyas/go-subkey/v2"
)

var ErrInvalidAddress = errors.New("invalid address")

// FormatAddress re-encodes an SS58 address with another network prefix.
func FormatAddress(address string, ss58Prefix uint16) (string, error) {
	_, publicKey, err := subkey.SS58Decode(address)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidAddress, address, err)
	}

	return subkey.SS58Encode(publicKey, ss58Prefix), nil
}

// SameAccount reports whether two SS58 addresses hold the same public key, regardless of prefix.
func SameAccount(a, b string) bool {
	_, keyA, err := subkey.SS58Decode(a)
	if err != nil {
		return false
	}
	_, keyB, err := subkey.SS58Decode(b)
	if err != nil {
		return false
	}

	return bytes.Equal(keyA, keyB)
}
