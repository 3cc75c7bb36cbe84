package coding

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// DecodeHex decodes hex with or without a 0x prefix.
func DecodeHex(in string) ([]byte, error) {
	normalized := in
	if strings.HasPrefix(in, "0x") || strings.HasPrefix(in, "0X") {
		normalized = normalized[2:]
	}

	return hex.DecodeString(normalized)
}

// NormalizeBytesToHex renders bytes the way Substrate nodes do: lowercase with a 0x prefix.
func NormalizeBytesToHex(input []byte) string {
	return strings.ToLower("0x" + hex.EncodeToString(input))
}

// ExtrinsicHash is the blake2b-256 digest of a SCALE encoded extrinsic, which is the transaction hash
// explorers index by.
func ExtrinsicHash(encoded []byte) string {
	digest := blake2b.Sum256(encoded)
	return NormalizeBytesToHex(digest[:])
}

// ShortHash pretty prints a hash in an identifiable and succinct way.
func ShortHash(hash string) string {
	trimmed := strings.TrimPrefix(strings.ToLower(hash), "0x")
	if len(trimmed) <= 12 {
		return "0x" + trimmed
	}

	return fmt.Sprintf("0x%s...%s", trimmed[:6], trimmed[len(trimmed)-6:])
}
