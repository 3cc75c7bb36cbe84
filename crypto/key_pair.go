package crypto

import (
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
)

// KeyPair is an sr25519 key derived from a secret URI (mnemonic or dev seed, with optional derivation
// path, ex. "//Alice").
type KeyPair struct {
	pair signature.KeyringPair
}

var _ BytesSigner = (*KeyPair)(nil)

// NewKeyPairFromSecret derives a key pair and renders its address with the given SS58 prefix.
func NewKeyPairFromSecret(secret string, ss58Prefix uint16) (*KeyPair, error) {
	if secret == "" {
		return nil, errors.New("empty secret")
	}

	pair, err := signature.KeyringPairFromSecret(secret, ss58Prefix)
	if err != nil {
		return nil, fmt.Errorf("deriving key pair: %w", err)
	}

	return &KeyPair{pair: pair}, nil
}

func (kp *KeyPair) Address() string {
	return kp.pair.Address
}

func (kp *KeyPair) PublicKey() []byte {
	return kp.pair.PublicKey
}

func (kp *KeyPair) SignBytes(bytesToSign []byte) ([]byte, error) {
	return signature.Sign(bytesToSign, kp.pair.URI)
}

// KeyringPair exposes the key to the substrate client for extrinsic signing.
func (kp *KeyPair) KeyringPair() signature.KeyringPair {
	return kp.pair
}
