package wallet

import (
	"context"
	"fmt"
	"os"

	"github.com/traumschule/joyutils/crypto"
	"github.com/traumschule/joyutils/extrinsic"
)

// Key types reported for wallet accounts.
const (
	KeyTypeSr25519  = "sr25519"
	KeyTypeEd25519  = "ed25519"
	KeyTypeEcdsa    = "ecdsa"
	KeyTypeEthereum = "ethereum"
)

type Account struct {
	Address string
	Name    string
	Type    string
}

// Wallet is a source of accounts and a signer for them.
type Wallet interface {
	ID() string
	Title() string
	Connect(ctx context.Context) error
	Disconnect() error
	Accounts(ctx context.Context) ([]Account, error)
	Signer() (extrinsic.Signer, error)
}

// KeyringWallet holds a single sr25519 account whose secret URI is read from an environment variable
// when connecting, so it never touches the config file.
type KeyringWallet struct {
	id         string
	secretEnv  string
	ss58Prefix uint16

	keyPair *crypto.KeyPair
}

var _ Wallet = (*KeyringWallet)(nil)

func NewKeyringWallet(id, secretEnv string, ss58Prefix uint16) *KeyringWallet {
	return &KeyringWallet{
		id:         id,
		secretEnv:  secretEnv,
		ss58Prefix: ss58Prefix,
	}
}

func (w *KeyringWallet) ID() string {
	return w.id
}

func (w *KeyringWallet) Title() string {
	return fmt.Sprintf("Keyring (%s)", w.secretEnv)
}

func (w *KeyringWallet) Connect(ctx context.Context) error {
	secret, ok := os.LookupEnv(w.secretEnv)
	if !ok || secret == "" {
		return fmt.Errorf("%w: set %s to a secret URI", ErrNotConnected, w.secretEnv)
	}

	keyPair, err := crypto.NewKeyPairFromSecret(secret, w.ss58Prefix)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}

	w.keyPair = keyPair
	return nil
}

func (w *KeyringWallet) Disconnect() error {
	w.keyPair = nil
	return nil
}

func (w *KeyringWallet) Accounts(ctx context.Context) ([]Account, error) {
	if w.keyPair == nil {
		return nil, ErrNotConnected
	}

	return []Account{{
		Address: w.keyPair.Address(),
		Name:    w.id,
		Type:    KeyTypeSr25519,
	}}, nil
}

// Signer returns the key pair, which the substrate client uses for signing.
func (w *KeyringWallet) Signer() (extrinsic.Signer, error) {
	if w.keyPair == nil {
		return nil, ErrNotConnected
	}
	return w.keyPair, nil
}
