package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/traumschule/joyutils/arrays"
	"github.com/traumschule/joyutils/config"
	"github.com/traumschule/joyutils/crypto"
	"github.com/traumschule/joyutils/extrinsic"
	"github.com/traumschule/joyutils/log"
)

type Status string

const (
	StatusUnknown      Status = "unknown"
	StatusPending      Status = "pending"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// Store is the wallet session shared by the application: which wallet is connected and the accounts it
// exposes. Only sr25519 accounts are kept, rendered with the network's SS58 prefix.
type Store struct {
	wallets    []Wallet
	settings   *config.SettingsStore
	ss58Prefix uint16
	logger     *log.Logger

	lock     sync.RWMutex
	status   Status
	wallet   Wallet
	accounts []Account
}

// NewStore creates a disconnected store. settings may be nil, in which case the last used wallet is not
// remembered.
func NewStore(wallets []Wallet, settings *config.SettingsStore, ss58Prefix uint16, logger *log.Logger) *Store {
	return &Store{
		wallets:    wallets,
		settings:   settings,
		ss58Prefix: ss58Prefix,
		logger:     logger.ApplyPrefix("[wallet]"),
		status:     StatusUnknown,
	}
}

// Wallets lists the wallets that can be connected.
func (s *Store) Wallets() []Wallet {
	return s.wallets
}

// Connect connects to the wallet with the given id and loads its accounts.
func (s *Store) Connect(ctx context.Context, walletID string) error {
	selected, ok := arrays.Find(s.wallets, func(w Wallet) bool { return w.ID() == walletID })
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWallet, walletID)
	}
	logger := s.logger.With("wallet", walletID)

	s.lock.Lock()
	s.status = StatusPending
	s.lock.Unlock()

	accounts, err := s.connect(ctx, selected)
	if err != nil {
		s.lock.Lock()
		s.status = StatusDisconnected
		s.wallet = nil
		s.accounts = nil
		s.lock.Unlock()

		logger.Warn("failed to connect", "error", err.Error())
		return err
	}

	s.lock.Lock()
	s.status = StatusConnected
	s.wallet = selected
	s.accounts = accounts
	s.lock.Unlock()
	logger.Info("connected", "accounts", len(accounts))

	if s.settings != nil {
		if err := s.settings.SetLastUsedWallet(walletID); err != nil {
			logger.Warn("failed to remember wallet", "error", err.Error())
		}
	}
	return nil
}

func (s *Store) connect(ctx context.Context, selected Wallet) ([]Account, error) {
	if err := selected.Connect(ctx); err != nil {
		return nil, err
	}

	all, err := selected.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	sr25519 := arrays.Filter(all, func(a Account) bool { return a.Type == KeyTypeSr25519 })
	accounts := make([]Account, 0, len(sr25519))
	for _, account := range sr25519 {
		formatted, err := crypto.FormatAddress(account.Address, s.ss58Prefix)
		if err != nil {
			s.logger.Debug("skipping account", "address", account.Address, "error", err.Error())
			continue
		}
		account.Address = formatted
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Reconnect connects to the last used wallet, if one is remembered.
func (s *Store) Reconnect(ctx context.Context) error {
	if s.settings == nil {
		return nil
	}

	last := s.settings.LastUsedWallet()
	if last == "" {
		return nil
	}
	return s.Connect(ctx, last)
}

// Disconnect drops the session and forgets the last used wallet.
func (s *Store) Disconnect() error {
	s.lock.Lock()
	connected := s.wallet
	s.status = StatusDisconnected
	s.wallet = nil
	s.accounts = nil
	s.lock.Unlock()

	if connected != nil {
		if err := connected.Disconnect(); err != nil {
			return err
		}
	}

	if s.settings != nil {
		return s.settings.SetLastUsedWallet("")
	}
	return nil
}

func (s *Store) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.status
}

func (s *Store) Wallet() Wallet {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.wallet
}

func (s *Store) Accounts() []Account {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]Account(nil), s.accounts...)
}

// HasAccount reports whether address belongs to the connected wallet, whatever its SS58 prefix.
func (s *Store) HasAccount(address string) bool {
	return arrays.Any(s.Accounts(), func(a Account) bool { return crypto.SameAccount(a.Address, address) })
}

// Signer returns the connected wallet's signer.
func (s *Store) Signer() (extrinsic.Signer, error) {
	s.lock.RLock()
	connected := s.wallet
	s.lock.RUnlock()

	if connected == nil {
		return nil, fmt.Errorf("%w: %w", extrinsic.ErrMissingPrerequisite, ErrNotConnected)
	}

	signer, err := connected.Signer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", extrinsic.ErrMissingPrerequisite, err)
	}
	return signer, nil
}
