package config

import (
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"
	"github.com/traumschule/joyutils/log"
)

// SettingsStore is a small persisted key-value store over Config.Settings. Every mutation is written
// back to the config file, unless the store was created without a path.
type SettingsStore struct {
	config *Config
	path   string

	logger *log.Logger
	lock   *sync.Mutex
}

func NewSettingsStore(config *Config, path string, logger *log.Logger) *SettingsStore {
	return &SettingsStore{
		config: config,
		path:   path,

		logger: logger.ApplyPrefix("[settings]"),
		lock:   &sync.Mutex{},
	}
}

// Get returns a snapshot of the current settings.
func (s *SettingsStore) Get() Settings {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.config.Settings
}

func (s *SettingsStore) SetWorkingGroup(group string) error {
	if group == "" {
		return errors.New("working group must not be empty")
	}

	return s.update(func(settings *Settings) {
		settings.WorkingGroup = group
	})
}

func (s *SettingsStore) SetJoyUsdRate(rate string) error {
	parsed, err := math.LegacyNewDecFromStr(rate)
	if err != nil {
		return fmt.Errorf("%w: joy_usd_rate %q: %s", ErrInvalidConfig, rate, err)
	}
	if !parsed.IsPositive() {
		return fmt.Errorf("%w: joy_usd_rate must be positive, got %s", ErrInvalidConfig, rate)
	}

	return s.update(func(settings *Settings) {
		settings.JoyUsdRate = rate
	})
}

func (s *SettingsStore) SetTermLength(blocks uint64) error {
	if blocks == 0 {
		return fmt.Errorf("%w: term_length must be positive", ErrInvalidConfig)
	}

	return s.update(func(settings *Settings) {
		settings.TermLength = blocks
	})
}

// SetLastUsedWallet remembers the wallet to reconnect to. An empty id forgets it.
func (s *SettingsStore) SetLastUsedWallet(walletID string) error {
	return s.update(func(settings *Settings) {
		settings.LastUsedWallet = walletID
	})
}

func (s *SettingsStore) LastUsedWallet() string {
	return s.Get().LastUsedWallet
}

func (s *SettingsStore) update(mutate func(*Settings)) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	previous := s.config.Settings
	mutate(&s.config.Settings)
	if s.config.Settings == previous || s.path == "" {
		return nil
	}

	if err := s.config.Save(s.path, s.logger); err != nil {
		s.config.Settings = previous
		return err
	}
	s.logger.Debug("persisted settings", "file", s.path)
	return nil
}
