// Package store persists the player's chip balance between sessions as a
// small JSON file under the user config directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultChips is the balance a new player starts with.
const DefaultChips = 1000

// Balance is the persisted player state.
type Balance struct {
	Name  string `json:"name"`
	Chips int    `json:"chips"`
}

// Store reads and writes balances at a fixed path.
type Store struct {
	path string
}

// New returns a Store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// NewDefault returns a Store at the platform config location, e.g.
// ~/.config/pokercoach/balance.json on Linux.
func NewDefault() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	return New(filepath.Join(dir, "pokercoach", "balance.json")), nil
}

// Path returns where the balance file lives.
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved balance. A missing file is not an error: the default
// balance is returned so a first run starts clean.
func (s *Store) Load(name string) (Balance, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Balance{Name: name, Chips: DefaultChips}, nil
	}
	if err != nil {
		return Balance{}, fmt.Errorf("read balance: %w", err)
	}

	var b Balance
	if err := json.Unmarshal(data, &b); err != nil {
		return Balance{}, fmt.Errorf("parse balance: %w", err)
	}
	if b.Chips < 0 {
		return Balance{}, fmt.Errorf("invalid balance: negative chips")
	}
	if name != "" {
		b.Name = name
	}
	return b, nil
}

// Save writes the balance atomically: a temp file in the same directory is
// renamed over the target so a crash never leaves a truncated file.
func (s *Store) Save(b Balance) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode balance: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".balance-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write balance: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace balance file: %w", err)
	}
	return nil
}
