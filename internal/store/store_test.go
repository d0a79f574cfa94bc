package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "balance.json"))

	b, err := s.Load("hero")
	require.NoError(t, err)
	assert.Equal(t, "hero", b.Name)
	assert.Equal(t, DefaultChips, b.Chips)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "balance.json"))

	require.NoError(t, s.Save(Balance{Name: "hero", Chips: 1234}))

	b, err := s.Load("hero")
	require.NoError(t, err)
	assert.Equal(t, 1234, b.Chips)
}

func TestSaveCreatesParentDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "deeper", "balance.json"))
	require.NoError(t, s.Save(Balance{Name: "hero", Chips: 10}))

	b, err := s.Load("hero")
	require.NoError(t, err)
	assert.Equal(t, 10, b.Chips)
}

func TestSaveOverwrites(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "balance.json"))
	require.NoError(t, s.Save(Balance{Name: "hero", Chips: 100}))
	require.NoError(t, s.Save(Balance{Name: "hero", Chips: 200}))

	b, err := s.Load("hero")
	require.NoError(t, err)
	assert.Equal(t, 200, b.Chips)

	// The temp file used for the atomic write must not linger.
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := New(path).Load("hero")
	assert.Error(t, err)
}

func TestLoadRejectsNegativeChips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"hero","chips":-5}`), 0o644))

	_, err := New(path).Load("hero")
	assert.Error(t, err)
}
