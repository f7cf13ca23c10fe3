package aegis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardian-keypair.json")

	key, created, err := LoadOrCreateWallet(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, path)

	// a second load reads the persisted key back unchanged
	reloaded, created, err := LoadOrCreateWallet(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, key.PublicKey(), reloaded.PublicKey())
}

func TestLoadOrCreateWalletRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardian-keypair.json")
	require.NoError(t, os.WriteFile(path, []byte("not a keypair"), 0o600))

	_, _, err := LoadOrCreateWallet(path)
	assert.Error(t, err)
}
