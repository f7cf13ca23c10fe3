package aegis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

// LoadOrCreateWallet reads the guardian keypair from path, generating and
// persisting a fresh one on first run. The file uses the solana-keygen
// JSON byte-array format. The second return value reports whether a new
// keypair was generated.
func LoadOrCreateWallet(path string) (solana.PrivateKey, bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("read keypair %s: %w", path, err)
		}
		return key, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("stat keypair %s: %w", path, err)
	}

	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, false, fmt.Errorf("generate keypair: %w", err)
	}
	if err := writeKeygenFile(path, key); err != nil {
		return nil, false, fmt.Errorf("write keypair %s: %w", path, err)
	}

	return key, true, nil
}

func writeKeygenFile(path string, key solana.PrivateKey) error {
	// solana-keygen stores the 64-byte secret as a JSON array of ints
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
