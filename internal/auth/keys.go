// Package auth provides password hashing and access token issuance/verification.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PASETO v4 requires a 256-bit (32-byte) symmetric key.
	keyLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	keyHexLength = 64
)

// LoadOrGenerateKey resolves the PASETO v4 symmetric key for access tokens.
//
// Resolution order:
//  1. The ACCESS_TOKEN_KEY environment variable (hex-encoded), so deployments
//     can inject the signing secret without touching disk.
//  2. <dataPath>/auth.key, a hex-encoded key file.
//  3. A freshly generated key, persisted to <dataPath>/auth.key.
//
// Returns the decoded 32-byte key ready for use.
func LoadOrGenerateKey(dataPath string) ([]byte, error) {
	if envKey := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_KEY")); envKey != "" {
		return decodeKeyHex(envKey)
	}

	keyPath := filepath.Join(dataPath, "auth.key")

	//#nosec G304 -- Auth key path is derived from validated data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		return decodeKeyHex(strings.TrimSpace(string(keyBytes)))
	}

	// Generate a new key (32 bytes = 256 bits for PASETO v4).
	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate auth key: %w", err)
	}

	keyHex := hex.EncodeToString(key)

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Save key to file with restricted permissions.
	if err := os.WriteFile(keyPath, []byte(keyHex), 0o600); err != nil {
		return nil, fmt.Errorf("failed to save auth key: %w", err)
	}

	return key, nil
}

// decodeKeyHex validates and decodes a hex-encoded 32-byte key.
func decodeKeyHex(keyHex string) ([]byte, error) {
	if len(keyHex) != keyHexLength {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key format: not valid hex: %w", err)
	}

	return key, nil
}
