// Package credentials locates the Gemini API key.
//
// Lookup order: GEMINI_API_KEY, GOOGLE_API_KEY (either may come from a .env
// file loaded by config), then the OS keychain via zalando/go-keyring.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keychain service identifier.
	Service = "vibeprompt"
	// KeychainKey is the keychain entry holding the API key.
	KeychainKey = "gemini-api-key"
)

// EnvVars are checked in order before the keychain.
var EnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// ErrNoAPIKey is returned when no source holds a key.
var ErrNoAPIKey = errors.New("no Gemini API key: set GEMINI_API_KEY or run `vibeprompt auth set`")

// Source says where a key came from.
type Source string

// SourceKeychain marks a key read from the OS keychain. Env sources use the
// variable name.
const SourceKeychain Source = "keychain"

// Resolve returns the first key found and its source.
func Resolve() (string, Source, error) {
	for _, name := range EnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, Source(name), nil
		}
	}

	v, err := keyring.Get(Service, KeychainKey)
	switch {
	case err == nil && strings.TrimSpace(v) != "":
		return strings.TrimSpace(v), SourceKeychain, nil
	case err == nil, errors.Is(err, keyring.ErrNotFound):
		return "", "", ErrNoAPIKey
	default:
		return "", "", fmt.Errorf("reading keychain: %w", err)
	}
}

// Store saves key in the OS keychain.
func Store(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}
	if err := keyring.Set(Service, KeychainKey, key); err != nil {
		return fmt.Errorf("writing keychain: %w", err)
	}
	return nil
}

// Clear removes the key from the OS keychain. Clearing a missing key is fine.
func Clear() error {
	err := keyring.Delete(Service, KeychainKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting keychain entry: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
