// ABOUTME: Secure credential storage using the OS-native keychain
// ABOUTME: Wraps zalando/go-keyring with a fixed set of known credential keys

// Package secrets stores sensitive values like API keys in the operating
// system's native credential store: Keychain on macOS, Credential Manager on
// Windows, Secret Service (libsecret) on Linux. Credentials never touch the
// SQLite database.
package secrets

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

// DefaultService identifies the app's credentials in the keychain
const DefaultService = "com.aios.chat"

// knownKeys enumerates every credential key the app may store. GetAll walks
// this list; keys outside it are never bulk-fetched.
var knownKeys = []string{
	"anthropic_api_key",
	"perplexity_api_key",
	"email_address",
	"email_username",
	"email_password",
	"email_imap_host",
	"email_imap_port",
	"email_imap_security",
	"email_smtp_host",
	"email_smtp_port",
	"email_smtp_security",
	"email_ssl_verify",
}

// Store provides access to the OS credential store under one service name
type Store struct {
	service string
	logger  *slog.Logger
}

// New creates a credential store scoped to the given keychain service name.
// An empty service falls back to DefaultService.
func New(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{
		service: service,
		logger:  slog.Default().With("component", "secrets"),
	}
}

// Get retrieves a credential. An absent key is reported as ok=false, not an
// error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	value, err = keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading credential %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores a credential, overwriting any existing value
func (s *Store) Set(key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("storing credential %q: %w", key, err)
	}
	s.logger.Debug("stored credential", "key", key)
	return nil
}

// Delete removes a credential. Deleting an absent key is a successful no-op.
func (s *Store) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	s.logger.Debug("deleted credential", "key", key)
	return nil
}

// KnownKeys returns the fixed set of credential keys the app uses
func (s *Store) KnownKeys() []string {
	keys := make([]string, len(knownKeys))
	copy(keys, knownKeys)
	return keys
}

// GetAll bulk-fetches every known credential that is currently stored.
// Absent or unreadable entries are skipped, not surfaced.
func (s *Store) GetAll() (map[string]string, error) {
	credentials := make(map[string]string)
	for _, key := range knownKeys {
		value, ok, err := s.Get(key)
		if err != nil {
			s.logger.Warn("skipping unreadable credential", "key", key, "error", err)
			continue
		}
		if ok {
			credentials[key] = value
		}
	}
	return credentials, nil
}
