// ABOUTME: Tests for the OS keychain credential store
// ABOUTME: Uses the keyring mock provider to avoid touching the real keychain

package secrets

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	keyring.MockInit()
	return New("com.aios.chat.test")
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("anthropic_api_key", "sk-ant-test"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := store.Get("anthropic_api_key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected credential to be present")
	}
	if value != "sk-ant-test" {
		t.Errorf("value mismatch: got %q, want %q", value, "sk-ant-test")
	}
}

func TestGet_Absent(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("perplexity_api_key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected absent credential to report ok=false")
	}
}

func TestSet_Overwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("email_password", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("email_password", "second"); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	value, ok, err := store.Get("email_password")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if value != "second" {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("email_address", "user@example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete("email_address"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := store.Get("email_address")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected credential to be gone after delete")
	}

	// Deleting an absent key is a success, not an error
	if err := store.Delete("email_address"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestGetAll(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("anthropic_api_key", "sk-ant-test"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("email_imap_host", "imap.example.com"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// A key outside the known set must not appear in bulk fetches
	if err := store.Set("unknown_key", "ignored"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	if len(all) != 2 {
		t.Errorf("expected 2 credentials, got %d: %v", len(all), all)
	}
	if all["anthropic_api_key"] != "sk-ant-test" {
		t.Errorf("anthropic_api_key mismatch: %q", all["anthropic_api_key"])
	}
	if all["email_imap_host"] != "imap.example.com" {
		t.Errorf("email_imap_host mismatch: %q", all["email_imap_host"])
	}
}

func TestKnownKeys_Copy(t *testing.T) {
	store := newTestStore(t)

	keys := store.KnownKeys()
	if len(keys) == 0 {
		t.Fatal("expected known keys")
	}

	keys[0] = "mutated"
	if store.KnownKeys()[0] == "mutated" {
		t.Error("KnownKeys must return a copy")
	}
}
