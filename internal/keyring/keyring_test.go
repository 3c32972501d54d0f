package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	gokeyring.MockInit()

	err := SetAPIKey("openai", "sk-test-123")
	if err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	retrieved, err := GetAPIKey("openai")
	if err != nil {
		t.Fatalf("GetAPIKey() failed: %v", err)
	}
	if retrieved != "sk-test-123" {
		t.Errorf("GetAPIKey() = %q, want %q", retrieved, "sk-test-123")
	}
}

func TestKeysAreScopedPerProvider(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("openai", "sk-openai"); err != nil {
		t.Fatalf("SetAPIKey(openai) failed: %v", err)
	}
	if err := SetAPIKey("gemini", "AIza-gemini"); err != nil {
		t.Fatalf("SetAPIKey(gemini) failed: %v", err)
	}

	got, err := GetAPIKey("gemini")
	if err != nil {
		t.Fatalf("GetAPIKey(gemini) failed: %v", err)
	}
	if got != "AIza-gemini" {
		t.Errorf("GetAPIKey(gemini) = %q, want %q", got, "AIza-gemini")
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("openai", ""); err == nil {
		t.Error("SetAPIKey with empty key should return an error")
	}
}

func TestGetAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteAPIKey("openai")

	_, err := GetAPIKey("openai")
	if err != ErrNotFound {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("gemini", "AIza-test"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}

	if err := DeleteAPIKey("gemini"); err != nil {
		t.Fatalf("DeleteAPIKey() failed: %v", err)
	}

	_, err := GetAPIKey("gemini")
	if err != ErrNotFound {
		t.Errorf("After DeleteAPIKey(), GetAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteAPIKey("gemini")

	err := DeleteAPIKey("gemini")
	if err != ErrNotFound {
		t.Errorf("DeleteAPIKey() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
