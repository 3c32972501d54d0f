package cli

import (
	"testing"

	"github.com/aide-sh/aide/internal/models"
)

func TestParseTypeDefaultsToGeneral(t *testing.T) {
	got, err := parseType("")
	if err != nil {
		t.Fatalf("parseType(\"\"): %v", err)
	}
	if got != models.ConversationGeneral {
		t.Errorf("got %q, want %q", got, models.ConversationGeneral)
	}
}

func TestParseTypeIsCaseInsensitive(t *testing.T) {
	got, err := parseType("Daily_Checkin")
	if err != nil {
		t.Fatalf("parseType: %v", err)
	}
	if got != models.ConversationDailyCheckin {
		t.Errorf("got %q, want %q", got, models.ConversationDailyCheckin)
	}
}

func TestParseTypeRejectsUnknown(t *testing.T) {
	if _, err := parseType("gossip"); err == nil {
		t.Error("expected error for unknown conversation type")
	}
}
