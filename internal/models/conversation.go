package models

import (
	"fmt"
	"time"
)

// ConversationType categorizes a conversation. The set is fixed.
type ConversationType string

const (
	ConversationDailyCheckin ConversationType = "daily_checkin"
	ConversationWeeklyReview ConversationType = "weekly_review"
	ConversationRoutine      ConversationType = "routine"
	ConversationFinance      ConversationType = "finance"
	ConversationGoals        ConversationType = "goals"
	ConversationGeneral      ConversationType = "general"
)

// ConversationTypes lists all valid conversation types.
var ConversationTypes = []ConversationType{
	ConversationDailyCheckin,
	ConversationWeeklyReview,
	ConversationRoutine,
	ConversationFinance,
	ConversationGoals,
	ConversationGeneral,
}

// ParseConversationType validates s against the fixed type set.
func ParseConversationType(s string) (ConversationType, error) {
	for _, t := range ConversationTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown conversation type: %s", s)
}

// Conversation is a persisted record of an ordered message sequence.
// ID is immutable after creation; UpdatedAt is non-decreasing across
// saves of the same conversation.
type Conversation struct {
	ID        string           `json:"id"`
	Type      ConversationType `json:"type"`
	Title     string           `json:"title,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Messages  []Message        `json:"messages"`
	Metadata  map[string]any   `json:"metadata"`
}

// ConversationSummary is a listing row without the message payload.
type ConversationSummary struct {
	ID        string           `json:"id"`
	Type      ConversationType `json:"type"`
	Title     string           `json:"title,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
