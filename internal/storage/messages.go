package storage

import (
	"encoding/json"
	"fmt"

	"github.com/aide-sh/aide/internal/models"
)

// Persisted message encoding: a JSON array of {type, content} where
// type is "HumanMessage" or "AIMessage". The tags are part of the
// on-disk compatibility contract and must not change.
const (
	tagHuman     = "HumanMessage"
	tagAssistant = "AIMessage"
)

type wireMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func marshalMessages(messages []models.Message) (string, error) {
	wire := make([]wireMessage, len(messages))
	for i, m := range messages {
		tag := tagHuman
		if m.Role == models.RoleAssistant {
			tag = tagAssistant
		}
		wire[i] = wireMessage{Type: tag, Content: m.Content}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encoding messages: %w", err)
	}
	return string(data), nil
}

// unmarshalMessages decodes the persisted array. An unrecognized type
// tag is corruption and fails loudly rather than dropping the entry.
func unmarshalMessages(data string) ([]models.Message, error) {
	var wire []wireMessage
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("decoding messages: %w", err)
	}

	messages := make([]models.Message, 0, len(wire))
	for _, w := range wire {
		switch w.Type {
		case tagHuman:
			messages = append(messages, models.Human(w.Content))
		case tagAssistant:
			messages = append(messages, models.Assistant(w.Content))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, w.Type)
		}
	}
	return messages, nil
}
