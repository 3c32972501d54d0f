package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aide-sh/aide/internal/models"
)

// CreateConversation inserts a new conversation with a fresh id and
// both timestamps set to now. initial may be nil. The record persists
// immediately even with zero messages.
func (s *Store) CreateConversation(convType models.ConversationType, title string, initial []models.Message) (string, error) {
	id := uuid.New().String()
	now := formatTime(nowUTC())

	messagesJSON, err := marshalMessages(initial)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(`
		INSERT INTO conversations (id, type, title, created_at, updated_at, messages, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, string(convType), nullable(title), now, now, messagesJSON, "{}")
	if err != nil {
		return "", fmt.Errorf("creating conversation: %w", err)
	}
	return id, nil
}

// SaveConversation replaces the full message sequence of an existing
// conversation and bumps updated_at; title is updated only when
// non-empty. If no record with the id exists, it inserts one of type
// general, so a caller-supplied id need not come from
// CreateConversation (documented upsert behavior).
func (s *Store) SaveConversation(id string, messages []models.Message, title string) error {
	now := formatTime(nowUTC())

	messagesJSON, err := marshalMessages(messages)
	if err != nil {
		return err
	}

	var existing string
	err = s.db.QueryRow("SELECT id FROM conversations WHERE id = ?", id).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.Exec(`
			INSERT INTO conversations (id, type, title, created_at, updated_at, messages, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, string(models.ConversationGeneral), nullable(title), now, now, messagesJSON, "{}")
		if err != nil {
			return fmt.Errorf("inserting conversation on save: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("checking conversation: %w", err)
	}

	if title != "" {
		_, err = s.db.Exec(`
			UPDATE conversations SET messages = ?, updated_at = ?, title = ? WHERE id = ?`,
			messagesJSON, now, title, id)
	} else {
		_, err = s.db.Exec(`
			UPDATE conversations SET messages = ?, updated_at = ? WHERE id = ?`,
			messagesJSON, now, id)
	}
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	return nil
}

// LoadConversation returns the full record including deserialized
// messages, or ErrNotFound.
func (s *Store) LoadConversation(id string) (models.Conversation, error) {
	row := s.db.QueryRow(`
		SELECT id, type, title, created_at, updated_at, messages, metadata
		FROM conversations WHERE id = ?`, id)
	return scanConversation(row)
}

// GetLatestConversation returns the most recent conversation by
// created_at, optionally filtered by type (empty means any), or
// ErrNotFound. Ties break on id descending.
func (s *Store) GetLatestConversation(convType models.ConversationType) (models.Conversation, error) {
	var row *sql.Row
	if convType != "" {
		row = s.db.QueryRow(`
			SELECT id, type, title, created_at, updated_at, messages, metadata
			FROM conversations WHERE type = ?
			ORDER BY created_at DESC, id DESC LIMIT 1`, string(convType))
	} else {
		row = s.db.QueryRow(`
			SELECT id, type, title, created_at, updated_at, messages, metadata
			FROM conversations
			ORDER BY created_at DESC, id DESC LIMIT 1`)
	}
	return scanConversation(row)
}

// ListConversations returns summaries (no messages or metadata)
// ordered by created_at descending, optionally filtered by type.
func (s *Store) ListConversations(convType models.ConversationType, limit, offset int) ([]models.ConversationSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var rows *sql.Rows
	var err error
	if convType != "" {
		rows, err = s.db.Query(`
			SELECT id, type, title, created_at, updated_at
			FROM conversations WHERE type = ?
			ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			string(convType), limit, offset)
	} else {
		rows, err = s.db.Query(`
			SELECT id, type, title, created_at, updated_at
			FROM conversations
			ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var summaries []models.ConversationSummary
	for rows.Next() {
		var sum models.ConversationSummary
		var typ, createdAt, updatedAt string
		var title sql.NullString

		if err := rows.Scan(&sum.ID, &typ, &title, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation summary: %w", err)
		}
		sum.Type = models.ConversationType(typ)
		sum.Title = title.String
		if sum.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at for %s: %w", sum.ID, err)
		}
		if sum.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at for %s: %w", sum.ID, err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// DeleteConversation removes the record permanently. Returns true if
// a row was removed, false if none matched.
func (s *Store) DeleteConversation(id string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting conversation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanConversation(row *sql.Row) (models.Conversation, error) {
	var conv models.Conversation
	var typ, createdAt, updatedAt, messagesJSON string
	var title, metadataJSON sql.NullString

	err := row.Scan(&conv.ID, &typ, &title, &createdAt, &updatedAt, &messagesJSON, &metadataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrNotFound
	}
	if err != nil {
		return models.Conversation{}, fmt.Errorf("scanning conversation: %w", err)
	}

	conv.Type = models.ConversationType(typ)
	conv.Title = title.String
	if conv.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Conversation{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if conv.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Conversation{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	if conv.Messages, err = unmarshalMessages(messagesJSON); err != nil {
		return models.Conversation{}, err
	}

	conv.Metadata = map[string]any{}
	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &conv.Metadata); err != nil {
			return models.Conversation{}, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return conv, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
