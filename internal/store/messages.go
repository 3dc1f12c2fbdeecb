// ABOUTME: Message operations for the aios-chat store
// ABOUTME: Append-only inserts that bump the parent thread's freshness timestamp

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveMessage inserts a message into a thread and refreshes the thread's
// updated_at to the message's created_at. Both steps run under one lock
// acquisition, so the pair is indivisible from any other caller's view.
// An insert against a non-existent thread fails with an error wrapping
// ErrThreadNotFound and inserts no row. Returns the materialized message.
func (s *SQLiteStore) SaveMessage(ctx context.Context, threadID string, msg NewMessage) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	saved := &Message{
		ID:              uuid.New().String(),
		ThreadID:        threadID,
		Role:            msg.Role,
		Content:         msg.Content,
		ToolInvocations: msg.ToolInvocations,
		CreatedAt:       now,
	}

	var toolInvocations any
	if msg.ToolInvocations != nil {
		data, err := json.Marshal(msg.ToolInvocations)
		if err != nil {
			return nil, fmt.Errorf("serializing tool invocations: %w", err)
		}
		toolInvocations = string(data)
	}

	query := `
		INSERT INTO messages (id, thread_id, role, content, tool_invocations, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		saved.ID,
		threadID,
		msg.Role,
		msg.Content,
		toolInvocations,
		formatTime(now),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("saving message to thread %q: %w", threadID, ErrThreadNotFound)
		}
		return nil, fmt.Errorf("inserting message: %w", err)
	}

	if err := s.touchThreadLocked(ctx, threadID, now); err != nil {
		return nil, err
	}

	s.logger.Debug("saved message", "id", saved.ID, "thread_id", threadID, "role", msg.Role)
	return saved, nil
}

// ListMessages retrieves all messages for a thread in chronological order
// (oldest first). Returns an empty slice when the thread has no messages or
// does not exist.
func (s *SQLiteStore) ListMessages(ctx context.Context, threadID string) ([]*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, thread_id, role, content, tool_invocations, created_at
		FROM messages
		WHERE thread_id = ?
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var toolInvocations sql.NullString
		var createdAtStr string

		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Role, &msg.Content, &toolInvocations, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}

		if toolInvocations.Valid {
			// A corrupt stored payload degrades to absent rather than
			// failing the whole retrieval
			if err := json.Unmarshal([]byte(toolInvocations.String), &msg.ToolInvocations); err != nil {
				s.logger.Warn("dropping undecodable tool invocations", "message_id", msg.ID, "error", err)
				msg.ToolInvocations = nil
			}
		}
		msg.CreatedAt = s.parseTime(createdAtStr, "created_at")

		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}

// DeleteMessage removes a single message by id.
// Deleting a non-existent message is a successful no-op.
func (s *SQLiteStore) DeleteMessage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}

	s.logger.Debug("deleted message", "id", id)
	return nil
}

// DeleteThreadMessages bulk-removes every message owned by a thread
func (s *SQLiteStore) DeleteThreadMessages(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE thread_id = ?`, threadID)
	if err != nil {
		return fmt.Errorf("deleting thread messages: %w", err)
	}

	s.logger.Debug("deleted thread messages", "thread_id", threadID)
	return nil
}
