// ABOUTME: Settings-submission ledger for the aios-chat store
// ABOUTME: Idempotent presence markers keyed by tool call id and settings key

package store

import (
	"context"
	"fmt"
	"time"
)

// MarkSettingsSubmitted records that the settings form for a tool call has
// been submitted. The upsert is idempotent: repeated calls with the same
// (tool_call_id, settings_key) leave exactly one row.
func (s *SQLiteStore) MarkSettingsSubmitted(ctx context.Context, toolCallID, settingsKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO settings_submissions (tool_call_id, settings_key, submitted_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, toolCallID, settingsKey, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("marking settings submitted: %w", err)
	}

	s.logger.Debug("marked settings submitted", "tool_call_id", toolCallID, "settings_key", settingsKey)
	return nil
}

// IsSettingsSubmitted reports whether any settings submission exists for the
// given tool call id.
func (s *SQLiteStore) IsSettingsSubmitted(ctx context.Context, toolCallID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM settings_submissions WHERE tool_call_id = ?`,
		toolCallID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying settings submissions: %w", err)
	}

	return count > 0, nil
}
