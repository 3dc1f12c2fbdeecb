// ABOUTME: Thread CRUD operations for the aios-chat store
// ABOUTME: Threads are created empty, listed by recent activity, deleted with cascade

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateThread creates a new thread with a generated id, no title, and
// created_at = updated_at = now. Returns the materialized thread.
func (s *SQLiteStore) CreateThread(ctx context.Context) (*Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	thread := &Thread{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO threads (id, title, created_at, updated_at)
		VALUES (?, NULL, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, thread.ID, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting thread: %w", err)
	}

	s.logger.Debug("created thread", "id", thread.ID)
	return thread, nil
}

// GetThread retrieves a thread by ID.
// Returns ErrNotFound if the thread doesn't exist.
func (s *SQLiteStore) GetThread(ctx context.Context, id string) (*Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, title, created_at, updated_at
		FROM threads
		WHERE id = ?
	`

	var thread Thread
	var title sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&thread.ID,
		&title,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying thread: %w", err)
	}

	if title.Valid {
		thread.Title = &title.String
	}
	thread.CreatedAt = s.parseTime(createdAtStr, "created_at")
	thread.UpdatedAt = s.parseTime(updatedAtStr, "updated_at")

	return &thread, nil
}

// ListThreads retrieves all threads ordered by most recent activity.
// Returns an empty slice, not an error, when no threads exist.
func (s *SQLiteStore) ListThreads(ctx context.Context) ([]*Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT id, title, created_at, updated_at
		FROM threads
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying threads: %w", err)
	}
	defer rows.Close()

	var threads []*Thread
	for rows.Next() {
		var thread Thread
		var title sql.NullString
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(&thread.ID, &title, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning thread row: %w", err)
		}

		if title.Valid {
			thread.Title = &title.String
		}
		thread.CreatedAt = s.parseTime(createdAtStr, "created_at")
		thread.UpdatedAt = s.parseTime(updatedAtStr, "updated_at")

		threads = append(threads, &thread)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating thread rows: %w", err)
	}

	return threads, nil
}

// UpdateThreadTitle overwrites the thread's title and refreshes updated_at.
// Updating a non-existent thread is a successful no-op; callers needing
// existence confirmation should GetThread first.
func (s *SQLiteStore) UpdateThreadTitle(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE threads
		SET title = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query, title, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating thread title: %w", err)
	}

	s.logger.Debug("updated thread title", "id", id)
	return nil
}

// DeleteThread removes a thread and, via the cascade constraint, all its
// messages. Deleting a non-existent thread is a successful no-op.
func (s *SQLiteStore) DeleteThread(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting thread: %w", err)
	}

	s.logger.Debug("deleted thread", "id", id)
	return nil
}

// touchThreadLocked refreshes the thread's updated_at without altering the
// title. Caller must hold s.mu.
func (s *SQLiteStore) touchThreadLocked(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE threads SET updated_at = ? WHERE id = ?`,
		formatTime(at), id,
	)
	if err != nil {
		return fmt.Errorf("touching thread: %w", err)
	}
	return nil
}
