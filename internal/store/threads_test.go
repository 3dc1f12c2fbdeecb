// ABOUTME: Tests for thread store operations
// ABOUTME: Covers creation, listing order, title updates, and cascading delete

package store

import (
	"context"
	"testing"
	"time"
)

func TestCreateThread(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	thread, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}

	if thread.ID == "" {
		t.Error("expected generated ID")
	}
	if thread.Title != nil {
		t.Errorf("expected nil title, got %q", *thread.Title)
	}
	if thread.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if !thread.UpdatedAt.Equal(thread.CreatedAt) {
		t.Errorf("expected UpdatedAt == CreatedAt, got %v != %v", thread.UpdatedAt, thread.CreatedAt)
	}

	got, err := store.GetThread(ctx, thread.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if got.ID != thread.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, thread.ID)
	}
	if got.Title != nil {
		t.Errorf("expected nil title after read-back, got %q", *got.Title)
	}
	if !got.CreatedAt.Equal(thread.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, thread.CreatedAt)
	}
}

func TestGetThread_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetThread(context.Background(), "nonexistent")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListThreads_Empty(t *testing.T) {
	store := newTestStore(t)

	threads, err := store.ListThreads(context.Background())
	if err != nil {
		t.Fatalf("ListThreads failed: %v", err)
	}
	if len(threads) != 0 {
		t.Errorf("expected no threads, got %d", len(threads))
	}
}

func TestListThreads_MostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	second, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}

	threads, err := store.ListThreads(ctx)
	if err != nil {
		t.Fatalf("ListThreads failed: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].ID != second.ID || threads[1].ID != first.ID {
		t.Errorf("expected [%s %s], got [%s %s]", second.ID, first.ID, threads[0].ID, threads[1].ID)
	}

	// Activity on the older thread moves it to the front
	if _, err := store.SaveMessage(ctx, first.ID, NewMessage{Role: "user", Content: "bump"}); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	threads, err = store.ListThreads(ctx)
	if err != nil {
		t.Fatalf("ListThreads failed: %v", err)
	}
	if threads[0].ID != first.ID {
		t.Errorf("expected thread %s first after message, got %s", first.ID, threads[0].ID)
	}
}

func TestUpdateThreadTitle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	thread, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}

	if err := store.UpdateThreadTitle(ctx, thread.ID, "Trip planning"); err != nil {
		t.Fatalf("UpdateThreadTitle failed: %v", err)
	}

	got, err := store.GetThread(ctx, thread.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if got.Title == nil || *got.Title != "Trip planning" {
		t.Errorf("title not updated: got %v", got.Title)
	}
	if got.UpdatedAt.Before(thread.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed: %v < %v", got.UpdatedAt, thread.UpdatedAt)
	}
	if !got.CreatedAt.Equal(thread.CreatedAt) {
		t.Errorf("CreatedAt must be immutable: got %v, want %v", got.CreatedAt, thread.CreatedAt)
	}
}

func TestUpdateThreadTitle_MissingThreadIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.UpdateThreadTitle(ctx, "nonexistent", "whatever"); err != nil {
		t.Errorf("expected no-op success for missing thread, got %v", err)
	}

	threads, err := store.ListThreads(ctx)
	if err != nil {
		t.Fatalf("ListThreads failed: %v", err)
	}
	if len(threads) != 0 {
		t.Errorf("no-op update must not create threads, got %d", len(threads))
	}
}

func TestDeleteThread_CascadesToMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	thread, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	for _, content := range []string{"one", "two", "three"} {
		if _, err := store.SaveMessage(ctx, thread.ID, NewMessage{Role: "user", Content: content}); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	if err := store.DeleteThread(ctx, thread.ID); err != nil {
		t.Fatalf("DeleteThread failed: %v", err)
	}

	if _, err := store.GetThread(ctx, thread.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Listing messages of the deleted thread returns empty, not an error
	messages, err := store.ListMessages(ctx, thread.ID)
	if err != nil {
		t.Fatalf("ListMessages after delete failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected cascade to remove messages, got %d", len(messages))
	}
}

func TestDeleteThread_MissingThreadIsNoOp(t *testing.T) {
	store := newTestStore(t)

	if err := store.DeleteThread(context.Background(), "nonexistent"); err != nil {
		t.Errorf("expected no-op success for missing thread, got %v", err)
	}
}

func TestThreadTimestampsRoundTripUTC(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC()
	thread, err := store.CreateThread(ctx)
	if err != nil {
		t.Fatalf("CreateThread failed: %v", err)
	}
	after := time.Now().UTC()

	got, err := store.GetThread(ctx, thread.ID)
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if got.CreatedAt.Before(before) || got.CreatedAt.After(after) {
		t.Errorf("CreatedAt %v outside [%v, %v]", got.CreatedAt, before, after)
	}
}
