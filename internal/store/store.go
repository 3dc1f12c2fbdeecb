// ABOUTME: Store interfaces and data types for aios-chat persistence
// ABOUTME: Defines Thread, Message structs and the narrow store interfaces

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrThreadNotFound is returned when a message insert references a thread
// that does not exist (foreign key violation)
var ErrThreadNotFound = errors.New("thread does not exist")

// Thread represents a conversation container owning an ordered set of messages.
// Title is nil until the user (or the app) names the conversation.
type Thread struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message represents a single turn within a thread.
// ToolInvocations is opaque to this layer: stored and returned verbatim.
type Message struct {
	ID              string            `json:"id"`
	ThreadID        string            `json:"threadId"`
	Role            string            `json:"role"`
	Content         string            `json:"content"`
	ToolInvocations []json.RawMessage `json:"toolInvocations,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// NewMessage carries the caller-supplied fields of a message to be saved.
// ID and CreatedAt are generated by the store.
type NewMessage struct {
	Role            string            `json:"role"`
	Content         string            `json:"content"`
	ToolInvocations []json.RawMessage `json:"toolInvocations,omitempty"`
}

// ThreadStore defines thread CRUD operations
type ThreadStore interface {
	CreateThread(ctx context.Context) (*Thread, error)
	GetThread(ctx context.Context, id string) (*Thread, error)
	ListThreads(ctx context.Context) ([]*Thread, error)
	UpdateThreadTitle(ctx context.Context, id, title string) error
	DeleteThread(ctx context.Context, id string) error
}

// MessageStore defines message operations. Messages are append-only:
// there is no update, only insert and delete.
type MessageStore interface {
	SaveMessage(ctx context.Context, threadID string, msg NewMessage) (*Message, error)
	ListMessages(ctx context.Context, threadID string) ([]*Message, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteThreadMessages(ctx context.Context, threadID string) error
}

// SettingsStore defines the settings-submission ledger: an idempotent
// presence marker keyed by tool call id and settings key.
type SettingsStore interface {
	MarkSettingsSubmitted(ctx context.Context, toolCallID, settingsKey string) error
	IsSettingsSubmitted(ctx context.Context, toolCallID string) (bool, error)
}
