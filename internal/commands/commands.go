// ABOUTME: Command dispatch surface invoked by the desktop shell
// ABOUTME: Maps command names plus JSON args onto store and keychain operations

// Package commands exposes the persistence layer to the GUI shell. Each
// command takes JSON-shaped arguments and returns a structured result; the
// serving loop flattens any error into a single message string.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aios/aios-chat/internal/secrets"
	"github.com/aios/aios-chat/internal/store"
)

// ErrUnknownCommand is returned when the shell asks for a command that
// does not exist
var ErrUnknownCommand = errors.New("unknown command")

// Dispatcher routes shell commands to the store and the credential store.
// Dependencies are injected explicitly; there is no ambient registry.
type Dispatcher struct {
	threads     store.ThreadStore
	messages    store.MessageStore
	settings    store.SettingsStore
	credentials *secrets.Store
	logger      *slog.Logger
}

// New creates a dispatcher bound to the given stores
func New(threads store.ThreadStore, messages store.MessageStore, settings store.SettingsStore, credentials *secrets.Store) *Dispatcher {
	return &Dispatcher{
		threads:     threads,
		messages:    messages,
		settings:    settings,
		credentials: credentials,
		logger:      slog.Default().With("component", "commands"),
	}
}

// Dispatch executes a named command with raw JSON arguments and returns its
// structured result. Lookup misses surface as a null result; every other
// failure is an error for the caller to flatten.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, args json.RawMessage) (any, error) {
	d.logger.Debug("dispatching command", "command", command)

	switch command {
	case "create_thread":
		return d.threads.CreateThread(ctx)
	case "list_threads":
		return d.listThreads(ctx)
	case "get_thread":
		return d.getThread(ctx, args)
	case "delete_thread":
		return d.deleteThread(ctx, args)
	case "update_thread_title":
		return d.updateThreadTitle(ctx, args)
	case "save_message":
		return d.saveMessage(ctx, args)
	case "get_messages":
		return d.getMessages(ctx, args)
	case "delete_message":
		return d.deleteMessage(ctx, args)
	case "mark_settings_submitted":
		return d.markSettingsSubmitted(ctx, args)
	case "is_settings_submitted":
		return d.isSettingsSubmitted(ctx, args)
	case "get_credential":
		return d.getCredential(args)
	case "set_credential":
		return d.setCredential(args)
	case "delete_credential":
		return d.deleteCredential(args)
	case "get_all_credentials":
		return d.credentials.GetAll()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// decode unmarshals command arguments into a typed struct
func decode(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return errors.New("missing command arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("decoding command arguments: %w", err)
	}
	return nil
}

type threadIDArgs struct {
	ID string `json:"id"`
}

type updateTitleArgs struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type saveMessageArgs struct {
	ThreadID string           `json:"threadId"`
	Message  store.NewMessage `json:"message"`
}

type threadMessagesArgs struct {
	ThreadID string `json:"threadId"`
}

type deleteMessageArgs struct {
	MessageID string `json:"messageId"`
}

type settingsArgs struct {
	ToolCallID  string `json:"toolCallId"`
	SettingsKey string `json:"settingsKey"`
}

type credentialArgs struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (d *Dispatcher) listThreads(ctx context.Context) (any, error) {
	threads, err := d.threads.ListThreads(ctx)
	if err != nil {
		return nil, err
	}
	if threads == nil {
		threads = []*store.Thread{}
	}
	return threads, nil
}

func (d *Dispatcher) getThread(ctx context.Context, args json.RawMessage) (any, error) {
	var a threadIDArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	thread, err := d.threads.GetThread(ctx, a.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Absence is a null result for the shell, not an error
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (d *Dispatcher) deleteThread(ctx context.Context, args json.RawMessage) (any, error) {
	var a threadIDArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.threads.DeleteThread(ctx, a.ID)
}

func (d *Dispatcher) updateThreadTitle(ctx context.Context, args json.RawMessage) (any, error) {
	var a updateTitleArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.threads.UpdateThreadTitle(ctx, a.ID, a.Title)
}

func (d *Dispatcher) saveMessage(ctx context.Context, args json.RawMessage) (any, error) {
	var a saveMessageArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return d.messages.SaveMessage(ctx, a.ThreadID, a.Message)
}

func (d *Dispatcher) getMessages(ctx context.Context, args json.RawMessage) (any, error) {
	var a threadMessagesArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	messages, err := d.messages.ListMessages(ctx, a.ThreadID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*store.Message{}
	}
	return messages, nil
}

func (d *Dispatcher) deleteMessage(ctx context.Context, args json.RawMessage) (any, error) {
	var a deleteMessageArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.messages.DeleteMessage(ctx, a.MessageID)
}

func (d *Dispatcher) markSettingsSubmitted(ctx context.Context, args json.RawMessage) (any, error) {
	var a settingsArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.settings.MarkSettingsSubmitted(ctx, a.ToolCallID, a.SettingsKey)
}

func (d *Dispatcher) isSettingsSubmitted(ctx context.Context, args json.RawMessage) (any, error) {
	var a settingsArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return d.settings.IsSettingsSubmitted(ctx, a.ToolCallID)
}

func (d *Dispatcher) getCredential(args json.RawMessage) (any, error) {
	var a credentialArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	value, ok, err := d.credentials.Get(a.Key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (d *Dispatcher) setCredential(args json.RawMessage) (any, error) {
	var a credentialArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.credentials.Set(a.Key, a.Value)
}

func (d *Dispatcher) deleteCredential(args json.RawMessage) (any, error) {
	var a credentialArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, d.credentials.Delete(a.Key)
}
