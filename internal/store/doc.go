// Package store provides persistent storage for aios-chat using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture with narrow
// interfaces:
//
//   - ThreadStore: Conversation thread CRUD
//   - MessageStore: Append-only message persistence per thread
//   - SettingsStore: Settings-submission ledger
//
// SQLiteStore implements all interfaces in a single struct, allowing easy
// composition while maintaining clear interface boundaries. Consumers take
// the interface they need as an explicit dependency; there is no ambient
// "current database" lookup.
//
// # Concurrency
//
// SQLiteStore owns the only handle to the backing file and serializes every
// operation (read or write) behind an internal mutex. The connection pool is
// pinned to a single connection so session pragmas hold for the process
// lifetime. SaveMessage performs its message insert and parent-thread
// timestamp bump under one lock acquisition.
//
// # Schema
//
// Tables are created idempotently on every Open:
//
//	threads(id, title, created_at, updated_at)
//	messages(id, thread_id -> threads ON DELETE CASCADE, role, content,
//	         tool_invocations, created_at)
//	settings_submissions(tool_call_id, settings_key, submitted_at)
//
// The tool_invocations column is added by an additive migration when opening
// a database created before the column existed. Foreign key enforcement is
// enabled per session:
//
//	PRAGMA foreign_keys=ON;
//
// # Error Handling
//
//   - ErrNotFound: Requested entity does not exist (lookups only)
//   - ErrThreadNotFound: Message insert referenced an unknown thread
//
// Deletes and title updates of a missing id are successful no-ops. All
// methods accept context.Context for cancellation support.
package store
