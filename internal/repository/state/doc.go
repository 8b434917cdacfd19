// Package state implements persistence for the monitoring state.
//
// The Repository interface covers the alarm status, the arming status and the
// sensor set. Two backends are provided: MemoryRepository for tests and
// ephemeral runs, and SQLiteRepository for durable state across restarts.
package state
