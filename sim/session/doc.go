// Package session provides session management for the grid robot simulator.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - File-based persistence across restarts
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns one robot plus metadata like creation time and last
// access time.
//
// Session Identifiers:
//
// Sessions use 8-character hexadecimal IDs derived from random UUIDs, short
// enough to type and paste while remaining collision-resistant. Lookup is
// case-insensitive.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session with a generated ID
//	sess, err := manager.Create("", cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
//	// List all active sessions
//	sessions := manager.List()
//
// Persistence:
//
// With NewManagerWithPersistence the manager writes each session to a JSON
// file after every command, reloads missing sessions lazily on Get, and can
// restore the full set at startup with LoadPersistedSessions.
package session
