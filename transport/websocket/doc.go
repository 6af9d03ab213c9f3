// Package websocket provides WebSocket transport for the grid robot
// simulator.
//
// The websocket package implements:
//   - Real-time state streaming to observers
//   - Session-aware WebSocket connections
//   - Automatic broadcasting after each executed command
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. Connections are
// observation-only: robots are driven through the HTTP, REPL or MCP
// front-ends, and the hub fans the resulting state snapshots out to
// whoever is watching.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//
//	{"session_id": "1a2b3c4d", "event": "state_update", "state": {...}}
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=1a2b3c4d)
// when establishing the connection. State updates are broadcast only to
// clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After a command executes:
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// All session bookkeeping happens on the hub goroutine; producers hand
// messages over through a buffered channel and never block the command
// path.
package websocket
