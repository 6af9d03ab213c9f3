// Package api provides HTTP REST API handlers for the grid robot simulator.
//
// The api package implements:
//   - A single command endpoint driving a shared default robot
//   - RESTful endpoints for session-scoped robot operations
//   - Session management endpoints
//   - Scenario configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Command:
//   - POST /command - Execute a command against the shared default robot
//   - GET  /health  - Liveness check
//
// Session Management:
//   - POST   /api/sessions      - Create new session
//   - GET    /api/sessions      - List all sessions
//   - GET    /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Robot Operations:
//   - GET  /api/sessions/{id}/state   - Current robot state
//   - POST /api/sessions/{id}/command - Execute a single command
//   - POST /api/sessions/{id}/batch   - Execute commands, stop on failure
//   - POST /api/sessions/{id}/reset   - Reinitialize from scenario config
//   - GET  /api/sessions/{id}/history - Paginated command history
//
// Configuration:
//   - GET  /api/configs        - List available scenarios
//   - POST /api/configs        - Save a scenario
//   - GET  /api/configs/{name} - Fetch one scenario
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Commands are sent as POST with a
// JSON body:
//
//	{
//	  "command": "forward|left|right|diagonal|add_obstacle|remove_obstacle|expand|report|display|reset",
//	  "args": ["northeast"]
//	}
//
// and answered with:
//
//	{
//	  "success": true,
//	  "message": "Moved forward to (0, 1)",
//	  "state": { "position": {"x":0,"y":1}, "direction": "NORTH", "battery": 95, ... }
//	}
//
// A command that violates a precondition (battery, bounds, obstacle) is a
// 200 response with success=false; HTTP error codes are reserved for
// transport-level problems such as unknown sessions or bad JSON.
//
// Error Handling:
//
// Transport errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
