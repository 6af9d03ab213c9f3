// Package mcp provides a Model Context Protocol server for the grid robot
// simulator.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for robot operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - robot_state: Get current robot state with grid rendering
//   - execute_command: Run a single textual command
//   - run_commands: Run a command sequence, stopping at the first failure
//   - reset_robot: Reset the robot to its scenario's initial state
//   - command_history: Retrieve command history with pagination
//   - create_session: Create a new simulator session
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available scenario configurations
//   - simulator_instructions: Get the full command reference
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a REST
// request against the simulator's HTTP API, and the JSON response is
// formatted into readable text for the agent. State changes therefore flow
// through exactly the same code path as any other front-end.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
