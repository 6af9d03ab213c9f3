// Package service provides the business logic layer for the grid robot
// simulator.
//
// The service package implements:
//   - Multi-session robot management
//   - Textual command dispatch shared by every front-end
//   - Scenario configuration loading
//   - Session lifecycle management
//   - Command history tracking with pagination
//
// Core Interfaces:
//
// RobotService is the main service interface providing high-level simulator
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages scenario configuration loading and
// validation.
//
// Every front-end (HTTP, REPL, MCP, WebSocket) funnels commands through
// RobotService.Execute, so a command line like "diagonal northeast" means
// the same thing everywhere.
package service
