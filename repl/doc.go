// Package repl implements the interactive terminal front-end.
//
// The loop reads one command per line, splits it on whitespace, lowercases
// the action and hands it to the service layer, so a terminal session runs
// through exactly the same dispatch as the HTTP and MCP front-ends. Unknown
// actions and malformed arguments are reported without changing the robot.
// The grid is re-rendered after every command.
package repl
