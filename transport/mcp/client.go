package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sibrahim/gridbot/sim/robot"
	"github.com/sibrahim/gridbot/sim/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Robot Simulator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Robot Simulator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

You drive a robot on a square grid. The robot has a position, a facing
direction (North/East/South/West) and a battery. Moving forward costs 5
battery, turning costs 2, a diagonal move costs 7. Obstacles and grid
edges block movement; a blocked or underpowered command fails without
changing anything.

AVAILABLE TOOLS:
- robot_state: Get current robot state with grid rendering
- execute_command: Run any textual command (forward, left, right, ...)
- run_commands: Run a command sequence, stopping at the first failure
- reset_robot: Reset the robot to its scenario's initial state
- command_history: View past commands
- create_session: Create a new simulator session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available scenario configurations
- simulator_instructions: Get the full command reference

The 'intent' parameter on command tools is a rubber duck: explain your
reasoning before acting.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new simulator session with optional scenario selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the scenario config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active simulator sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Robot operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "robot_state",
		Description: "Get the current robot state including a grid rendering",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRobotState)

	c.mcpServer.AddTool(mcp.Tool{
		Name: "execute_command",
		Description: "Execute a single robot command. Commands: forward, left, right, " +
			"diagonal <northeast|northwest|southeast|southwest>, add_obstacle <x> <y>, " +
			"remove_obstacle <x> <y>, expand <size>, report, display, reset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Command name, e.g. forward or diagonal",
				},
				"args": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Command arguments, e.g. [\"northeast\"] or [\"2\", \"3\"]",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleExecuteCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_commands",
		Description: "Execute multiple commands in sequence, stopping at the first failure",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"commands": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Command lines, e.g. [\"forward\", \"right\", \"diagonal northeast\"]",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleRunCommands)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_robot",
		Description: "Reset the robot to its scenario's initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_history",
		Description: "Get command history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommandHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available scenario configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulator_instructions",
		Description: "Get the full command reference and simulator rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_id"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatState(&session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatState(&session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRobotState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state robot.State
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(&state)), nil
}

func (c *Client) handleExecuteCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	command, _ := args["command"].(string)
	intent, _ := args["intent"].(string)

	// Intent is rubber duck debugging; nothing to process.
	_ = intent

	cmdArgs := toStringSlice(args["args"])

	body := map[string]interface{}{
		"command": command,
		"args":    cmdArgs,
	}

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/command", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleRunCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)
	_ = intent

	commands := toStringSlice(args["commands"])

	body := map[string]interface{}{
		"commands": commands,
	}

	var result service.BatchResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/batch", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBatchResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string      `json:"message"`
		State   robot.State `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatState(&response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCommandHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, cfg := range configs {
		result += fmt.Sprintf("- %s (%s)\n  %s\n  Grid: %dx%d, Battery: %d, Obstacles: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.GridSize, cfg.GridSize, cfg.Battery, cfg.Obstacles)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Grid Robot Simulator - Command Reference

WORLD MODEL:
The robot lives on a square grid of side N (default 5). Cell (0, 0) is the
bottom-left corner; x grows East and y grows North. The robot starts at
(0, 0) facing NORTH with a full battery (100).

COMMANDS:
- forward: move one cell in the facing direction. Costs 5 battery.
- left, right: rotate 90 degrees in place. Costs 2 battery.
- diagonal <dir>: move one cell diagonally without changing the facing
  direction. <dir> is northeast, northwest, southeast or southwest.
  Requires battery for 1.5 forward moves (7.5); deducts 7.
- add_obstacle <x> <y>: place an obstacle. Fails out of bounds or on the
  robot's own cell. Placing on an existing obstacle succeeds.
- remove_obstacle <x> <y>: remove an obstacle. Fails if none is there.
- expand <n>: grow the grid to n x n. n must be strictly larger than the
  current size; the grid never shrinks.
- report: position, direction and battery as text. Free.
- display: ASCII rendering of the grid. Free.
- reset: restore the scenario's initial state. Command history survives.

FAILURE RULES:
A command that cannot complete changes nothing: no battery is consumed on
failure. Preconditions are checked in order: battery first, then bounds,
then obstacles. The battery never goes below 0.

GRID RENDERING:
The display marks the robot with an arrow showing its facing direction
and obstacles with X. Rows are printed north-first, so the top line of
the rendering is the highest y.

STRATEGY NOTES:
- Turning is cheap (2) compared to moving (5); plan turns freely.
- A diagonal (7) is cheaper than the move-turn-move (12) it replaces,
  but needs 8 or more battery to attempt.
- Track your battery: below 5 the robot can only turn, below 2 it is
  stuck until reset.

SESSION MANAGEMENT:
Multiple simulator sessions can run simultaneously, each with its own
robot and scenario. Session IDs are 8-character strings. Use
create_session / list_sessions to manage them.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

// formatState renders a state snapshot the way the simulator's own display
// does, derived purely from the wire form.
func formatState(state *robot.State) string {
	if state == nil {
		return "No state available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Position: (%d, %d) | Direction: %s | Battery: %d%% | Grid: %dx%d\n",
		state.Position.X, state.Position.Y, state.Direction, state.Battery,
		state.GridSize, state.GridSize))
	b.WriteString(fmt.Sprintf("Obstacles: %d\n\n", len(state.Obstacles)))

	obstacles := make(map[robot.Position]bool, len(state.Obstacles))
	for _, p := range state.Obstacles {
		obstacles[p] = true
	}

	// North at the top
	for y := state.GridSize - 1; y >= 0; y-- {
		for x := 0; x < state.GridSize; x++ {
			pos := robot.Position{X: x, Y: y}
			switch {
			case pos == state.Position:
				b.WriteString(directionGlyph(state.Direction))
			case obstacles[pos]:
				b.WriteString("X")
			default:
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func directionGlyph(direction string) string {
	switch direction {
	case "NORTH":
		return "↑"
	case "EAST":
		return "→"
	case "SOUTH":
		return "↓"
	case "WEST":
		return "←"
	default:
		return "?"
	}
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	b.WriteString(result.Message)
	b.WriteString("\n")

	if result.Code != "" {
		b.WriteString(fmt.Sprintf("Code: %s\n", result.Code))
	}
	if result.BatteryRisk != "" {
		b.WriteString(fmt.Sprintf("Battery risk: %s\n", result.BatteryRisk))
	}
	if len(result.LocalView) == 3 {
		b.WriteString("Local 3x3:\n")
		for _, row := range result.LocalView {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if result.Report != "" {
		b.WriteString("\n")
		b.WriteString(result.Report)
		b.WriteString("\n")
	}
	if result.Display != "" {
		b.WriteString("\n")
		b.WriteString(result.Display)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatState(&result.State))
	return b.String()
}

func formatBatchResult(sessionID string, result *service.BatchResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Session: %s\n", sessionID))
	b.WriteString(fmt.Sprintf("Executed %d/%d commands\n", result.Executed, result.Requested))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d commands\n", result.Limit))
	}
	if result.StoppedOn > 0 {
		b.WriteString(fmt.Sprintf("Stopped on command %d (%s)\n", result.StoppedOn, result.StopCode))
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			status := "✗"
			if step.Success {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("%d. %s %s [Battery: %d] %s\n",
				step.Idx, step.Command, status, step.Battery, step.Message))
		}
	}

	if result.BatteryRisk != "" {
		b.WriteString(fmt.Sprintf("\nBattery risk: %s\n", result.BatteryRisk))
	}

	b.WriteString("\n")
	b.WriteString(formatState(&result.State))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Command History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalCommands)

	for i, cmd := range history.Commands {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !cmd.Success {
			status = "✗"
		}
		result += fmt.Sprintf("%d. %s %s [Battery: %d]\n",
			num, cmd.Action, status, cmd.Battery)
	}

	return result
}

// toStringSlice converts a JSON array argument to []string, skipping
// non-string entries.
func toStringSlice(v interface{}) []string {
	raw, _ := v.([]interface{})
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
