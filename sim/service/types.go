package service

import (
	"time"

	"github.com/sibrahim/gridbot/sim/robot"
)

// Outcome codes produced at the dispatch boundary, distinct from the domain
// codes the robot itself reports.
const (
	CodeUnknownCommand = "unknown_command"
	CodeUsage          = "usage"
)

// SessionInfo provides information about a simulator session.
type SessionInfo struct {
	ID             string        `json:"id"`
	ConfigName     string        `json:"config_name"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	State          robot.State   `json:"state"`
	Config         *robot.Config `json:"config,omitempty"`
}

// CommandResult is the response shape shared by both front-ends: outcome,
// diagnostic text and the state snapshot after the (possibly failed)
// operation.
type CommandResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	State   robot.State `json:"state"`

	// Populated by read commands.
	Report  string `json:"report,omitempty"`
	Display string `json:"display,omitempty"`

	// Decision aids.
	LocalView   []string `json:"local_view,omitempty"`
	BatteryRisk string   `json:"battery_risk,omitempty"`
}

// BatchResult contains the outcome of a command batch, which stops at the
// first failed command.
type BatchResult struct {
	Requested   int         `json:"requested"`
	Executed    int         `json:"executed"`
	Success     bool        `json:"success"`
	Steps       []BatchStep `json:"steps"`
	StoppedOn   int         `json:"stopped_on,omitempty"` // 1-based index of the failing command
	StopCode    string      `json:"stop_code,omitempty"`
	Truncated   bool        `json:"truncated,omitempty"`
	Limit       int         `json:"limit,omitempty"`
	State       robot.State `json:"state"`
	BatteryRisk string      `json:"battery_risk,omitempty"`
}

// BatchStep is a compact record for each command executed in a batch.
type BatchStep struct {
	Idx     int    `json:"idx"`
	Command string `json:"command"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Battery int    `json:"battery"`
}

// HistoryOptions configures command history retrieval.
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history.
type HistoryResponse struct {
	Commands      []robot.CommandRecord `json:"commands"`
	TotalCommands int                   `json:"total_commands"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"page_size"`
	TotalPages    int                   `json:"total_pages"`
	HasNext       bool                  `json:"has_next"`
	HasPrevious   bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a scenario configuration.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	Battery     int    `json:"battery"`
	Obstacles   int    `json:"obstacles"`
}
