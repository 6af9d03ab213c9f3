package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/sibrahim/gridbot/sim/robot"
)

// robotServiceImpl implements the RobotService interface. A single mutex
// serializes every operation so each one appears atomic even when the HTTP
// front-end handles concurrent requests against the same session.
type robotServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex
}

// NewRobotService creates a new robot service instance.
func NewRobotService(sessions SessionManager, configs ConfigManager) RobotService {
	return &robotServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config display name, used
// for consistent API responses.
func (s *robotServiceImpl) getConfigID(configName string) string {
	available, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range available {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new simulator session.
func (s *robotServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg *robot.Config
	var err error
	if configName != "" {
		cfg, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				available, listErr := s.configs.ListConfigs()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, c := range available {
						ids = append(ids, c.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, ids)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		cfg = s.configs.GetDefault()
	}

	// Let the session manager generate an ID.
	sess, err := s.sessions.Create("", cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" && cfg != nil {
		configID = s.getConfigID(cfg.Name)
	}

	return s.sessionInfo(sess, configID), nil
}

// GetSession retrieves session information.
func (s *robotServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess, ""), nil
}

// ListSessions returns all active sessions.
func (s *robotServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *robotServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Execute runs a single command against a session's robot. Unknown commands
// and malformed arguments are reported in the result, never as an error; the
// returned state always reflects the robot after the attempt.
func (s *robotServiceImpl) Execute(ctx context.Context, sessionID, command string, args []string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := dispatch(sess.Robot, command, args)
	s.finalize(sess, result)
	return result, nil
}

// ExecuteBatch runs commands in sequence, stopping at the first failure.
// Each entry is a full command line, e.g. "forward" or "diagonal northeast".
func (s *robotServiceImpl) ExecuteBatch(ctx context.Context, sessionID string, commands []string) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BatchResult{
		Requested: len(commands),
		Success:   true,
		Steps:     make([]BatchStep, 0, len(commands)),
	}

	if len(commands) > robot.MaxBulkCommands {
		result.Truncated = true
		result.Limit = robot.MaxBulkCommands
		commands = commands[:robot.MaxBulkCommands]
	}

	for i, line := range commands {
		command, args := splitCommandLine(line)
		step := dispatch(sess.Robot, command, args)

		result.Steps = append(result.Steps, BatchStep{
			Idx:     i + 1,
			Command: line,
			Success: step.Success,
			Message: step.Message,
			Code:    step.Code,
			Battery: sess.Robot.Battery(),
		})

		if !step.Success {
			result.Success = false
			result.StoppedOn = i + 1
			result.StopCode = step.Code
			break
		}
		result.Executed++
	}

	result.State = sess.Robot.Snapshot()
	result.BatteryRisk = riskCode(robot.AnalyzeBatteryRisk(sess.Robot))

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: failed to persist session %s after batch: %v", sessionID, err)
	}
	return result, nil
}

// Reset reinitializes a session's robot from its configuration.
func (s *robotServiceImpl) Reset(ctx context.Context, sessionID string) (robot.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return robot.State{}, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Robot.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: failed to persist session %s after reset: %v", sessionID, err)
	}
	return sess.Robot.Snapshot(), nil
}

// GetState retrieves the current robot state.
func (s *robotServiceImpl) GetState(ctx context.Context, sessionID string) (robot.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return robot.State{}, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Robot.Snapshot(), nil
}

// GetHistory returns paginated command history.
func (s *robotServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Robot.History()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var commands []robot.CommandRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			commands = append(commands, history[i])
		}
	} else if start < total {
		commands = history[start:end]
	}
	if commands == nil {
		commands = []robot.CommandRecord{}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListConfigs returns available scenario configurations.
func (s *robotServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific scenario configuration.
func (s *robotServiceImpl) LoadConfig(ctx context.Context, configName string) (*robot.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a scenario configuration to disk.
func (s *robotServiceImpl) SaveConfig(ctx context.Context, configName string, cfg *robot.Config) error {
	return s.configs.SaveConfig(configName, cfg)
}

// Internal helpers

func (s *robotServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" && sess.Config != nil {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.Robot.Snapshot(),
		Config:         sess.Config,
	}
}

// finalize attaches the post-operation snapshot and decision aids, then
// persists the session.
func (s *robotServiceImpl) finalize(sess *Session, result *CommandResult) {
	result.State = sess.Robot.Snapshot()
	result.LocalView = sess.Robot.LocalView3x3()
	result.BatteryRisk = riskCode(robot.AnalyzeBatteryRisk(sess.Robot))

	if err := s.sessions.Save(sess.ID); err != nil {
		log.Printf("Warning: failed to persist session %s: %v", sess.ID, err)
	}
}

// dispatch maps a textual command plus arguments onto a robot operation.
// It mirrors the command set of the interactive interpreter.
func dispatch(r *robot.Robot, command string, args []string) *CommandResult {
	switch strings.ToLower(command) {
	case "forward":
		ok := r.Forward()
		return outcome(r, ok)

	case "left":
		ok := r.Left()
		return outcome(r, ok)

	case "right":
		ok := r.Right()
		return outcome(r, ok)

	case "report":
		return &CommandResult{Success: true, Message: "report generated", Report: r.Report()}

	case "display":
		return &CommandResult{Success: true, Message: "grid rendered", Display: r.Display()}

	case "diagonal":
		if len(args) < 1 {
			return usageError("diagonal direction required (northeast, northwest, southeast, southwest)")
		}
		ok := r.DiagonalMove(robot.Diagonal(strings.ToLower(args[0])))
		return outcome(r, ok)

	case "add_obstacle":
		pos, err := parseCoordinates(args)
		if err != nil {
			return usageError(err.Error())
		}
		ok := r.AddObstacle(pos)
		return outcome(r, ok)

	case "remove_obstacle":
		pos, err := parseCoordinates(args)
		if err != nil {
			return usageError(err.Error())
		}
		ok := r.RemoveObstacle(pos)
		return outcome(r, ok)

	case "expand":
		if len(args) < 1 {
			return usageError("grid size required")
		}
		size, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("invalid grid size")
		}
		ok := r.ExpandGrid(size)
		return outcome(r, ok)

	case "reset":
		r.Reset()
		return &CommandResult{Success: true, Message: r.Message()}

	default:
		return &CommandResult{
			Success: false,
			Message: fmt.Sprintf("Unknown command: %s", command),
			Code:    CodeUnknownCommand,
		}
	}
}

func outcome(r *robot.Robot, ok bool) *CommandResult {
	result := &CommandResult{Success: ok, Message: r.Message()}
	if !ok {
		result.Code = r.Code()
	}
	return result
}

func usageError(message string) *CommandResult {
	return &CommandResult{Success: false, Message: message, Code: CodeUsage}
}

func parseCoordinates(args []string) (robot.Position, error) {
	if len(args) < 2 {
		return robot.Position{}, fmt.Errorf("two coordinates required")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return robot.Position{}, fmt.Errorf("invalid coordinates")
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return robot.Position{}, fmt.Errorf("invalid coordinates")
	}
	return robot.Position{X: x, Y: y}, nil
}

// splitCommandLine separates a batch entry into action and arguments.
func splitCommandLine(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// riskCode reduces the battery risk diagnostic to its machine-friendly
// prefix.
func riskCode(text string) string {
	if idx := strings.Index(text, ":"); idx > 0 {
		return text[:idx]
	}
	return "UNKNOWN"
}
