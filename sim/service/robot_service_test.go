package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sibrahim/gridbot/sim/robot"
	"github.com/sibrahim/gridbot/sim/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, cfg *robot.Config) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	r, err := robot.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Robot:          r,
		Config:         cfg,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, cfg *robot.Config) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, cfg)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*robot.Config
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := robot.DefaultConfig()
	openField := &robot.Config{
		Name:        "Open Field",
		Description: "A 6x6 grid with no obstacles",
		GridSize:    6,
		Battery:     50,
		Obstacles:   []robot.Position{},
	}

	return &MockConfigManager{
		configs: map[string]*robot.Config{
			"default":    defaultConfig,
			"open_field": openField,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*robot.Config, error) {
	cfg, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return cfg, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, cfg := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        cfg.Name,
			Description: cfg.Description,
			GridSize:    cfg.GridSize,
			Battery:     cfg.Battery,
			Obstacles:   len(cfg.Obstacles),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *robot.Config {
	return m.configs["default"]
}

func (m *MockConfigManager) SaveConfig(name string, cfg *robot.Config) error {
	m.configs[name] = cfg
	return nil
}

func newTestService() service.RobotService {
	return service.NewRobotService(NewMockSessionManager(), NewMockConfigManager())
}

// Test cases
func TestRobotService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name       string
		configName string
		wantErr    bool
	}{
		{
			name:       "create with default config",
			configName: "",
			wantErr:    false,
		},
		{
			name:       "create with specific config",
			configName: "open_field",
			wantErr:    false,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && session == nil {
				t.Error("CreateSession() returned nil session")
			}
		})
	}
}

func TestRobotService_Execute(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name        string
		sessionID   string
		command     string
		args        []string
		wantErr     bool
		wantSuccess bool
		wantCode    string
	}{
		{
			name:        "forward from origin",
			sessionID:   sessionInfo.ID,
			command:     "forward",
			wantSuccess: true,
		},
		{
			name:        "turn right",
			sessionID:   sessionInfo.ID,
			command:     "right",
			wantSuccess: true,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			command:   "forward",
			wantErr:   true,
		},
		{
			name:      "unknown command",
			sessionID: sessionInfo.ID,
			command:   "fly",
			wantCode:  service.CodeUnknownCommand,
		},
		{
			name:      "diagonal without direction",
			sessionID: sessionInfo.ID,
			command:   "diagonal",
			wantCode:  service.CodeUsage,
		},
		{
			name:      "add_obstacle with bad coordinates",
			sessionID: sessionInfo.ID,
			command:   "add_obstacle",
			args:      []string{"x", "y"},
			wantCode:  service.CodeUsage,
		},
		{
			name:        "report",
			sessionID:   sessionInfo.ID,
			command:     "report",
			wantSuccess: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Execute(ctx, tt.sessionID, tt.command, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if result.Success != tt.wantSuccess {
				t.Errorf("Execute() success = %v, want %v (message: %s)", result.Success, tt.wantSuccess, result.Message)
			}
			if tt.wantCode != "" && result.Code != tt.wantCode {
				t.Errorf("Execute() code = %q, want %q", result.Code, tt.wantCode)
			}
		})
	}
}

func TestRobotService_ExecuteUnknownMessage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	result, err := svc.Execute(ctx, sessionInfo.ID, "teleport", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Success {
		t.Error("Expected failure for unknown command")
	}
	if result.Message != "Unknown command: teleport" {
		t.Errorf("Message = %q, want %q", result.Message, "Unknown command: teleport")
	}
}

func TestRobotService_ExecuteStateAlwaysAttached(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Even a failed command carries a snapshot of the untouched state.
	result, err := svc.Execute(ctx, sessionInfo.ID, "expand", []string{"3"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Success {
		t.Error("Expected shrink attempt to fail")
	}
	if result.State.GridSize != 5 {
		t.Errorf("State.GridSize = %d, want 5", result.State.GridSize)
	}
	if result.BatteryRisk != "SAFE" {
		t.Errorf("BatteryRisk = %q, want SAFE", result.BatteryRisk)
	}
	if len(result.LocalView) != 3 {
		t.Errorf("LocalView rows = %d, want 3", len(result.LocalView))
	}
}

func TestRobotService_ExecuteBatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "open_field")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		commands  []string
		wantErr   bool
	}{
		{
			name:      "valid batch",
			sessionID: sessionInfo.ID,
			commands:  []string{"forward", "right", "forward"},
		},
		{
			name:      "empty batch",
			sessionID: sessionInfo.ID,
			commands:  []string{},
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			commands:  []string{"forward"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ExecuteBatch(ctx, tt.sessionID, tt.commands)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExecuteBatch() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == nil {
				t.Error("ExecuteBatch() returned nil result")
			}
			if !tt.wantErr && result.Requested != len(tt.commands) {
				t.Errorf("Requested = %d, want %d", result.Requested, len(tt.commands))
			}
		})
	}

	// Stop-on-failure diagnostics. Reset to the origin first.
	if _, err := svc.Reset(ctx, sessionInfo.ID); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	// forward (ok), left now faces West at (0,1), forward runs off the grid.
	res, err := svc.ExecuteBatch(ctx, sessionInfo.ID, []string{"forward", "left", "forward", "right"})
	if err != nil {
		t.Fatalf("ExecuteBatch diagnostics failed: %v", err)
	}
	if res.Success {
		t.Error("Expected batch to stop on failure")
	}
	if res.Executed != 2 {
		t.Errorf("Executed = %d, want 2", res.Executed)
	}
	if res.StoppedOn != 3 {
		t.Errorf("StoppedOn = %d, want 3", res.StoppedOn)
	}
	if res.StopCode != robot.CodeOutOfBounds {
		t.Errorf("StopCode = %q, want %q", res.StopCode, robot.CodeOutOfBounds)
	}
	if len(res.Steps) != 3 {
		t.Errorf("Steps = %d, want 3", len(res.Steps))
	}
}

func TestRobotService_ExecuteBatchTruncation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	commands := make([]string, robot.MaxBulkCommands+10)
	for i := range commands {
		commands[i] = "report"
	}

	result, err := svc.ExecuteBatch(ctx, sessionInfo.ID, commands)
	if err != nil {
		t.Fatalf("ExecuteBatch() error = %v", err)
	}
	if !result.Truncated {
		t.Error("Expected batch to be truncated")
	}
	if result.Limit != robot.MaxBulkCommands {
		t.Errorf("Limit = %d, want %d", result.Limit, robot.MaxBulkCommands)
	}
	if result.Executed != robot.MaxBulkCommands {
		t.Errorf("Executed = %d, want %d", result.Executed, robot.MaxBulkCommands)
	}
}

func TestRobotService_Reset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := svc.Execute(ctx, sessionInfo.ID, "forward", nil); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	state, err := svc.Reset(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Position.X != 0 || state.Position.Y != 0 {
		t.Errorf("Position after reset = (%d, %d), want (0, 0)", state.Position.X, state.Position.Y)
	}
	if state.Battery != robot.DefaultBattery {
		t.Errorf("Battery after reset = %d, want %d", state.Battery, robot.DefaultBattery)
	}
}

func TestRobotService_GetHistory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sessionInfo, err := svc.CreateSession(ctx, "open_field")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.Execute(ctx, sessionInfo.ID, "right", nil); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	}

	resp, err := svc.GetHistory(ctx, sessionInfo.ID, service.HistoryOptions{Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if resp.TotalCommands != 5 {
		t.Errorf("TotalCommands = %d, want 5", resp.TotalCommands)
	}
	if len(resp.Commands) != 3 {
		t.Errorf("Commands on page 1 = %d, want 3", len(resp.Commands))
	}
	if resp.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", resp.TotalPages)
	}
	if !resp.HasNext || resp.HasPrevious {
		t.Errorf("Pagination flags wrong: has_next=%v has_previous=%v", resp.HasNext, resp.HasPrevious)
	}

	page2, err := svc.GetHistory(ctx, sessionInfo.ID, service.HistoryOptions{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("GetHistory page 2 failed: %v", err)
	}
	if len(page2.Commands) != 2 {
		t.Errorf("Commands on page 2 = %d, want 2", len(page2.Commands))
	}
}

func TestRobotService_Sessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := svc.CreateSession(ctx, "open_field"); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	list, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("ListSessions = %d sessions, want 2", len(list))
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, first.ID); err == nil {
		t.Error("Expected error getting deleted session")
	}
}
