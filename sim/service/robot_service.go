package service

import (
	"context"
	"time"

	"github.com/sibrahim/gridbot/sim/robot"
)

// RobotService defines all simulator operations exposed to the front-ends.
type RobotService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Command Dispatch
	Execute(ctx context.Context, sessionID, command string, args []string) (*CommandResult, error)
	ExecuteBatch(ctx context.Context, sessionID string, commands []string) (*BatchResult, error)
	Reset(ctx context.Context, sessionID string) (robot.State, error)

	// State
	GetState(ctx context.Context, sessionID string) (robot.State, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*robot.Config, error)
	SaveConfig(ctx context.Context, configName string, cfg *robot.Config) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id string, cfg *robot.Config) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, cfg *robot.Config) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles scenario configuration loading.
type ConfigManager interface {
	LoadConfig(name string) (*robot.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *robot.Config
	SaveConfig(name string, cfg *robot.Config) error
}

// Session represents one driven robot. At most one logical actor issues
// commands against a session; the service serializes access so each
// operation appears atomic to observers.
type Session struct {
	ID             string
	Robot          *robot.Robot
	Config         *robot.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
