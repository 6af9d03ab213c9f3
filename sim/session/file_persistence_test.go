package session

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sibrahim/gridbot/sim/robot"
	"github.com/sibrahim/gridbot/sim/service"
)

// stubConfigManager serves a single built-in scenario.
type stubConfigManager struct {
	cfg *robot.Config
}

func (s *stubConfigManager) LoadConfig(name string) (*robot.Config, error) {
	if name == "default" {
		return s.cfg, nil
	}
	return nil, errors.New("configuration not found")
}

func (s *stubConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{
		{
			Filename:    "default.json",
			ConfigID:    "default",
			Name:        s.cfg.Name,
			Description: s.cfg.Description,
			GridSize:    s.cfg.GridSize,
			Battery:     s.cfg.Battery,
			Obstacles:   len(s.cfg.Obstacles),
		},
	}, nil
}

func (s *stubConfigManager) GetDefault() *robot.Config { return s.cfg }

func (s *stubConfigManager) SaveConfig(name string, cfg *robot.Config) error { return nil }

func newTestPersistence(t *testing.T) (*FilePersistence, *stubConfigManager, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "session_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	configManager := &stubConfigManager{cfg: robot.DefaultConfig()}

	persistence, err := NewFilePersistence(tempDir, configManager)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return persistence, configManager, tempDir
}

func TestFilePersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)

	cfg := configManager.GetDefault()
	r, err := robot.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to build robot from default config: %v", err)
	}
	r.Forward()
	r.Right()

	session := &service.Session{
		ID:             "test1",
		Robot:          r,
		Config:         cfg,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	t.Run("Save and Load Session", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Failed to save session: %v", err)
		}

		if !persistence.Exists("test1") {
			t.Error("Session file should exist after save")
		}

		loaded, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load session: %v", err)
		}

		if loaded.ID != "test1" {
			t.Errorf("Loaded ID = %q, want test1", loaded.ID)
		}
		state := loaded.Robot.Snapshot()
		if state.Position.X != 0 || state.Position.Y != 1 {
			t.Errorf("Loaded position = (%d, %d), want (0, 1)", state.Position.X, state.Position.Y)
		}
		if state.Direction != "EAST" {
			t.Errorf("Loaded direction = %q, want East", state.Direction)
		}
		if state.Battery != 93 {
			t.Errorf("Loaded battery = %d, want 93", state.Battery)
		}
		if loaded.Robot.TotalCommands() != 2 {
			t.Errorf("Loaded history = %d commands, want 2", loaded.Robot.TotalCommands())
		}
	})

	t.Run("Load Missing Session", func(t *testing.T) {
		if _, err := persistence.Load("ghost"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("ListAll", func(t *testing.T) {
		ids, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(ids) != 1 || ids[0] != "test1" {
			t.Errorf("ListAll = %v, want [test1]", ids)
		}
	})

	t.Run("Delete Session", func(t *testing.T) {
		if err := persistence.Delete("test1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if persistence.Exists("test1") {
			t.Error("Session file should not exist after delete")
		}
		if err := persistence.Delete("test1"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound deleting twice, got %v", err)
		}
	})
}

func TestFilePersistence_NilConfig(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)

	session := &service.Session{
		ID:             "bare",
		Robot:          robot.NewWithDefaults(),
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	if err := persistence.Save(session); err != nil {
		t.Fatalf("Save with nil config failed: %v", err)
	}

	loaded, err := persistence.Load("bare")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// The empty stored config name resolves to the built-in default.
	if loaded.Config != configManager.GetDefault() {
		t.Error("Expected loaded session to fall back to the default config")
	}
}

func TestManagerWithPersistence(t *testing.T) {
	persistence, configManager, _ := newTestPersistence(t)

	manager := NewManagerWithPersistence(persistence)
	cfg := configManager.GetDefault()

	session, err := manager.Create("persist1", cfg)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	session.Robot.Forward()
	if err := manager.Save("persist1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("lazy reload after memory eviction", func(t *testing.T) {
		if err := manager.DeleteFromMemory("persist1"); err != nil {
			t.Fatalf("DeleteFromMemory failed: %v", err)
		}

		reloaded, err := manager.Get("persist1")
		if err != nil {
			t.Fatalf("Get after eviction failed: %v", err)
		}
		if got := reloaded.Robot.Battery(); got != 95 {
			t.Errorf("Reloaded battery = %d, want 95", got)
		}
	})

	t.Run("LoadPersistedSessions restores startup state", func(t *testing.T) {
		fresh := NewManagerWithPersistence(persistence)
		if err := fresh.LoadPersistedSessions(); err != nil {
			t.Fatalf("LoadPersistedSessions failed: %v", err)
		}
		if fresh.Count() != 1 {
			t.Errorf("Count after load = %d, want 1", fresh.Count())
		}
	})

	t.Run("Delete removes persisted copy", func(t *testing.T) {
		if err := manager.Delete("persist1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if persistence.Exists("persist1") {
			t.Error("Persisted file should be removed")
		}
	})
}
