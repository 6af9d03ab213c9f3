package session

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sibrahim/gridbot/sim/robot"
)

func createTestConfig() *robot.Config {
	return &robot.Config{
		Name:        "Test Config",
		Description: "Test scenario",
		GridSize:    5,
		Battery:     100,
		Obstacles: []robot.Position{
			{X: 2, Y: 2},
		},
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", cfg)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Robot == nil {
			t.Error("Expected robot to be initialized")
		}
		if session.Robot.GridSize() != 5 {
			t.Errorf("Robot grid size = %d, want 5", session.Robot.GridSize())
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", cfg)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 8 {
			t.Errorf("Generated ID %q should be 8 characters", session.ID)
		}
	})

	t.Run("duplicate ID rejected", func(t *testing.T) {
		if _, err := manager.Create("dup", cfg); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if _, err := manager.Create("dup", cfg); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("duplicate ID case-insensitive", func(t *testing.T) {
		if _, err := manager.Create("MiXeD", cfg); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if _, err := manager.Create("mixed", cfg); !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		bad := &robot.Config{
			Name:        "Broken",
			Description: "Battery out of range",
			GridSize:    5,
			Battery:     500,
		}
		if _, err := manager.Create("broken", bad); err == nil {
			t.Error("Expected error for invalid config")
		}
		if _, err := manager.Get("broken"); err == nil {
			t.Error("Session should not exist after failed creation")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	created, err := manager.Create("lookup", cfg)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("exact match", func(t *testing.T) {
		session, err := manager.Get("lookup")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if session != created {
			t.Error("Expected same session instance")
		}
	})

	t.Run("case-insensitive", func(t *testing.T) {
		session, err := manager.Get("LOOKUP")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if session != created {
			t.Error("Expected same session instance")
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := manager.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	first, err := manager.GetOrCreate("goc", cfg)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	second, err := manager.GetOrCreate("goc", cfg)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected same session on second call")
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	if _, err := manager.Create("doomed", cfg); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if err := manager.Delete("DOOMED"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := manager.Get("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}

	if err := manager.Delete("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound deleting twice, got %v", err)
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	stale, err := manager.Create("stale", cfg)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if _, err := manager.Create("fresh", cfg); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Cleanup removed %d sessions, want 1", removed)
	}
	if manager.Count() != 1 {
		t.Errorf("Count = %d, want 1", manager.Count())
	}
	if _, err := manager.Get("fresh"); err != nil {
		t.Errorf("Fresh session should survive cleanup: %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	session, err := manager.Create("touch", cfg)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	before := session.LastAccessedAt
	time.Sleep(5 * time.Millisecond)

	if err := manager.UpdateLastAccessed("touch"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("LastAccessedAt should advance")
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentCreate(t *testing.T) {
	manager := NewManager()
	cfg := createTestConfig()

	var wg sync.WaitGroup
	ids := make(chan string, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := manager.Create("", cfg)
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			ids <- session.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[strings.ToLower(id)] {
			t.Errorf("Duplicate generated ID %q", id)
		}
		seen[strings.ToLower(id)] = true
	}
	if manager.Count() != 20 {
		t.Errorf("Count = %d, want 20", manager.Count())
	}
}
