package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sibrahim/gridbot/sim/robot"
	"github.com/sibrahim/gridbot/sim/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles scenario configuration loading and caching.
type Manager struct {
	configDir     string
	defaultConfig *robot.Config
	configs       map[string]*robot.Config
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager. A missing directory is not
// an error: the simulator still runs with the built-in default scenario.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*robot.Config),
	}

	m.defaultConfig = m.pickDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name.
func (m *Manager) LoadConfig(name string) (*robot.Config, error) {
	m.mu.RLock()
	// Check cache first
	if cfg, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return cfg, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if cfg, exists := m.configs[name]; exists {
		return cfg, nil
	}

	cfg, err := m.loadFromDisk(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = cfg
	return cfg, nil
}

// loadFromDisk reads and validates one config file. Caller holds the write
// lock or is still single-threaded during construction.
func (m *Manager) loadFromDisk(name string) (*robot.Config, error) {
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	configPath := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg robot.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := robot.ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &cfg, nil
}

// ListConfigs returns information about all available configurations.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*service.ConfigInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		cfg, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // identifier used for session creation
			Name:        cfg.Name,
			Description: cfg.Description,
			GridSize:    cfg.GridSize,
			Battery:     cfg.Battery,
			Obstacles:   len(cfg.Obstacles),
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration.
func (m *Manager) GetDefault() *robot.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name.
func (m *Manager) SetDefault(name string) error {
	cfg, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = cfg
	return nil
}

// RefreshCache reloads all cached configurations from disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*robot.Config)
	m.mu.Unlock()

	def := m.pickDefaultConfig()

	m.mu.Lock()
	m.defaultConfig = def
	m.mu.Unlock()
}

// pickDefaultConfig prefers classic.json, then the first config on disk,
// then the built-in scenario.
func (m *Manager) pickDefaultConfig() *robot.Config {
	if cfg, err := m.LoadConfig("classic"); err == nil {
		return cfg
	}

	configs, err := m.ListConfigs()
	if err == nil && len(configs) > 0 {
		if cfg, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			return cfg
		}
	}

	return robot.DefaultConfig()
}

// SaveConfig saves a configuration to disk.
func (m *Manager) SaveConfig(name string, cfg *robot.Config) error {
	if err := robot.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = cfg
	m.mu.Unlock()

	return nil
}
