package robot

import "fmt"

// ValidateConfig validates a scenario configuration for correctness.
func ValidateConfig(cfg *Config) error {
	if cfg.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if cfg.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if cfg.GridSize < MinGridSize || cfg.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, cfg.GridSize)
	}

	if cfg.Battery < MinBattery || cfg.Battery > MaxBattery {
		return fmt.Errorf("config validation: battery must be between %d and %d, got %d",
			MinBattery, MaxBattery, cfg.Battery)
	}

	start := Position{X: 0, Y: 0}
	for i, pos := range cfg.Obstacles {
		if pos.X < 0 || pos.X >= cfg.GridSize || pos.Y < 0 || pos.Y >= cfg.GridSize {
			return fmt.Errorf("config validation: obstacle %d at (%d, %d) is outside the %dx%d grid",
				i+1, pos.X, pos.Y, cfg.GridSize, cfg.GridSize)
		}
		if pos == start {
			return fmt.Errorf("config validation: obstacle %d sits on the robot start cell (0, 0)", i+1)
		}
	}

	return nil
}

// DefaultConfig returns the built-in scenario: a 5x5 grid, full battery and
// the four standard demonstration obstacles.
func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		Description: "Standard 5x5 grid with demonstration obstacles",
		GridSize:    DefaultGridSize,
		Battery:     DefaultBattery,
		Obstacles: []Position{
			{X: 1, Y: 1},
			{X: 2, Y: 3},
			{X: 3, Y: 1},
			{X: 4, Y: 4},
		},
	}
}
