// Package config provides scenario configuration management for the grid
// robot simulator.
//
// The config package handles:
//   - Loading scenario configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Scenarios are stored as JSON files in the configs directory. Each scenario
// defines:
//   - Grid size (square, 1 to 100 cells per side)
//   - Starting battery charge (0 to 100)
//   - Obstacle positions
//
// When no files are present the manager falls back to the built-in scenario:
// a 5x5 grid, a full battery and four fixed obstacles.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	scenario, err := manager.LoadConfig("open_field")
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for grid and battery bounds, obstacle
// placement inside the grid and a free starting cell at the origin.
package config
