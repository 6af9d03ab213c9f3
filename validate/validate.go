// Command validate checks scenario configuration JSON files in the configs
// directory. It checks:
//   - JSON structure and required fields
//   - Grid size and battery ranges
//   - Obstacles inside the grid, off the start cell and free of duplicates
//   - Connectivity: every free cell is reachable from the start at (0, 0)
//
// A directory can be passed as the first argument; it defaults to "configs".
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a scenario configuration.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	Battery     int    `json:"battery"`
	Obstacles   []struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"obstacles"`
}

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single scenario JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}
	if config.Description == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: description")
	}
	if config.GridSize < 1 || config.GridSize > 100 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("grid_size must be between 1 and 100, got %d", config.GridSize))
	}
	if config.Battery < 0 || config.Battery > 100 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("battery must be between 0 and 100, got %d", config.Battery))
	}

	if !result.Valid {
		return result
	}

	obstacles := make(map[[2]int]bool, len(config.Obstacles))
	for i, o := range config.Obstacles {
		if o.X < 0 || o.X >= config.GridSize || o.Y < 0 || o.Y >= config.GridSize {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Obstacle %d at (%d, %d) is outside the %dx%d grid", i+1, o.X, o.Y, config.GridSize, config.GridSize))
			continue
		}
		if o.X == 0 && o.Y == 0 {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Obstacle %d sits on the robot start cell (0, 0)", i+1))
			continue
		}
		key := [2]int{o.X, o.Y}
		if obstacles[key] {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Duplicate obstacle at (%d, %d)", o.X, o.Y))
		}
		obstacles[key] = true
	}

	if !result.Valid {
		return result
	}

	if unreachable := unreachableCells(config.GridSize, obstacles); len(unreachable) > 0 {
		result.Valid = false
		parts := make([]string, 0, len(unreachable))
		for _, c := range unreachable {
			parts = append(parts, fmt.Sprintf("(%d, %d)", c[0], c[1]))
		}
		result.Errors = append(result.Errors,
			fmt.Sprintf("%d free cells unreachable from the start: %s", len(unreachable), strings.Join(parts, ", ")))
	}

	return result
}

// unreachableCells floods the grid from (0, 0) and returns the free cells
// the robot can never visit. Diagonal moves exist, so the flood uses the
// full 8-cell neighborhood.
func unreachableCells(gridSize int, obstacles map[[2]int]bool) [][2]int {
	visited := make(map[[2]int]bool)
	queue := [][2]int{{0, 0}}
	visited[[2]int{0, 0}] = true

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				next := [2]int{cell[0] + dx, cell[1] + dy}
				if next[0] < 0 || next[0] >= gridSize || next[1] < 0 || next[1] >= gridSize {
					continue
				}
				if visited[next] || obstacles[next] {
					continue
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable [][2]int
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			cell := [2]int{x, y}
			if !visited[cell] && !obstacles[cell] {
				unreachable = append(unreachable, cell)
			}
		}
	}
	return unreachable
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	entries, err := os.ReadDir(configDir)
	if err != nil {
		fmt.Printf("Failed to read config directory %s: %v\n", configDir, err)
		os.Exit(1)
	}

	failed := 0
	checked := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		checked++

		result := validateConfig(filepath.Join(configDir, entry.Name()))
		if result.Valid {
			fmt.Printf("✓ %s\n", result.File)
			continue
		}

		failed++
		fmt.Printf("✗ %s\n", result.File)
		for _, e := range result.Errors {
			fmt.Printf("    %s\n", e)
		}
	}

	fmt.Printf("\n%d files checked, %d invalid\n", checked, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
