// Command analyze prints quick, human-readable heuristics about scenario
// files in the configs directory. It summarizes grid size, battery budget,
// obstacle density, how many moves the battery covers, and which cells lie
// beyond battery range from the start.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AnalysisConfig is a light struct for reading scenario files.
type AnalysisConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	Battery     int    `json:"battery"`
	Obstacles   []struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"obstacles"`
}

// Summary holds the derived heuristics for one scenario.
type Summary struct {
	Name          string
	GridSize      int
	Battery       int
	ObstacleCount int
	DensityPct    float64
	MaxForward    int
	MaxTurns      int
	MaxDiagonals  int
	BeyondRange   int
}

const (
	moveCost     = 5
	turnCost     = 2
	diagonalCost = 7
)

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

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeFile(filepath.Join(configDir, entry.Name()))
	}
}

func analyzeFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	s := summarize(config)

	fmt.Printf("Name: %s\n", s.Name)
	fmt.Printf("Grid: %dx%d (%d cells)\n", s.GridSize, s.GridSize, s.GridSize*s.GridSize)
	fmt.Printf("Battery: %d\n", s.Battery)
	fmt.Printf("Obstacles: %d (%.1f%% of the grid)\n", s.ObstacleCount, s.DensityPct)
	fmt.Printf("Battery covers: %d forward moves, %d turns, %d diagonals\n",
		s.MaxForward, s.MaxTurns, s.MaxDiagonals)
	if s.BeyondRange > 0 {
		fmt.Printf("WARNING: %d cells lie beyond battery range from the start\n", s.BeyondRange)
	} else {
		fmt.Println("Every cell is within battery range of the start")
	}
}

// summarize derives the heuristics for one scenario. Range uses the
// straight-line lower bound of one move per Manhattan step, ignoring
// obstacles and turns, so "beyond range" cells are definitely unreachable
// while in-range cells may still cost more in practice.
func summarize(config AnalysisConfig) Summary {
	s := Summary{
		Name:          config.Name,
		GridSize:      config.GridSize,
		Battery:       config.Battery,
		ObstacleCount: len(config.Obstacles),
		MaxForward:    config.Battery / moveCost,
		MaxTurns:      config.Battery / turnCost,
		MaxDiagonals:  config.Battery / diagonalCost,
	}

	cells := config.GridSize * config.GridSize
	if cells > 0 {
		s.DensityPct = float64(s.ObstacleCount) / float64(cells) * 100
	}

	for y := 0; y < config.GridSize; y++ {
		for x := 0; x < config.GridSize; x++ {
			if minTravelCost(x, y) > config.Battery {
				s.BeyondRange++
			}
		}
	}

	return s
}

// minTravelCost is the cheapest conceivable battery spend to reach (x, y)
// from the start: diagonals cover a step in both axes for 7, the rest are
// straight moves at 5.
func minTravelCost(x, y int) int {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	diagonalSteps := x
	if y < x {
		diagonalSteps = y
	}

	straightSteps := x + y - 2*diagonalSteps

	// A diagonal only pays off against two straight moves (7 vs 10).
	return diagonalSteps*diagonalCost + straightSteps*moveCost
}
