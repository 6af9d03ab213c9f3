package main

import "testing"

func TestMinTravelCost(t *testing.T) {
	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1, 0, 5},
		{0, 3, 15},
		{1, 1, 7},   // one diagonal beats two straight moves
		{2, 1, 12},  // diagonal plus straight
		{4, 4, 28},  // all diagonals
		{4, 2, 24},  // two diagonals, two straight
	}

	for _, tt := range tests {
		if got := minTravelCost(tt.x, tt.y); got != tt.want {
			t.Errorf("minTravelCost(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	config := AnalysisConfig{
		Name:     "Test",
		GridSize: 5,
		Battery:  100,
		Obstacles: []struct {
			X int `json:"x"`
			Y int `json:"y"`
		}{
			{X: 1, Y: 1},
			{X: 2, Y: 3},
		},
	}

	s := summarize(config)

	if s.MaxForward != 20 {
		t.Errorf("Expected 20 forward moves on 100 battery, got %d", s.MaxForward)
	}
	if s.MaxTurns != 50 {
		t.Errorf("Expected 50 turns, got %d", s.MaxTurns)
	}
	if s.MaxDiagonals != 14 {
		t.Errorf("Expected 14 diagonals, got %d", s.MaxDiagonals)
	}
	if s.DensityPct != 8.0 {
		t.Errorf("Expected 8%% density for 2 obstacles on 25 cells, got %.1f", s.DensityPct)
	}
	// Farthest cell (4, 4) costs 28; everything is in range on 100 battery.
	if s.BeyondRange != 0 {
		t.Errorf("Expected no cells beyond range, got %d", s.BeyondRange)
	}
}

func TestSummarize_LowBattery(t *testing.T) {
	config := AnalysisConfig{
		Name:     "Low",
		GridSize: 5,
		Battery:  10,
	}

	s := summarize(config)

	// Reachable for 10 or less: (0,0)=0, (1,0)=5, (0,1)=5, (1,1)=7, (2,0)=10, (0,2)=10.
	if want := 25 - 6; s.BeyondRange != want {
		t.Errorf("Expected %d cells beyond range, got %d", want, s.BeyondRange)
	}
}
