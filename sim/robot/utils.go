package robot

// ManhattanDistance calculates the Manhattan distance between two positions.
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// RemainingMoves returns how many forward moves the current battery allows.
func RemainingMoves(r *Robot) int {
	return r.Battery() / MoveCost
}

// RemainingTurns returns how many turns the current battery allows.
func RemainingTurns(r *Robot) int {
	return r.Battery() / TurnCost
}

// NearestObstacle finds the closest obstacle to the robot and returns its
// position and Manhattan distance; found is false on an obstacle-free grid.
func NearestObstacle(r *Robot) (Position, int, bool) {
	minDistance := -1
	var nearest Position
	found := false

	for _, pos := range r.Obstacles() {
		distance := ManhattanDistance(r.Position(), pos)
		if minDistance == -1 || distance < minDistance {
			minDistance = distance
			nearest = pos
			found = true
		}
	}

	return nearest, minDistance, found
}

// AnalyzeBatteryRisk classifies the robot's battery level against the cost
// of its cheapest and dearest operations.
func AnalyzeBatteryRisk(r *Robot) string {
	battery := r.Battery()
	switch {
	case battery < TurnCost:
		return "CRITICAL: battery exhausted, no operations possible"
	case battery < MoveCost:
		return "DANGER: too low to move, turning only"
	case battery < MoveCost*4:
		return "LOW: consider limiting movement"
	}
	return "SAFE: battery sufficient"
}
