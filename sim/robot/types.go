package robot

// Heading is the robot's facing direction, ordered clockwise so that a right
// turn is +1 and a left turn is -1, both modulo 4.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

const (
	// Validation constants
	MinGridSize = 1
	MaxGridSize = 100
	MinBattery  = 0
	MaxBattery  = 100

	// Battery costs
	MoveCost       = 5
	TurnCost       = 2
	DiagonalFactor = 1.5

	// Construction defaults
	DefaultGridSize = 5
	DefaultBattery  = 100

	MaxBulkCommands = 50
)

// headingNames is indexed by Heading value.
var headingNames = [4]string{"NORTH", "EAST", "SOUTH", "WEST"}

// headingGlyphs is indexed by Heading value, used for grid rendering.
var headingGlyphs = [4]string{"↑", "→", "↓", "←"}

// String returns the heading name (NORTH, EAST, SOUTH, WEST).
func (h Heading) String() string {
	if h < North || h > West {
		return "UNKNOWN"
	}
	return headingNames[h]
}

// Glyph returns the arrow used to render the heading on the grid.
func (h Heading) Glyph() string {
	if h < North || h > West {
		return "?"
	}
	return headingGlyphs[h]
}

// TurnRight returns the heading after a 90 degree clockwise rotation.
func (h Heading) TurnRight() Heading {
	return Heading(normMod(int(h)+1, 4))
}

// TurnLeft returns the heading after a 90 degree counter-clockwise rotation.
func (h Heading) TurnLeft() Heading {
	return Heading(normMod(int(h)-1, 4))
}

// Offset returns the grid delta for one step in this heading.
// North increases Y, South decreases Y.
func (h Heading) Offset() (dx, dy int) {
	switch h {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// normMod returns a mod n normalized to a non-negative result, which Go's
// % operator does not guarantee for negative operands.
func normMod(a, n int) int {
	return ((a % n) + n) % n
}

// Position represents x,y coordinates on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate returns the position shifted by dx,dy.
func (p Position) Translate(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Diagonal names the four diagonal movement directions.
type Diagonal string

const (
	Northeast Diagonal = "northeast"
	Northwest Diagonal = "northwest"
	Southeast Diagonal = "southeast"
	Southwest Diagonal = "southwest"
)

// Offset returns the grid delta for the diagonal, or ok=false for an
// unrecognized direction string.
func (d Diagonal) Offset() (dx, dy int, ok bool) {
	switch d {
	case Northeast:
		return 1, 1, true
	case Northwest:
		return -1, 1, true
	case Southeast:
		return 1, -1, true
	case Southwest:
		return -1, -1, true
	}
	return 0, 0, false
}

// Outcome codes attached to every guarded operation, machine-friendly
// counterparts of the human-readable Message.
const (
	CodeOK                       = "ok"
	CodeInsufficientBattery      = "insufficient_battery"
	CodeOutOfBounds              = "out_of_bounds"
	CodeBlocked                  = "blocked"
	CodeInvalidDirection         = "invalid_direction"
	CodeInvalidObstaclePlacement = "invalid_obstacle_placement"
	CodeObstacleNotFound         = "obstacle_not_found"
	CodeInvalidGridSize          = "invalid_grid_size"
)

// State is the wire-format snapshot of a robot, matching what both the CLI
// and the HTTP endpoint report after each command.
type State struct {
	Position  Position   `json:"position"`
	Direction string     `json:"direction"`
	Battery   int        `json:"battery"`
	GridSize  int        `json:"grid_size"`
	Obstacles []Position `json:"obstacles"`
}

// CommandRecord is a single entry in the robot's command history.
type CommandRecord struct {
	Action       string   `json:"action"`
	FromPosition Position `json:"from_position"`
	ToPosition   Position `json:"to_position"`
	Heading      string   `json:"heading"`
	Battery      int      `json:"battery"`
	Success      bool     `json:"success"`
	Code         string   `json:"code"`
	Timestamp    int64    `json:"timestamp"`
	CommandNum   int      `json:"command_num"`
}

// SavedRobot is the JSON structure used to persist and restore a robot,
// carrying the full history alongside the snapshot.
type SavedRobot struct {
	State           State           `json:"state"`
	Heading         int             `json:"heading"`
	History         []CommandRecord `json:"history"`
	TotalCommands   int             `json:"total_commands"`
	CurrentCommands []CommandRecord `json:"current_commands"`
}

// Config describes a simulation scenario loaded from JSON.
type Config struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GridSize    int        `json:"grid_size"`
	Battery     int        `json:"battery"`
	Obstacles   []Position `json:"obstacles,omitempty"`
}
