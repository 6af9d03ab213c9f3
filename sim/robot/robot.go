package robot

import (
	"fmt"
	"sort"
	"time"
)

// seedObstacles are placed at construction time, filtered to grid bounds.
var seedObstacles = [4]Position{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 3, Y: 1}, {X: 4, Y: 4}}

// Robot holds the full simulation state: grid size, position, heading,
// battery charge and the obstacle set. All guarded operations validate their
// preconditions before mutating anything, so a failed operation leaves the
// robot exactly as it was. Every operation records its outcome as a
// human-readable message plus a machine code, and appends to the command
// history.
//
// Robot is not safe for concurrent use; callers that share one instance
// across goroutines must serialize access (the service layer does).
type Robot struct {
	gridSize  int
	position  Position
	heading   Heading
	battery   int
	obstacles map[Position]struct{}

	config *Config

	message string
	code    string

	// history is cumulative and survives Reset; currentCommands mirrors it
	// but is cleared on reset, matching the per-run segment the front-ends
	// display.
	history         []CommandRecord
	totalCommands   int
	currentCommands []CommandRecord
}

// New creates a robot at (0,0) facing North with the given grid size and
// battery, seeding the standard demonstration obstacles that fall within
// bounds. Arguments outside the supported ranges are clamped to defaults.
func New(gridSize, battery int) *Robot {
	if gridSize < MinGridSize {
		gridSize = DefaultGridSize
	}
	if battery < MinBattery || battery > MaxBattery {
		battery = DefaultBattery
	}

	r := &Robot{
		gridSize:  gridSize,
		position:  Position{X: 0, Y: 0},
		heading:   North,
		battery:   battery,
		obstacles: make(map[Position]struct{}),
		message:   "ready",
		code:      CodeOK,
	}

	for _, pos := range seedObstacles {
		if r.inBounds(pos) {
			r.obstacles[pos] = struct{}{}
		}
	}

	return r
}

// NewWithDefaults creates a robot with the default 5x5 grid and full battery.
func NewWithDefaults() *Robot {
	return New(DefaultGridSize, DefaultBattery)
}

// NewFromConfig creates a robot from a validated scenario configuration.
// When the config lists obstacles they replace the standard seeds.
func NewFromConfig(cfg *Config) (*Robot, error) {
	if cfg == nil {
		return NewWithDefaults(), nil
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	r := New(cfg.GridSize, cfg.Battery)
	r.config = cfg

	if len(cfg.Obstacles) > 0 {
		r.obstacles = make(map[Position]struct{}, len(cfg.Obstacles))
		for _, pos := range cfg.Obstacles {
			if r.inBounds(pos) {
				r.obstacles[pos] = struct{}{}
			}
		}
	}

	return r, nil
}

// Reset reinitializes position, heading, battery and obstacles from the
// robot's configuration. The cumulative history and total command count are
// preserved; only the current segment is cleared.
func (r *Robot) Reset() {
	fresh, err := NewFromConfig(r.config)
	if err != nil {
		// Config was validated at construction time; fall back to defaults.
		fresh = NewWithDefaults()
	}

	r.gridSize = fresh.gridSize
	r.position = fresh.position
	r.heading = fresh.heading
	r.battery = fresh.battery
	r.obstacles = fresh.obstacles
	r.message = "reset to initial state"
	r.code = CodeOK
	r.currentCommands = nil
}

// Accessors

// GridSize returns the current grid size.
func (r *Robot) GridSize() int { return r.gridSize }

// Position returns the robot's current position.
func (r *Robot) Position() Position { return r.position }

// Heading returns the robot's current heading.
func (r *Robot) Heading() Heading { return r.heading }

// Battery returns the current battery percentage.
func (r *Robot) Battery() int { return r.battery }

// Message returns the diagnostic text of the most recent operation.
func (r *Robot) Message() string { return r.message }

// Code returns the machine-friendly outcome code of the most recent
// operation; CodeOK on success.
func (r *Robot) Code() string { return r.code }

// Config returns the scenario configuration the robot was built from, or nil
// for a default-constructed robot.
func (r *Robot) Config() *Config { return r.config }

// Obstacles returns the obstacle positions sorted by (y, x) for stable
// output. The slice is a copy; mutating it does not affect the robot.
func (r *Robot) Obstacles() []Position {
	result := make([]Position, 0, len(r.obstacles))
	for pos := range r.obstacles {
		result = append(result, pos)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Y != result[j].Y {
			return result[i].Y < result[j].Y
		}
		return result[i].X < result[j].X
	})
	return result
}

// IsObstacle reports whether the given position holds an obstacle.
func (r *Robot) IsObstacle(pos Position) bool {
	_, ok := r.obstacles[pos]
	return ok
}

// Snapshot returns the wire-format state attached to every front-end
// response.
func (r *Robot) Snapshot() State {
	return State{
		Position:  r.position,
		Direction: r.heading.String(),
		Battery:   r.battery,
		GridSize:  r.gridSize,
		Obstacles: r.Obstacles(),
	}
}

// Movement operations

// Forward moves the robot one cell in its current heading. Preconditions are
// checked in order: battery charge, grid bounds, obstacle collision. On any
// failure the state is unchanged and the diagnostic distinguishes the cause.
func (r *Robot) Forward() bool {
	from := r.position

	if r.battery < MoveCost {
		r.fail(CodeInsufficientBattery, "insufficient battery for movement")
		r.record("forward", from, false)
		return false
	}

	dx, dy := r.heading.Offset()
	next := r.position.Translate(dx, dy)

	if !r.inBounds(next) {
		r.fail(CodeOutOfBounds, "cannot move outside grid boundaries")
		r.record("forward", from, false)
		return false
	}
	if r.IsObstacle(next) {
		r.fail(CodeBlocked, "cannot move through obstacle")
		r.record("forward", from, false)
		return false
	}

	r.position = next
	r.consume(MoveCost)
	r.ok(fmt.Sprintf("moved forward to (%d, %d)", next.X, next.Y))
	r.record("forward", from, true)
	return true
}

// Left turns the robot 90 degrees counter-clockwise. Turning has no
// positional effect, so neither bounds nor obstacles are checked.
func (r *Robot) Left() bool {
	return r.turn("left")
}

// Right turns the robot 90 degrees clockwise.
func (r *Robot) Right() bool {
	return r.turn("right")
}

func (r *Robot) turn(action string) bool {
	from := r.position

	if r.battery < TurnCost {
		r.fail(CodeInsufficientBattery, "insufficient battery for turn")
		r.record(action, from, false)
		return false
	}

	if action == "left" {
		r.heading = r.heading.TurnLeft()
	} else {
		r.heading = r.heading.TurnRight()
	}
	r.consume(TurnCost)
	r.ok(fmt.Sprintf("turned %s, now facing %s", action, r.heading))
	r.record(action, from, true)
	return true
}

// DiagonalMove moves one cell diagonally. The battery gate compares against
// the untruncated 1.5x movement cost while the deduction truncates toward
// zero, so with a base cost of 5 a battery of 7 is insufficient but a
// successful move only costs 7. This asymmetry is deliberate, observable
// behavior.
func (r *Robot) DiagonalMove(direction Diagonal) bool {
	from := r.position

	if float64(r.battery) < DiagonalFactor*MoveCost {
		r.fail(CodeInsufficientBattery, "insufficient battery for diagonal movement")
		r.record("diagonal", from, false)
		return false
	}

	dx, dy, ok := direction.Offset()
	if !ok {
		r.fail(CodeInvalidDirection, "invalid diagonal direction")
		r.record("diagonal", from, false)
		return false
	}

	next := r.position.Translate(dx, dy)
	if !r.inBounds(next) {
		r.fail(CodeOutOfBounds, "cannot move outside grid boundaries")
		r.record("diagonal", from, false)
		return false
	}
	if r.IsObstacle(next) {
		r.fail(CodeBlocked, "cannot move through obstacle")
		r.record("diagonal", from, false)
		return false
	}

	r.position = next
	cost := DiagonalFactor * MoveCost
	r.consume(int(cost))
	r.ok(fmt.Sprintf("moved %s to (%d, %d)", direction, next.X, next.Y))
	r.record("diagonal", from, true)
	return true
}

// Grid operations

// AddObstacle places an obstacle. It fails when the position is out of grid
// bounds or occupied by the robot; re-adding an existing obstacle succeeds.
func (r *Robot) AddObstacle(pos Position) bool {
	from := r.position

	if !r.inBounds(pos) {
		r.fail(CodeInvalidObstaclePlacement, "invalid position for obstacle")
		r.record("add_obstacle", from, false)
		return false
	}
	if pos == r.position {
		r.fail(CodeInvalidObstaclePlacement, "cannot place obstacle on robot position")
		r.record("add_obstacle", from, false)
		return false
	}

	r.obstacles[pos] = struct{}{}
	r.ok(fmt.Sprintf("obstacle added at (%d, %d)", pos.X, pos.Y))
	r.record("add_obstacle", from, true)
	return true
}

// RemoveObstacle clears an obstacle, failing when none exists there.
func (r *Robot) RemoveObstacle(pos Position) bool {
	from := r.position

	if !r.IsObstacle(pos) {
		r.fail(CodeObstacleNotFound, "no obstacle at specified position")
		r.record("remove_obstacle", from, false)
		return false
	}

	delete(r.obstacles, pos)
	r.ok(fmt.Sprintf("obstacle removed from (%d, %d)", pos.X, pos.Y))
	r.record("remove_obstacle", from, true)
	return true
}

// ExpandGrid grows the grid to newSize. The grid never shrinks, so newSize
// must be strictly larger than the current size. Existing obstacles and the
// robot's position stay valid because bounds only widen.
func (r *Robot) ExpandGrid(newSize int) bool {
	from := r.position

	if newSize <= r.gridSize {
		r.fail(CodeInvalidGridSize, "new grid size must be larger than current size")
		r.record("expand", from, false)
		return false
	}

	r.gridSize = newSize
	r.ok(fmt.Sprintf("grid expanded to %dx%d", newSize, newSize))
	r.record("expand", from, true)
	return true
}

// Report returns a human-readable snapshot of position, heading and battery.
// It does not mutate state and cannot fail.
func (r *Robot) Report() string {
	return fmt.Sprintf("Position: (%d, %d)\nDirection: %s\nBattery: %d%%",
		r.position.X, r.position.Y, r.heading, r.battery)
}

// History

// History returns the cumulative command history, including entries recorded
// before the last Reset.
func (r *Robot) History() []CommandRecord {
	return r.history
}

// CurrentCommands returns the history segment since the last Reset.
func (r *Robot) CurrentCommands() []CommandRecord {
	return r.currentCommands
}

// TotalCommands returns the number of commands executed over the robot's
// lifetime, successful or not.
func (r *Robot) TotalCommands() int {
	return r.totalCommands
}

// LastCommand returns the most recent history entry, or nil before any
// command has run.
func (r *Robot) LastCommand() *CommandRecord {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// Persistence

// Save captures the robot for persistence, including the full history.
func (r *Robot) Save() *SavedRobot {
	return &SavedRobot{
		State:           r.Snapshot(),
		Heading:         int(r.heading),
		History:         append([]CommandRecord(nil), r.history...),
		TotalCommands:   r.totalCommands,
		CurrentCommands: append([]CommandRecord(nil), r.currentCommands...),
	}
}

// Load restores a previously saved robot state in place.
func (r *Robot) Load(saved *SavedRobot) error {
	if saved == nil {
		return fmt.Errorf("saved robot cannot be nil")
	}
	if saved.State.GridSize < MinGridSize {
		return fmt.Errorf("saved grid size %d is invalid", saved.State.GridSize)
	}
	if saved.Heading < int(North) || saved.Heading > int(West) {
		return fmt.Errorf("saved heading %d is invalid", saved.Heading)
	}

	r.gridSize = saved.State.GridSize
	r.position = saved.State.Position
	r.heading = Heading(saved.Heading)
	r.battery = saved.State.Battery
	if r.battery < MinBattery {
		r.battery = MinBattery
	}
	r.obstacles = make(map[Position]struct{}, len(saved.State.Obstacles))
	for _, pos := range saved.State.Obstacles {
		r.obstacles[pos] = struct{}{}
	}
	r.history = append([]CommandRecord(nil), saved.History...)
	r.totalCommands = saved.TotalCommands
	r.currentCommands = append([]CommandRecord(nil), saved.CurrentCommands...)
	r.message = "state restored"
	r.code = CodeOK
	return nil
}

// Internal helpers

func (r *Robot) inBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < r.gridSize && pos.Y >= 0 && pos.Y < r.gridSize
}

func (r *Robot) consume(cost int) {
	r.battery -= cost
	if r.battery < 0 {
		r.battery = 0
	}
}

func (r *Robot) ok(message string) {
	r.message = message
	r.code = CodeOK
}

func (r *Robot) fail(code, message string) {
	r.message = message
	r.code = code
}

func (r *Robot) record(action string, from Position, success bool) {
	entry := CommandRecord{
		Action:       action,
		FromPosition: from,
		ToPosition:   r.position,
		Heading:      r.heading.String(),
		Battery:      r.battery,
		Success:      success,
		Code:         r.code,
		Timestamp:    time.Now().Unix(),
		CommandNum:   r.totalCommands + 1,
	}
	r.history = append(r.history, entry)
	r.totalCommands++
	r.currentCommands = append(r.currentCommands, entry)
}
