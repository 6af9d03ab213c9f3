// Package robot provides the core state machine for the grid robot
// simulator.
//
// The robot package implements:
//   - Bounded-grid movement with heading-relative steps and diagonals
//   - A four-state heading ring advanced by left/right turns
//   - Battery accounting with per-operation costs and a floor of zero
//   - Obstacle placement, removal and collision checks
//   - Grid expansion, reporting and text rendering
//   - Command history and save/restore for persistence
//
// Core Types:
//
// Robot owns the full simulation state and exposes one method per command.
// Every guarded operation returns a bool, leaves the state untouched on
// failure, and records a human-readable Message plus a machine Code
// distinguishing the failure cause (battery, bounds, obstacle, and so on).
// State is the wire-format snapshot shared by the CLI and HTTP front-ends.
//
// Usage:
//
//	r := robot.NewWithDefaults()
//	if !r.Forward() {
//		fmt.Println(r.Message())
//	}
//	fmt.Println(r.Report())
//
// Rules:
//
// Moving forward costs 5 battery, turning costs 2, and a diagonal step costs
// 1.5x the movement cost truncated to 7 (though the precondition gate uses
// the untruncated 7.5). A move fails without side effects when battery is
// short, when the target cell leaves the grid, or when it holds an obstacle.
// The grid only ever grows, so positions and obstacles never become invalid.
package robot
