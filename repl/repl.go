package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sibrahim/gridbot/sim/robot"
	"github.com/sibrahim/gridbot/sim/service"
)

const prompt = "> "

const helpText = `Commands:
  forward                  move one cell in the facing direction (battery 5)
  left, right              rotate 90 degrees in place (battery 2)
  diagonal <dir>           move diagonally: northeast, northwest, southeast, southwest (battery 7)
  add_obstacle <x> <y>     place an obstacle
  remove_obstacle <x> <y>  remove an obstacle
  expand <n>               grow the grid to n x n (strictly larger only)
  report                   position, direction and battery
  display                  render the grid
  reset                    restore the initial state
  help                     show this text
  quit                     leave the simulator`

// REPL is a line-oriented interactive front-end driving a single session.
type REPL struct {
	service   service.RobotService
	sessionID string
	in        io.Reader
	out       io.Writer
}

// New creates a REPL reading commands from in and writing to out.
func New(svc service.RobotService, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		service: svc,
		in:      in,
		out:     out,
	}
}

// Start creates a session for the named scenario (empty for the default)
// and runs the read loop until quit, EOF or a read error.
func (r *REPL) Start(ctx context.Context, configName string) error {
	session, err := r.service.CreateSession(ctx, configName)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	r.sessionID = session.ID

	fmt.Fprintf(r.out, "Grid Robot Simulator (session %s, scenario %s)\n", session.ID, session.ConfigName)
	fmt.Fprintln(r.out, "Type 'help' for commands, 'quit' to leave.")
	fmt.Fprintln(r.out)
	fmt.Fprint(r.out, renderGrid(&session.State))

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		action := strings.ToLower(fields[0])

		switch action {
		case "quit", "exit":
			fmt.Fprintln(r.out, "Bye.")
			return nil
		case "help":
			fmt.Fprintln(r.out, helpText)
			continue
		}

		result, err := r.service.Execute(ctx, r.sessionID, action, fields[1:])
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		}

		if result.Success {
			fmt.Fprintf(r.out, "%s\n", result.Message)
		} else {
			fmt.Fprintf(r.out, "FAILED: %s\n", result.Message)
		}
		if result.Report != "" {
			fmt.Fprintln(r.out, result.Report)
		}

		// The grid is shown after every command so the effect (or the
		// absence of one on failure) is visible at a glance.
		fmt.Fprint(r.out, renderGrid(&result.State))
	}

	return scanner.Err()
}

// renderGrid draws the grid north at the top, marking the robot with an
// arrow for its facing direction and obstacles with X.
func renderGrid(state *robot.State) string {
	obstacles := make(map[robot.Position]bool, len(state.Obstacles))
	for _, p := range state.Obstacles {
		obstacles[p] = true
	}

	var b strings.Builder
	for y := state.GridSize - 1; y >= 0; y-- {
		for x := 0; x < state.GridSize; x++ {
			pos := robot.Position{X: x, Y: y}
			switch {
			case pos == state.Position:
				b.WriteString(glyph(state.Direction))
			case obstacles[pos]:
				b.WriteString("X")
			default:
				b.WriteString(".")
			}
			if x < state.GridSize-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("battery %d | facing %s | (%d, %d)\n",
		state.Battery, state.Direction, state.Position.X, state.Position.Y))
	return b.String()
}

func glyph(direction string) string {
	switch direction {
	case "NORTH":
		return "↑"
	case "EAST":
		return "→"
	case "SOUTH":
		return "↓"
	case "WEST":
		return "←"
	default:
		return "?"
	}
}
