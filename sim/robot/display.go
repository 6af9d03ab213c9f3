package robot

import (
	"fmt"
	"strings"
)

// Display renders the grid as text, highest y row first so north points up.
// The robot is drawn as its heading glyph, obstacles as X. Pure read, no
// state change.
func (r *Robot) Display() string {
	width := r.gridSize*3 + 1
	border := strings.Repeat("=", width)
	separator := strings.Repeat("-", width)

	var b strings.Builder
	b.WriteString(border)
	b.WriteString("\n")

	for y := r.gridSize - 1; y >= 0; y-- {
		b.WriteString("|")
		for x := 0; x < r.gridSize; x++ {
			pos := Position{X: x, Y: y}
			switch {
			case pos == r.position:
				b.WriteString(fmt.Sprintf(" %s |", r.heading.Glyph()))
			case r.IsObstacle(pos):
				b.WriteString(" X |")
			default:
				b.WriteString("   |")
			}
		}
		b.WriteString("\n")
		if y > 0 {
			b.WriteString(separator)
			b.WriteString("\n")
		}
	}

	b.WriteString(border)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Battery: %d%%", r.battery))
	return b.String()
}

// LocalView3x3 returns the 3x3 neighborhood around the robot as three text
// rows, northmost first. The robot cell is its heading glyph, obstacles X,
// out-of-bounds cells #, free cells dots.
func (r *Robot) LocalView3x3() []string {
	lines := make([]string, 0, 3)
	for dy := 1; dy >= -1; dy-- {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			pos := r.position.Translate(dx, dy)
			switch {
			case dx == 0 && dy == 0:
				row.WriteString(r.heading.Glyph())
			case !r.inBounds(pos):
				row.WriteString("#")
			case r.IsObstacle(pos):
				row.WriteString("X")
			default:
				row.WriteString(".")
			}
		}
		lines = append(lines, row.String())
	}
	return lines
}
