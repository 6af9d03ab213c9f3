package robot

import "testing"

func TestHeading_String(t *testing.T) {
	tests := []struct {
		heading Heading
		want    string
	}{
		{North, "NORTH"},
		{East, "EAST"},
		{South, "SOUTH"},
		{West, "WEST"},
		{Heading(7), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.heading.String(); got != tt.want {
			t.Errorf("Heading(%d).String() = %q, want %q", tt.heading, got, tt.want)
		}
	}
}

func TestHeading_CyclicClosure(t *testing.T) {
	for _, start := range []Heading{North, East, South, West} {
		h := start
		for i := 0; i < 4; i++ {
			h = h.TurnRight()
		}
		if h != start {
			t.Errorf("4 right turns from %s ended at %s", start, h)
		}

		h = start
		for i := 0; i < 4; i++ {
			h = h.TurnLeft()
		}
		if h != start {
			t.Errorf("4 left turns from %s ended at %s", start, h)
		}
	}
}

func TestHeading_TurnLeftFromNorth(t *testing.T) {
	// Left from North must wrap to West without a negative modulo result.
	if got := North.TurnLeft(); got != West {
		t.Errorf("North.TurnLeft() = %s, want WEST", got)
	}
	if got := West.TurnRight(); got != North {
		t.Errorf("West.TurnRight() = %s, want NORTH", got)
	}
}

func TestHeading_Offset(t *testing.T) {
	tests := []struct {
		heading Heading
		dx, dy  int
	}{
		{North, 0, 1},
		{East, 1, 0},
		{South, 0, -1},
		{West, -1, 0},
	}

	for _, tt := range tests {
		dx, dy := tt.heading.Offset()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%s.Offset() = (%d,%d), want (%d,%d)", tt.heading, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestNormMod(t *testing.T) {
	tests := []struct {
		a, n, want int
	}{
		{-1, 4, 3},
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{5, 4, 1},
		{-5, 4, 3},
	}

	for _, tt := range tests {
		if got := normMod(tt.a, tt.n); got != tt.want {
			t.Errorf("normMod(%d, %d) = %d, want %d", tt.a, tt.n, got, tt.want)
		}
	}
}

func TestDiagonal_Offset(t *testing.T) {
	tests := []struct {
		direction Diagonal
		dx, dy    int
		ok        bool
	}{
		{Northeast, 1, 1, true},
		{Northwest, -1, 1, true},
		{Southeast, 1, -1, true},
		{Southwest, -1, -1, true},
		{Diagonal("sideways"), 0, 0, false},
		{Diagonal(""), 0, 0, false},
	}

	for _, tt := range tests {
		dx, dy, ok := tt.direction.Offset()
		if dx != tt.dx || dy != tt.dy || ok != tt.ok {
			t.Errorf("Diagonal(%q).Offset() = (%d,%d,%v), want (%d,%d,%v)",
				tt.direction, dx, dy, ok, tt.dx, tt.dy, tt.ok)
		}
	}
}

func TestPosition_Translate(t *testing.T) {
	p := Position{X: 2, Y: 3}
	got := p.Translate(-1, 2)
	if got.X != 1 || got.Y != 5 {
		t.Errorf("Translate(-1, 2) = (%d,%d), want (1,5)", got.X, got.Y)
	}
	if p.X != 2 || p.Y != 3 {
		t.Error("Translate should not mutate the receiver")
	}
}
