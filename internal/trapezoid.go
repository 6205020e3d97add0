package internal

import (
	"fmt"
	"io"
	"math"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/osuushi/seidel/dbg"
)

// Stand-in coordinate for the unbounded top and bottom of the plane.
var infinity = math.MaxFloat64

type TrapezoidState int

const (
	Invalid TrapezoidState = iota
	Valid
)

type XDirection int

const (
	Left XDirection = iota + 1
	Right
)

type Trapezoid struct {
	// Bounding segments; 0 means the side is unbounded.
	LSeg, RSeg int
	// The top and bottom are points, although geometrically, you can think of
	// them as the y values of those points. A critical assumption of the
	// algorithm is that no two points lie on the same horizontal. This is
	// simulated by lexicographic ordering, but it means that _every_ Y
	// comparison must have an X value involved to break ties.
	Hi, Lo Point
	// Trapezoids can have up to two neighbors above and below them in the
	// stable state.
	U0, U1, D0, D1 int
	Sink           int
	// While a segment is being threaded, a trapezoid can briefly have three
	// neighbors above. The third one is parked here, along with which side of
	// the other two it was on.
	USave int
	USide XDirection
	State TrapezoidState
}

func (c *Context) newTrapezoid() int {
	id := c.trapezoids.alloc()
	c.trapezoids.at(id).State = Valid
	return id
}

func (c *Context) trap(id int) *Trapezoid {
	return c.trapezoids.at(id)
}

// Neighbor patterns on one side of a trapezoid.
type sideCount int

const (
	sideNone sideCount = iota
	sideOne
	sideTwo
)

func countSide(a, b int) sideCount {
	switch {
	case a > 0 && b > 0:
		return sideTwo
	case a > 0 || b > 0:
		return sideOne
	}
	return sideNone
}

func (t *Trapezoid) above() sideCount { return countSide(t.U0, t.U1) }
func (t *Trapezoid) below() sideCount { return countSide(t.D0, t.D1) }

func (t *Trapezoid) String() string {
	return fmt.Sprintf("Trapezoid { ⬆ [%d %d], ⬇ [%d %d] } <L: %d, R: %d, Hi: %v, Lo: %v>",
		t.U0, t.U1, t.D0, t.D1,
		t.LSeg, t.RSeg,
		t.Hi, t.Lo,
	)
}

// Readable name for a trapezoid, colored by state for terminal output.
func (c *Context) TrapezoidName(id int) string {
	name := dbg.ID("trapezoid", id)
	t := c.trap(id)
	if t.State == Invalid {
		name = aurora.Red(name).String()
	} else if t.LSeg == 0 || t.RSeg == 0 { // Infinite in some direction
		name = aurora.Cyan(name).String()
	} else {
		name = aurora.Green(name).String()
	}
	return name
}

// Write every valid trapezoid, one per line, for debugging.
func (c *Context) DumpTrapezoids(w io.Writer) error {
	for id := 1; id <= c.trapezoids.len(); id++ {
		t := c.trap(id)
		if t.State != Valid {
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d %s %s\n", id, c.TrapezoidName(id), t); err != nil {
			return errors.Wrap(err, "dump trapezoids")
		}
	}
	return nil
}
