// Package seidel triangulates simple polygons with Seidel's randomized
// incremental algorithm.
//
// The polygon's edges are inserted in random order into a trapezoidation of
// the plane, which is built together with a point location structure in
// expected O(n log* n) time. The trapezoidation is then split into monotone
// polygons with diagonals, and each monotone polygon is triangulated in linear
// time.
//
// Polygons must be simple: no holes, no self intersections, and no repeated
// vertices. None of this is validated, but violating it will usually produce
// an error rather than garbage.
package seidel

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/osuushi/seidel/internal"
)

type Point = internal.Point

// A triangle as three indices into the input points, wound anticlockwise.
type Triangle = internal.Triangle

type Stats = internal.Stats
type RenderOptions = internal.RenderOptions

var (
	// Too few points, or coordinates that are not finite.
	ErrInvalidInput = internal.ErrInvalidInput
	// The polygon needed more trapezoids, query nodes or chain entries than the
	// capacity factor allows. See WithCapacityFactor.
	ErrCapacityExceeded = internal.ErrCapacityExceeded
	// The polygon could not be decomposed, which usually means it is not simple.
	ErrDegenerate = internal.ErrDegenerate
	// An internal consistency check failed.
	ErrInvariant = internal.ErrInvariant
)

// Triangulate a simple polygon given as a closed loop of points, in either
// winding order. The result has len(points)-2 triangles.
func Triangulate(points []Point, opts ...Option) ([]Triangle, error) {
	return New(opts...).Triangulate(points)
}

// A Triangulator keeps its working tables between calls, so triangulating many
// polygons with one is cheaper than calling Triangulate for each. The most
// recent polygon can be queried afterwards. A Triangulator is not safe for
// concurrent use.
type Triangulator struct {
	ctx      *internal.Context
	n        int
	reversed bool
}

func New(opts ...Option) *Triangulator {
	config := internal.DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Triangulator{ctx: internal.NewContext(config)}
}

func (t *Triangulator) Triangulate(points []Point) (result []Triangle, err error) {
	defer func() {
		recoveredErr := internal.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()

	if len(points) < 3 {
		return nil, errors.Wrapf(ErrInvalidInput, "polygon has %d points", len(points))
	}
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, errors.Wrapf(ErrInvalidInput, "point %d is not finite: %v", i, p)
		}
	}

	// The kernel wants anticlockwise input
	polygon := internal.Polygon{Points: points}
	t.n = len(points)
	t.reversed = polygon.SignedArea() < 0
	if t.reversed {
		polygon = polygon.Reverse()
	}

	triangles := t.ctx.Triangulate(polygon.Points)
	result = make([]Triangle, len(triangles))
	for i, tri := range triangles {
		for k, v := range tri {
			result[i][k] = t.index(v)
		}
	}
	return result, nil
}

// Map a kernel vertex id back to an index into the caller's points.
func (t *Triangulator) index(id int) int {
	if t.reversed {
		return t.n - id
	}
	return id - 1
}

// Is p inside the most recently triangulated polygon? Points on the boundary
// may be reported either way.
func (t *Triangulator) ContainsPoint(p Point) bool {
	return t.ctx.ContainsPoint(p)
}

func (t *Triangulator) Stats() Stats {
	return t.ctx.Stats()
}

// Draw the most recent trapezoidation and triangulation as PNG.
func (t *Triangulator) Render(w io.Writer, opts RenderOptions) error {
	return t.ctx.EncodePNG(w, opts)
}

// Draw the most recent triangulation straight to the terminal (iTerm only).
func (t *Triangulator) RenderToTerminal(opts RenderOptions) error {
	return t.ctx.ShowInTerminal(opts)
}

// Write the trapezoids of the most recent polygon, one per line.
func (t *Triangulator) DumpTrapezoids(w io.Writer) error {
	return t.ctx.DumpTrapezoids(w)
}
