package internal

import (
	"math/rand"

	"go.uber.org/zap"
)

// A Context owns all of the working state for triangulating one polygon at a
// time: the segment table, the trapezoid and query node arenas, and the
// monotone chain bookkeeping. Everything is reset at the start of each
// Triangulate call, so a Context can be reused, but not shared between
// goroutines.
type Context struct {
	config Config
	eps    Epsilon
	rng    *rand.Rand
	order  segmentOrder

	n        int
	segments []Segment // 1..n, slot 0 unused

	nodes      *arena[QueryNode]
	trapezoids *arena[Trapezoid]
	root       int

	// Monotone decomposition state
	chain     *arena[chainElement]
	vertices  []vertexChain // 1..n
	monotones []int         // a position in chain for every monotone polygon
	visited   []bool        // by trapezoid id
	diagonals int

	triangles []Triangle
}

type Stats struct {
	Segments        int
	Trapezoids      int
	ValidTrapezoids int
	QueryNodes      int
	Monotones       int
	Diagonals       int
	Triangles       int
}

func NewContext(config Config) *Context {
	if config.Epsilon <= 0 {
		config.Epsilon = DefaultEpsilon
	}
	return &Context{
		config:     config,
		eps:        config.Epsilon,
		nodes:      newArena[QueryNode]("query", 0),
		trapezoids: newArena[Trapezoid]("trapezoid", 0),
		chain:      newArena[chainElement]("monotone chain", 0),
	}
}

// Reset every table and cursor for a polygon with n vertices.
func (c *Context) reset(n int) {
	c.n = n
	c.rng = newRand(c.config)
	c.segments = resize(c.segments, n+1)
	c.vertices = resize(c.vertices, n+1)
	c.trapezoids.reset(c.config.trapezoidCapacity(n))
	c.nodes.reset(c.config.nodeCapacity(n))
	c.chain.reset(c.config.trapezoidCapacity(n))
	c.visited = resize(c.visited, c.trapezoids.capacity()+1)
	c.monotones = c.monotones[:0]
	c.triangles = c.triangles[:0]
	c.root = 0
	c.diagonals = 0
}

// Zeroed slice of length n, reusing the backing array when it is big enough.
func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

// Load the polygon's vertices into the segment table. Vertex i (1-based) is the
// start of segment i, and the polygon is closed implicitly.
func (c *Context) loadSegments(points []Point) {
	n := len(points)
	for i := 1; i <= n; i++ {
		s := &c.segments[i]
		s.V0 = points[i-1]
		s.V1 = points[CircularIndex(i, n)]
		s.Next = CircularIndex(i, n) + 1
		s.Prev = CircularIndex(i-2, n) + 1
	}
}

// Triangulate a simple polygon given in anticlockwise order. The result holds
// len(points)-2 anticlockwise triangles of 1-based vertex indices, and is only
// valid until the next call.
func (c *Context) Triangulate(points []Point) []Triangle {
	n := len(points)
	if n < 3 {
		throw(ErrInvalidInput, "polygon has %d vertices", n)
	}
	c.reset(n)
	c.loadSegments(points)
	c.constructTrapezoids()
	logger().Debug("seidel: trapezoidation built",
		zap.Int("segments", n),
		zap.Int("trapezoids", c.trapezoids.len()),
		zap.Int("nodes", c.nodes.len()))

	monotones := c.monotonateTrapezoids()
	c.triangulateMonotonePolygons(monotones)
	logger().Debug("seidel: triangulated",
		zap.Int("monotones", monotones),
		zap.Int("diagonals", c.diagonals),
		zap.Int("triangles", len(c.triangles)))

	if len(c.triangles) != n-2 {
		throw(ErrDegenerate, "produced %d triangles for %d vertices", len(c.triangles), n)
	}
	return c.triangles
}

// Point-in-polygon against the last trapezoidation. Points on the polygon's
// boundary may be reported either way.
func (c *Context) ContainsPoint(p Point) bool {
	if c.root == 0 {
		return false
	}
	t := c.trap(c.locateEndpoint(p, p, c.root))
	if t.State == Invalid {
		return false
	}
	if t.LSeg <= 0 || t.RSeg <= 0 {
		return false
	}
	s := &c.segments[t.RSeg]
	return c.eps.AboveOrAt(s.V1, s.V0)
}

func (c *Context) Stats() Stats {
	stats := Stats{
		Segments:   c.n,
		Trapezoids: c.trapezoids.len(),
		QueryNodes: c.nodes.len(),
		Monotones:  len(c.monotones),
		Diagonals:  c.diagonals,
		Triangles:  len(c.triangles),
	}
	for id := 1; id <= c.trapezoids.len(); id++ {
		if c.trap(id).State == Valid {
			stats.ValidTrapezoids++
		}
	}
	return stats
}

func (c *Context) Segments() []Segment {
	return c.segments[1 : c.n+1]
}

// Valid trapezoids of the current trapezoidation, by id.
func (c *Context) Trapezoids() map[int]Trapezoid {
	result := make(map[int]Trapezoid)
	for id := 1; id <= c.trapezoids.len(); id++ {
		if t := c.trap(id); t.State == Valid {
			result[id] = *t
		}
	}
	return result
}

// Does the trapezoid lie inside the polygon?
func (c *Context) IsInside(id int) bool {
	t := c.trap(id)
	if t.State == Invalid || t.LSeg <= 0 || t.RSeg <= 0 {
		return false
	}
	s := &c.segments[t.RSeg]
	return c.eps.Above(s.V1, s.V0)
}
