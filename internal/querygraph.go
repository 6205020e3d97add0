package internal

import (
	"math"

	"go.uber.org/zap"
)

// This implements Seidel 1991 for trapezoidizing a simple polygon. Segments are
// added in random order. Insertion happens in log*(n) phases; at the end of
// each phase, every segment that is still waiting re-locates its endpoints and
// remembers the resulting query nodes, so later point location starts deep in
// the structure instead of at the root. That refinement is what brings the
// expected running time down from O(n log n) to O(n log* n).

// Main routine to perform trapezoidation
func (c *Context) constructTrapezoids() {
	n := c.n
	c.order.generate(n, c.rng)

	// Add the first segment and get the query structure and trapezoid
	// list initialised
	c.root = c.initQueryStructure(c.order.choose())
	for i := 1; i <= n; i++ {
		c.segments[i].Root0 = c.root
		c.segments[i].Root1 = c.root
	}

	phases := logStar(n)
	for h := 1; h <= phases; h++ {
		for i := phaseEnd(n, h-1) + 1; i <= phaseEnd(n, h); i++ {
			c.addSegment(c.order.choose())
		}
		// Find a new root for each of the segment endpoints
		for i := 1; i <= n; i++ {
			c.findNewRoots(i)
		}
		logger().Debug("seidel: insertion phase done", zap.Int("phase", h), zap.Int("inserted", phaseEnd(n, h)))
	}

	for i := phaseEnd(n, phases) + 1; i <= n; i++ {
		c.addSegment(c.order.choose())
	}
}

// Point a waiting segment's endpoint roots at the nodes that currently hold
// its endpoints.
func (c *Context) findNewRoots(segnum int) {
	s := &c.segments[segnum]
	if s.IsInserted {
		return
	}
	s.Root0 = c.trap(c.locateEndpoint(s.V0, s.V1, s.Root0)).Sink
	s.Root1 = c.trap(c.locateEndpoint(s.V1, s.V0, s.Root1)).Sink
}

// The number of times log2 can be applied to n before the result drops below
// one, minus one.
func logStar(n int) int {
	i := 0
	for v := float64(n); v >= 1; i++ {
		v = math.Log2(v)
	}
	return i - 1
}

// Number of segments inserted by the end of phase h: ceil(n / log^(h) n).
func phaseEnd(n, h int) int {
	v := float64(n)
	for i := 0; i < h; i++ {
		v = math.Log2(v)
	}
	return int(math.Ceil(float64(n) / v))
}
