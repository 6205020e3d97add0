package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A context loaded with a polygon but no trapezoidation yet.
func loadedContext(points []Point) *Context {
	c := NewContext(DefaultConfig())
	c.reset(len(points))
	c.loadSegments(points)
	return c
}

func TestLoadSegments(t *testing.T) {
	c := loadedContext([]Point{{0, 0}, {1, 0}, {0, 1}})
	segments := c.Segments()
	require.Len(t, segments, 3)
	assert.Equal(t, Point{0, 0}, segments[0].V0)
	assert.Equal(t, Point{1, 0}, segments[0].V1)
	assert.Equal(t, Point{0, 1}, segments[2].V0)
	assert.Equal(t, Point{0, 0}, segments[2].V1)
	// Segment ids are 1-based and wrap around
	assert.Equal(t, 2, segments[0].Next)
	assert.Equal(t, 3, segments[0].Prev)
	assert.Equal(t, 1, segments[2].Next)
	assert.Equal(t, 2, segments[2].Prev)
}

func TestInitQueryStructure(t *testing.T) {
	c := loadedContext([]Point{{1, 2}, {3, 4}, {0, 5}})
	root := c.initQueryStructure(1)
	c.root = root

	// Test root node
	rootNode := c.nodes.at(root)
	require.Equal(t, YNode, rootNode.Kind)
	assert.Equal(t, Point{3, 4}, rootNode.YVal)

	// Test top sink
	topSink := c.nodes.at(rootNode.Right)
	require.Equal(t, SinkNode, topSink.Kind)
	assert.Equal(t, root, topSink.Parent)
	top := topSink.Trapezoid

	// Get the YNode below the top trapezoid
	lower := c.nodes.at(rootNode.Left)
	require.Equal(t, YNode, lower.Kind)
	assert.Equal(t, Point{1, 2}, lower.YVal)

	bottomSink := c.nodes.at(lower.Left)
	require.Equal(t, SinkNode, bottomSink.Kind)
	bottom := bottomSink.Trapezoid

	// Get the xnode above the bottom trapezoid
	xnode := c.nodes.at(lower.Right)
	require.Equal(t, XNode, xnode.Kind)
	assert.Equal(t, 1, xnode.Segment)
	left := c.nodes.at(xnode.Left).Trapezoid
	right := c.nodes.at(xnode.Right).Trapezoid

	assert.ElementsMatch(t, []int{1, 2, 3, 4}, []int{top, bottom, left, right})

	// Assert trapezoid neighbor relationships
	tt, tb, tl, tr := c.trap(top), c.trap(bottom), c.trap(left), c.trap(right)
	assert.Equal(t, [2]int{0, 0}, [2]int{tt.U0, tt.U1})
	assert.ElementsMatch(t, []int{left, right}, []int{tt.D0, tt.D1})
	assert.Equal(t, [2]int{0, 0}, [2]int{tb.D0, tb.D1})
	assert.ElementsMatch(t, []int{left, right}, []int{tb.U0, tb.U1})
	assert.Equal(t, top, tl.U0)
	assert.Equal(t, bottom, tl.D0)
	assert.Equal(t, top, tr.U0)
	assert.Equal(t, bottom, tr.D0)

	assert.Equal(t, 1, tl.RSeg)
	assert.Equal(t, 0, tl.LSeg)
	assert.Equal(t, 1, tr.LSeg)
	assert.Equal(t, 0, tr.RSeg)
	assert.Equal(t, Point{3, 4}, tl.Hi)
	assert.Equal(t, Point{1, 2}, tl.Lo)

	assert.True(t, c.segments[1].IsInserted)
	assert.NotPanics(t, c.CheckInvariants)

	// Test some points
	trapNames := map[int]string{ // To make test failures easier to read
		top:    "top",
		bottom: "bottom",
		left:   "left",
		right:  "right",
	}
	cases := []struct {
		point, aux Point
		expected   int
	}{
		{Point{0, 10}, Point{0, 10}, top},
		{Point{10, -10}, Point{10, -10}, bottom},
		{Point{0, 3}, Point{0, 3}, left},
		{Point{5, 3}, Point{5, 3}, right},
		// Already inserted points go the way of the other endpoint
		{Point{3, 4}, Point{0, 5}, top},
		{Point{1, 2}, Point{0, 0}, bottom},
		{Point{1, 2}, Point{0, 3}, left},
		{Point{1, 2}, Point{3, 2.5}, right},
	}
	for _, tc := range cases {
		actual := c.locateEndpoint(tc.point, tc.aux, root)
		assert.Equal(t, trapNames[tc.expected], trapNames[actual], "locating %v via %v", tc.point, tc.aux)
	}
}

func TestConstructTrapezoids(t *testing.T) {
	for _, poly := range []Polygon{Square(), SimpleStar(), LoadFixture("cshape")} {
		c := loadedContext(poly.Points)
		c.config.DebugChecks = true
		require.NotPanics(t, c.constructTrapezoids)

		n := len(poly.Points)
		for _, s := range c.Segments() {
			assert.True(t, s.IsInserted)
		}
		assert.Len(t, c.Trapezoids(), 2*n+1)

		// Inside trapezoids are exactly those bounded on both sides with the
		// right side running up
		for id, trap := range c.Trapezoids() {
			if trap.LSeg == 0 || trap.RSeg == 0 {
				assert.False(t, c.IsInside(id))
			}
		}
	}
}

func TestFindNewRoots(t *testing.T) {
	c := loadedContext(Square().Points)
	c.order.generate(c.n, c.rng)
	c.root = c.initQueryStructure(1)
	for i := 1; i <= c.n; i++ {
		c.segments[i].Root0 = c.root
		c.segments[i].Root1 = c.root
	}

	c.findNewRoots(3)
	s := c.segments[3]
	// The new roots are sinks holding the endpoints
	for _, root := range []int{s.Root0, s.Root1} {
		node := c.nodes.at(root)
		assert.Equal(t, SinkNode, node.Kind)
	}
	assert.Equal(t, c.locateEndpoint(s.V0, s.V1, c.root), c.nodes.at(s.Root0).Trapezoid)
	assert.Equal(t, c.locateEndpoint(s.V1, s.V0, c.root), c.nodes.at(s.Root1).Trapezoid)

	// Inserted segments are left alone
	c.findNewRoots(1)
	assert.Equal(t, c.root, c.segments[1].Root0)
}

func TestLogStar(t *testing.T) {
	assert.Equal(t, 0, logStar(1))
	assert.Equal(t, 1, logStar(2))
	assert.Equal(t, 1, logStar(3))
	assert.Equal(t, 2, logStar(4))
	assert.Equal(t, 3, logStar(16))
	assert.Equal(t, 4, logStar(65536))
}

func TestPhaseEnd(t *testing.T) {
	assert.Equal(t, 1, phaseEnd(16, 0))
	assert.Equal(t, 4, phaseEnd(16, 1))
	assert.Equal(t, 8, phaseEnd(16, 2))
	assert.Equal(t, 16, phaseEnd(16, 3))
	assert.Equal(t, 2, phaseEnd(3, 1))
}
