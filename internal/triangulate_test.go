package internal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run a triangulation with the checks on, converting thrown errors.
func triangulate(config Config, polygon Polygon) (c *Context, triangles []Triangle, err error) {
	defer func() {
		if recovered := HandleTriangulatePanicRecover(recover()); recovered != nil {
			err = recovered
		}
	}()
	config.DebugChecks = true
	c = NewContext(config)
	triangles = c.Triangulate(polygon.Points)
	return c, append([]Triangle(nil), triangles...), nil
}

func mustTriangulate(t *testing.T, polygon Polygon) (*Context, []Triangle) {
	c, triangles, err := triangulate(DefaultConfig(), polygon)
	require.NoError(t, err)
	AssertValidTriangulation(t, polygon, triangles)
	return c, triangles
}

func TestTriangulate_Triangle(t *testing.T) {
	_, triangles := mustTriangulate(t, Polygon{Points: []Point{{0, 0}, {1, 0}, {0, 1}}})
	require.Len(t, triangles, 1)
	assert.ElementsMatch(t, []int{1, 2, 3}, triangles[0][:])
}

func TestTriangulate_Square(t *testing.T) {
	_, triangles := mustTriangulate(t, Square())
	assert.Len(t, triangles, 2)
}

func TestTriangulate_Hexagon(t *testing.T) {
	const r = 3.0
	poly := RegularPolygon(6, r)
	_, triangles := mustTriangulate(t, poly)
	require.Len(t, triangles, 4)

	sum := 0.0
	for _, tri := range triangles {
		sum += TriangleSignedArea(poly.Points[tri[0]-1], poly.Points[tri[1]-1], poly.Points[tri[2]-1])
	}
	assert.InDelta(t, 3*math.Sqrt(3)/2*r*r, sum, 1e-6)
}

func TestTriangulate_LShape(t *testing.T) {
	poly := Polygon{Points: []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}}
	_, triangles := mustTriangulate(t, poly)
	validateTrianglesBySampling(t, poly, triangles)
}

func TestTriangulate_Fixtures(t *testing.T) {
	for _, name := range []string{"comb", "cshape", "dart"} {
		t.Run(name, func(t *testing.T) {
			poly := LoadFixture(name)
			_, triangles := mustTriangulate(t, poly)
			validateTrianglesBySampling(t, poly, triangles)
		})
	}
}

func TestTriangulate_Star(t *testing.T) {
	poly := SimpleStar()
	_, triangles := mustTriangulate(t, poly)
	validateTrianglesBySampling(t, poly, triangles)
}

func TestTriangulate_Spiral(t *testing.T) {
	poly := Spiral()
	_, triangles := mustTriangulate(t, poly)
	validateTrianglesBySampling(t, poly, triangles)
}

func TestTriangulate_RandomStarShaped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		poly := RandomStarShaped(rng, 3+rng.Intn(60))
		mustTriangulate(t, poly)
		if t.Failed() {
			t.Fatalf("failed on %v", poly.Points)
		}
	}
}

func TestTriangulate_ManySeeds(t *testing.T) {
	// The insertion order changes the trapezoidation, but never the validity
	// of the result
	poly := LoadFixture("comb")
	for seed := int64(0); seed < 25; seed++ {
		config := DefaultConfig()
		config.Seed = seed
		_, triangles, err := triangulate(config, poly)
		require.NoError(t, err, "seed %d", seed)
		AssertValidTriangulation(t, poly, triangles)
	}
}

func TestTriangulate_Deterministic(t *testing.T) {
	poly := Spiral()
	config := DefaultConfig()
	config.Seed = 7

	_, first, err := triangulate(config, poly)
	require.NoError(t, err)
	_, second, err := triangulate(config, poly)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Reusing a context gives the same answer too
	c := NewContext(config)
	reused := append([]Triangle(nil), c.Triangulate(poly.Points)...)
	again := c.Triangulate(poly.Points)
	assert.Equal(t, reused, again)
	assert.Equal(t, first, reused)
}

func TestTriangulate_TooFewPoints(t *testing.T) {
	_, _, err := triangulate(DefaultConfig(), Polygon{Points: []Point{{0, 0}, {1, 1}}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestTriangulate_CapacityExceeded(t *testing.T) {
	config := DefaultConfig()
	config.CapacityFactor = 1
	_, _, err := triangulate(config, Spiral())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExceeded), "got %v", err)
}

func TestContainsPoint(t *testing.T) {
	for _, poly := range []Polygon{Square(), SimpleStar(), LoadFixture("comb"), Spiral()} {
		c, _ := mustTriangulate(t, poly)
		minX, minY, maxX, maxY := bounds(poly)
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 500; i++ {
			p := Point{
				X: minX - 1 + (maxX-minX+2)*rng.Float64(),
				Y: minY - 1 + (maxY-minY+2)*rng.Float64(),
			}
			if distanceToBoundary(poly, p) < 1e-6 {
				continue
			}
			assert.Equal(t, poly.ContainsPointByEvenOdd(p), c.ContainsPoint(p), "point %v", p)
		}
	}
}

func TestContainsPoint_BeforeTriangulate(t *testing.T) {
	c := NewContext(DefaultConfig())
	assert.False(t, c.ContainsPoint(Point{0, 0}))
}

func TestStats(t *testing.T) {
	poly := LoadFixture("comb")
	c, _ := mustTriangulate(t, poly)
	stats := c.Stats()
	n := len(poly.Points)
	assert.Equal(t, n, stats.Segments)
	assert.Equal(t, n-2, stats.Triangles)
	// Every diagonal adds one monotone polygon
	assert.Equal(t, stats.Diagonals+1, stats.Monotones)
	// Each vertex and each edge adds one trapezoid to the unbounded plane
	assert.Equal(t, 2*n+1, stats.ValidTrapezoids)
	assert.Len(t, c.Trapezoids(), stats.ValidTrapezoids)
	assert.GreaterOrEqual(t, stats.Trapezoids, stats.ValidTrapezoids)
	assert.Greater(t, stats.QueryNodes, stats.ValidTrapezoids)
}
