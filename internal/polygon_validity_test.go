package internal

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is valid. The rules are:
// 1. There are exactly n-2 triangles, made of distinct vertex ids in 1..n.
// 2. Every triangle is counterclockwise with nonzero area.
// 3. Every polygon edge belongs to exactly one triangle, and every other edge
//    (a diagonal) to exactly two.
// 4. The sum of the areas of all triangles is equal to the area of the polygon.
func AssertValidTriangulation(t *testing.T, polygon Polygon, triangles []Triangle) {
	n := len(polygon.Points)
	require.Greater(t, polygon.SignedArea(), 0.0, "polygon is not counterclockwise")
	require.Len(t, triangles, n-2)

	pt := func(v int) Point { return polygon.Points[v-1] }
	edgeUses := make(map[[2]int]int)
	var triangleArea float64
	for _, tri := range triangles {
		for _, v := range tri {
			require.True(t, v >= 1 && v <= n, "vertex id %d out of range in %v", v, tri)
		}
		require.True(t, tri[0] != tri[1] && tri[1] != tri[2] && tri[2] != tri[0], "repeated vertex in %v", tri)

		area := TriangleSignedArea(pt(tri[0]), pt(tri[1]), pt(tri[2]))
		require.Greater(t, area, 0.0, "triangle is not counterclockwise: %v", tri)
		triangleArea += area

		for i := range tri {
			edgeUses[normalizedEdge(tri[i], tri[(i+1)%3])]++
		}
	}

	boundary := make(map[[2]int]bool)
	for i := 1; i <= n; i++ {
		e := normalizedEdge(i, CircularIndex(i, n)+1)
		boundary[e] = true
		assert.Equal(t, 1, edgeUses[e], "polygon edge %v", e)
	}
	for e, uses := range edgeUses {
		if !boundary[e] {
			assert.Equal(t, 2, uses, "diagonal %v", e)
		}
	}

	assert.InDelta(t, polygon.SignedArea(), triangleArea, 1e-6*math.Max(1, polygon.SignedArea()))
}

func normalizedEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Sample a grid over the polygon's bounding box and check that points inside
// the polygon are covered by some triangle, and points outside by none. Points
// too close to the polygon's boundary to call are skipped.
func validateTrianglesBySampling(t *testing.T, polygon Polygon, triangles []Triangle) {
	minX, minY, maxX, maxY := bounds(polygon)

	// Pad the bounding box by 10%
	xPadding := (maxX - minX) * 0.1
	yPadding := (maxY - minY) * 0.1
	minX -= xPadding
	minY -= yPadding
	maxX += xPadding
	maxY += yPadding

	step := math.Max(maxX-minX, maxY-minY) / 50

	for y := minY; y <= maxY; y += step {
		for x := minX; x <= maxX; x += step {
			p := Point{X: x, Y: y}
			if distanceToBoundary(polygon, p) < 1e-6 {
				continue
			}

			covered := false
			for _, tri := range triangles {
				if triangleContains(polygon, tri, p) {
					covered = true
					break
				}
			}
			if polygon.ContainsPointByEvenOdd(p) {
				assert.True(t, covered, "point %v should be covered by a triangle", p)
			} else {
				assert.False(t, covered, "point %v should not be covered by a triangle", p)
			}
		}
	}
}

func bounds(polygon Polygon) (minX, minY, maxX, maxY float64) {
	minX, minY, maxX, maxY = math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range polygon.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

func triangleContains(polygon Polygon, tri Triangle, p Point) bool {
	a, b, c := polygon.Points[tri[0]-1], polygon.Points[tri[1]-1], polygon.Points[tri[2]-1]
	return TriangleSignedArea(a, b, p) >= 0 &&
		TriangleSignedArea(b, c, p) >= 0 &&
		TriangleSignedArea(c, a, p) >= 0
}

func distanceToBoundary(polygon Polygon, p Point) float64 {
	best := math.Inf(1)
	n := len(polygon.Points)
	for i, a := range polygon.Points {
		b := polygon.Points[CircularIndex(i+1, n)]
		dx, dy := b.X-a.X, b.Y-a.Y
		u := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
		u = math.Max(0, math.Min(1, u))
		best = math.Min(best, math.Hypot(a.X+u*dx-p.X, a.Y+u*dy-p.Y))
	}
	return best
}
