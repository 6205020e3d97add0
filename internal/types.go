package internal

type Point struct {
	X float64
	Y float64
}

// A polygon edge. Segments are stored in the polygon's own orientation, so
// segment i runs from vertex i to vertex Next, and the segment id doubles as the
// id of its starting vertex. Root0 and Root1 are query nodes from which the
// endpoints can be located more cheaply than from the global root.
type Segment struct {
	V0, V1       Point
	IsInserted   bool
	Root0, Root1 int
	Next, Prev   int
}

// A triangle as three vertex indices, wound anticlockwise.
type Triangle [3]int

type Polygon struct {
	Points []Point
}

type PointStack []int

// Positive for anticlockwise polygons.
func (poly Polygon) SignedArea() float64 {
	var area float64
	n := len(poly.Points)
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, n)]
		area += p.X*q.Y - q.X*p.Y
	}
	return area / 2
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{Points: make([]Point, 0, len(poly.Points))}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// Even-odd point-in-polygon by crossing count. This is the brute force check
// that the trapezoid based ContainsPoint is measured against.
func (poly Polygon) ContainsPointByEvenOdd(p Point) bool {
	inside := false
	n := len(poly.Points)
	for i, a := range poly.Points {
		b := poly.Points[CircularIndex(i+1, n)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

func TriangleSignedArea(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)) / 2
}
