package internal

import "math"

// The default tolerance for every coordinate comparison in the kernel.
const DefaultEpsilon = 1.0e-7

// To compensate for imprecision in floats, equality is tolerance based. The
// tolerance is absolute, so it is scale sensitive: coordinates far larger or
// smaller than unity need a matching epsilon.
type Epsilon float64

func (e Epsilon) Equal(a, b float64) bool {
	return math.Abs(a-b) <= float64(e)
}

// A common convention in our geometry is that if two points have the same Y
// value, the one with the smaller X value is "lower". This simulates a slightly
// rotated coordinate system, allowing us to assume Y values are never equal.
func (e Epsilon) Above(p, q Point) bool {
	if p.Y > q.Y+float64(e) {
		return true
	}
	if p.Y < q.Y-float64(e) {
		return false
	}
	return p.X > q.X
}

func (e Epsilon) AboveOrAt(p, q Point) bool {
	if p.Y > q.Y+float64(e) {
		return true
	}
	if p.Y < q.Y-float64(e) {
		return false
	}
	return p.X >= q.X
}

func (e Epsilon) Below(p, q Point) bool {
	if p.Y < q.Y-float64(e) {
		return true
	}
	if p.Y > q.Y+float64(e) {
		return false
	}
	return p.X < q.X
}

func (e Epsilon) Coincident(p, q Point) bool {
	return e.Equal(p.Y, q.Y) && e.Equal(p.X, q.X)
}

// The higher of the two points, lexicographically.
func (e Epsilon) Max(p, q Point) Point {
	if p.Y > q.Y+float64(e) {
		return p
	}
	if e.Equal(p.Y, q.Y) && p.X > q.X+float64(e) {
		return p
	}
	return q
}

func (e Epsilon) Min(p, q Point) Point {
	if p.Y < q.Y-float64(e) {
		return p
	}
	if e.Equal(p.Y, q.Y) && p.X < q.X {
		return p
	}
	return q
}

// Is p strictly left of the line through segment s? The line is oriented
// upward regardless of the segment's own orientation. Points level with an
// endpoint are decided by x alone, which keeps nearly horizontal segments from
// producing noise in the cross product.
func (e Epsilon) IsLeftOf(s *Segment, p Point) bool {
	var area float64
	switch {
	case e.Equal(s.V1.Y, p.Y):
		if p.X < s.V1.X {
			area = 1
		} else {
			area = -1
		}
	case e.Equal(s.V0.Y, p.Y):
		if p.X < s.V0.X {
			area = 1
		} else {
			area = -1
		}
	case e.Above(s.V1, s.V0):
		area = cross(s.V0, s.V1, p)
	default:
		area = cross(s.V1, s.V0, p)
	}
	return area > 0
}

// Twice the signed area of (a, b, c).
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

func (s *PointStack) Push(v int) {
	*s = append(*s, v)
}

func (s *PointStack) Pop() int {
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

func (s *PointStack) Peek() int {
	return (*s)[len(*s)-1]
}

func (s *PointStack) Empty() bool {
	return len(*s) == 0
}
