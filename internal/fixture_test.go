package internal

import (
	"embed"
	"log"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs polygons. This is not a full
// (or even correct) svg parser. It parses the SVG and then finds whatever the
// first polygon is, then converts that into a CCW Polygon. If anything goes
// wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Polygon {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	// Find the first polygon
	polygons := rootEl.FindAll("polygon")
	if len(polygons) != 1 {
		log.Fatalf("Expected one polygon in fixture %q, found %d", name, len(polygons))
	}

	pointStrings := strings.Fields(polygons[0].Attributes["points"])
	points := make([]Point, 0, len(pointStrings))
	for _, pointString := range pointStrings {
		coords := strings.Split(pointString, ",")
		if len(coords) != 2 {
			log.Fatalf("Invalid point string %q", pointString)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			log.Fatalf("Invalid x value %q: %v", coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			log.Fatalf("Invalid y value %q: %v", coords[1], err)
		}
		points = append(points, Point{x, y})
	}
	return ccw(Polygon{Points: points})
}

func ccw(poly Polygon) Polygon {
	if poly.SignedArea() < 0 {
		return poly.Reverse()
	}
	return poly
}

// Some ad hoc code specified fixtures

func Square() Polygon {
	return Polygon{Points: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
}

func SimpleStar() Polygon {
	var points []Point
	const outerRadius = 5
	const innerRadius = 2
	for i := 0; i < 10; i++ {
		radius := float64(outerRadius)
		if i%2 == 1 {
			radius = innerRadius
		}
		angle := 2 * math.Pi * float64(i) / 10
		points = append(points, Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
	}
	return Polygon{Points: points}
}

func RegularPolygon(n int, radius float64) Polygon {
	points := make([]Point, n)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points[i] = Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return Polygon{Points: points}
}

// A thick Archimedean spiral strip, which produces lots of reflex vertices
// and long monotone chains.
func Spiral() Polygon {
	const (
		turns   = 2
		steps   = 60
		spacing = 3.0
		width   = 1.5
	)
	var outer, inner []Point
	for i := 0; i <= steps; i++ {
		theta := float64(i) / steps * turns * 2 * math.Pi
		r := 1 + spacing*theta/(2*math.Pi)
		outer = append(outer, Point{X: (r + width) * math.Cos(theta), Y: (r + width) * math.Sin(theta)})
		inner = append(inner, Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
	}
	// Out along the outer edge, back along the inner one
	points := outer
	for i := len(inner) - 1; i >= 0; i-- {
		points = append(points, inner[i])
	}
	return ccw(Polygon{Points: points})
}

// A star shaped polygon around the origin with n vertices at random radii.
// Angles are evenly spaced with a little jitter, so the result is always
// simple.
func RandomStarShaped(rng *rand.Rand, n int) Polygon {
	points := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range points {
		angle := step*float64(i) + step*0.4*rng.Float64()
		r := 1 + 9*rng.Float64()
		points[i] = Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}
	return Polygon{Points: points}
}
