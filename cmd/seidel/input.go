package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/pkg/errors"

	"github.com/osuushi/seidel"
)

// Read newline separated points in the form "x y". Blank lines and lines
// starting with # are skipped.
func readPoints(in io.Reader) ([]seidel.Point, error) {
	var points []seidel.Point
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: expected \"x y\", got %q", line, text)
		}
		point, err := parsePoint(fields[0], fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, point)
	}
	return points, errors.Wrap(scanner.Err(), "read points")
}

// Read the points of the first <polygon> in an SVG document.
func readSVGPolygon(in io.Reader) ([]seidel.Point, error) {
	root, err := svgparser.Parse(in, true)
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}
	polygons := root.FindAll("polygon")
	if len(polygons) == 0 {
		return nil, errors.New("no <polygon> in svg")
	}

	// Coordinates may be separated by commas, whitespace, or both
	coords := strings.FieldsFunc(polygons[0].Attributes["points"], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(coords)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in polygon: %d", len(coords))
	}
	points := make([]seidel.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		point, err := parsePoint(coords[i], coords[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i/2)
		}
		points = append(points, point)
	}
	return points, nil
}

func parsePoint(xs, ys string) (seidel.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return seidel.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return seidel.Point{}, errors.Wrap(err, "y")
	}
	return seidel.Point{X: x, Y: y}, nil
}
