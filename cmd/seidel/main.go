package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"

	"github.com/osuushi/seidel"
)

// Triangulate a polygon from a file or stdin and print the triangles. Input is
// one "x y" point per line, or with --svg, an SVG document whose first
// <polygon> is used. Triangles are printed one per line as three vertex
// indices.

var (
	app = kingpin.New("seidel", "Triangulate a simple polygon.")

	inputPath  = app.Arg("input", "Polygon file. Reads stdin when omitted.").String()
	svgInput   = app.Flag("svg", "Read the first <polygon> of an SVG document.").Bool()
	format     = app.Flag("format", "Output format.").Default("text").Enum("text", "yaml")
	oneBased   = app.Flag("one-based", "Number vertices from 1.").Bool()
	pngPath    = app.Flag("png", "Write a drawing of the result to this file.").String()
	imgcat     = app.Flag("imgcat", "Draw the result in the terminal (iTerm only).").Bool()
	trapezoids = app.Flag("trapezoids", "Include the trapezoids in drawings.").Bool()
	dump       = app.Flag("dump", "Print the trapezoids to stderr.").Bool()
	seed       = app.Flag("seed", "Seed for the segment insertion order.").Default("0").Int64()
	random     = app.Flag("random", "Seed the insertion order from the clock.").Bool()
	debug      = app.Flag("debug", "Log each stage and check invariants after every insertion.").Short('d').Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(os.Stdout, os.Stderr); err != nil {
		app.Fatalf("%v", err)
	}
}

func run(stdout, stderr io.Writer) error {
	opts := []seidel.Option{seidel.WithSeed(*seed)}
	if *random {
		opts = append(opts, seidel.WithNondeterministic())
	}
	if *debug {
		encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		seidel.SetLogger(zap.New(zapcore.NewCore(encoder, zapcore.AddSync(stderr), zapcore.DebugLevel)))
		opts = append(opts, seidel.WithDebugChecks())
	}

	points, err := readInput(*inputPath, *svgInput)
	if err != nil {
		return err
	}

	t := seidel.New(opts...)
	triangles, err := t.Triangulate(points)
	if err != nil {
		return errors.Wrap(err, "triangulate")
	}

	if *dump {
		if err := t.DumpTrapezoids(stderr); err != nil {
			return err
		}
	}

	renderOpts := seidel.RenderOptions{Trapezoids: *trapezoids, Labels: *trapezoids, Triangles: true}
	if *pngPath != "" {
		if err := writePNG(t, *pngPath, renderOpts); err != nil {
			return err
		}
	}
	if *imgcat {
		if err := t.RenderToTerminal(renderOpts); err != nil {
			return err
		}
	}

	offset := 0
	if *oneBased {
		offset = 1
	}
	return writeTriangles(stdout, *format, triangles, offset, t.Stats())
}

func readInput(path string, svg bool) ([]seidel.Point, error) {
	in := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}
	if svg {
		return readSVGPolygon(in)
	}
	return readPoints(in)
}

func writePNG(t *seidel.Triangulator, path string, opts seidel.RenderOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create png")
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.Wrap(closeErr, "close png")
		}
	}()
	return t.Render(f, opts)
}

type yamlStats struct {
	Vertices   int `yaml:"vertices"`
	Trapezoids int `yaml:"trapezoids"`
	QueryNodes int `yaml:"query_nodes"`
	Monotones  int `yaml:"monotones"`
	Diagonals  int `yaml:"diagonals"`
}

type yamlOutput struct {
	Triangles [][3]int  `yaml:"triangles"`
	Stats     yamlStats `yaml:"stats"`
}

func writeTriangles(w io.Writer, format string, triangles []seidel.Triangle, offset int, stats seidel.Stats) (err error) {
	shifted := make([][3]int, len(triangles))
	for i, tri := range triangles {
		for k, v := range tri {
			shifted[i][k] = v + offset
		}
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		defer func() {
			if closeErr := enc.Close(); err == nil {
				err = errors.Wrap(closeErr, "close yaml")
			}
		}()
		out := yamlOutput{
			Triangles: shifted,
			Stats: yamlStats{
				Vertices:   stats.Segments,
				Trapezoids: stats.ValidTrapezoids,
				QueryNodes: stats.QueryNodes,
				Monotones:  stats.Monotones,
				Diagonals:  stats.Diagonals,
			},
		}
		return errors.Wrap(enc.Encode(out), "encode yaml")
	}

	for _, tri := range shifted {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", tri[0], tri[1], tri[2]); err != nil {
			return errors.Wrap(err, "write triangles")
		}
	}
	return nil
}
