package internal

import (
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"

	"github.com/osuushi/seidel/dbg"
)

// Padding around the shape to make infinite trapezoids obvious
const drawPadding = 100

// Longest side of the drawing when no scale is given.
const defaultDrawSize = 800

type RenderOptions struct {
	// Pixels per unit. Zero fits the polygon into a default size.
	Scale float64
	// Fill and outline every trapezoid, inside or not.
	Trapezoids bool
	// Label trapezoids with readable names.
	Labels bool
	// Outline the output triangles.
	Triangles bool
}

// A drawing context along with the inverse of its transform. The gg library
// has no matrix inverse, or even a way to get to the context matrix, so the
// inverse is built alongside.
type canvas struct {
	*gg.Context
	inverse gg.Matrix
}

// Draw the last triangulation.
func (c *Context) Draw(opts RenderOptions) *gg.Context {
	if c.n == 0 {
		return gg.NewContext(1, 1)
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range c.Segments() {
		minX = math.Min(minX, s.V0.X)
		minY = math.Min(minY, s.V0.Y)
		maxX = math.Max(maxX, s.V0.X)
		maxY = math.Max(maxY, s.V0.Y)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
		if extent := math.Max(maxX-minX, maxY-minY); extent > 0 {
			scale = defaultDrawSize / extent
		}
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	dc := canvas{Context: gg.NewContext(width, height)}
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()

	// Flip the context so the origin is at the bottom left, then pad, scale,
	// and move the minimum to the origin
	dc.Translate(0, float64(height))
	dc.Scale(1, -1)
	dc.Translate(drawPadding, drawPadding)
	dc.Scale(scale, scale)
	dc.Translate(-minX, -minY)

	dc.inverse = gg.Identity().
		Translate(minX, minY).
		Scale(1/scale, 1/scale).
		Translate(-drawPadding, -drawPadding).
		Scale(1, -1).
		Translate(0, -float64(height))

	dc.SetLineWidth(2 / scale)
	if opts.Trapezoids {
		// Fill everything first so the outlines sit on top
		for id := 1; id <= c.trapezoids.len(); id++ {
			c.drawTrapezoid(dc, id, false, opts.Labels)
		}
		for id := 1; id <= c.trapezoids.len(); id++ {
			c.drawTrapezoid(dc, id, true, false)
		}
	}

	if opts.Triangles {
		for _, tri := range c.triangles {
			a, b, d := c.vertices[tri[0]].pt, c.vertices[tri[1]].pt, c.vertices[tri[2]].pt
			dc.MoveTo(a.X, a.Y)
			dc.LineTo(b.X, b.Y)
			dc.LineTo(d.X, d.Y)
			dc.ClosePath()
		}
		dc.SetRGBA(0, 0.5, 0, 0.6)
		dc.FillPreserve()
		dc.SetRGB(1, 1, 1)
		dc.Stroke()
	}

	// The polygon itself
	dc.SetLineWidth(3 / scale)
	segments := c.Segments()
	dc.MoveTo(segments[0].V0.X, segments[0].V0.Y)
	for _, s := range segments[1:] {
		dc.LineTo(s.V0.X, s.V0.Y)
	}
	dc.ClosePath()
	dc.SetRGB(0, 1, 1)
	dc.Stroke()

	return dc.Context
}

// Encode the drawing as PNG.
func (c *Context) EncodePNG(w io.Writer, opts RenderOptions) error {
	return errors.Wrap(c.Draw(opts).EncodePNG(w), "encode png")
}

// Print the drawing to the terminal (iTerm only).
func (c *Context) ShowInTerminal(opts RenderOptions) error {
	path := filepath.Join(os.TempDir(), "seidel.png")
	if err := c.Draw(opts).SavePNG(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	imgcat.CatFile(path, os.Stdout)
	return nil
}

func (c *Context) drawTrapezoid(dc canvas, id int, stroke, label bool) {
	t := c.trap(id)
	if t.State != Valid {
		return
	}

	// Points at infinity are pinned to the edges of the canvas
	minX, minY, maxX, maxY := dc.bounds()
	top, bottom := t.Hi.Y, t.Lo.Y
	if top >= infinity {
		top = maxY
	}
	if bottom <= -infinity {
		bottom = minY
	}

	leftTop, leftBottom := c.xAt(t.LSeg, top, minX), c.xAt(t.LSeg, bottom, minX)
	rightTop, rightBottom := c.xAt(t.RSeg, top, maxX), c.xAt(t.RSeg, bottom, maxX)

	dc.MoveTo(leftTop, top)
	dc.LineTo(leftBottom, bottom)
	dc.LineTo(rightBottom, bottom)
	dc.LineTo(rightTop, top)
	dc.ClosePath()
	if stroke {
		dc.SetRGB(0, 1, 0)
		dc.Stroke()
		return
	}

	if c.IsInside(id) {
		dc.SetRGBA(0.3, 0.2, 1, 0.5)
	} else {
		dc.SetRGBA(1, 1, 0, 0.5)
	}
	dc.Fill()

	if !label {
		return
	}
	dc.SetRGB(1, 1, 1)
	centerX := (leftTop + leftBottom + rightTop + rightBottom) / 4
	centerY := (top + bottom) / 2
	// Text has to be drawn in native coordinates, or it comes out flipped
	centerX, centerY = dc.TransformPoint(centerX, centerY)
	dc.Push()
	dc.Identity()
	dc.DrawStringAnchored(dbg.ID("trapezoid", id), centerX, centerY, 0.5, 0.5)
	dc.Pop()
}

// X coordinate of segment seg at height y, or fallback for a missing segment.
func (c *Context) xAt(seg int, y, fallback float64) float64 {
	if seg <= 0 {
		return fallback
	}
	s := &c.segments[seg]
	if c.eps.Equal(s.V0.Y, s.V1.Y) { // leave horizontal segments alone
		return s.V0.X
	}
	return s.V0.X + (y-s.V0.Y)*(s.V1.X-s.V0.X)/(s.V1.Y-s.V0.Y)
}

// Visible area of the canvas in polygon coordinates, with a little slack.
func (dc canvas) bounds() (minX, minY, maxX, maxY float64) {
	x0, y0 := dc.inverse.TransformPoint(-10, -10)
	x1, y1 := dc.inverse.TransformPoint(float64(dc.Width()+20), float64(dc.Height()+20))
	return math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1)
}
