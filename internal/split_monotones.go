package internal

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Splitting the trapezoidation into monotone polygons. Every inside trapezoid
// whose top and bottom vertices are not on the same side gets a diagonal
// between them. The diagonals are not stored as geometry; instead each one
// splices the circular vertex chain of the polygon it cuts into two chains, so
// once the walk over the trapezoids is done, every chain is a monotone polygon.

// A position in a monotone chain. Chains are circular and run anticlockwise.
type chainElement struct {
	vnum       int
	next, prev int
	marked     bool
}

// Every chain that passes through a vertex. vnext[i] is the vertex following
// this one on the chain at position vpos[i].
type vertexChain struct {
	pt       Point
	vnext    [maxVertexChains]int
	vpos     [maxVertexChains]int
	nextfree int
}

type traverseDir int

const (
	fromUp traverseDir = iota + 1
	fromDown
)

// A pending visit to a trapezoid, on behalf of monotone polygon mon, arriving
// from trapezoid from.
type traversal struct {
	mon, trap, from int
	dir             traverseDir
}

// The ways an inside trapezoid can sit between its top and bottom vertices.
type splitCase int

const (
	// No diagonal. splitNoneAtTip covers trapezoids missing all neighbors on
	// one side, which visit their neighbors in a different order.
	splitNone splitCase = iota
	splitNoneAtTip
	// Nothing above, two below
	splitDownwardTriangle
	// Nothing below, two above
	splitUpwardTriangle
	// Two above and two below
	splitBothCusps
	// Two above, one below; the bottom vertex is on the left or right segment
	splitTwoUpLeft
	splitTwoUpRight
	// One above, two below; the top vertex is on the left or right segment
	splitTwoDownLeft
	splitTwoDownRight
	// One above and one below, with the top and bottom vertices on opposite
	// sides. Down has the top on the left segment, up has it on the right.
	splitCrossDown
	splitCrossUp
)

// Does the trapezoid lie inside the polygon, at one of its tips? Any inside
// trapezoid will do as the start of the walk, but one missing a neighbor on
// some side is cheap to recognize.
func (c *Context) insidePolygon(id int) bool {
	t := c.trap(id)
	if t.State == Invalid {
		return false
	}
	if t.LSeg <= 0 || t.RSeg <= 0 {
		return false
	}
	if t.above() == sideNone || t.below() == sideNone {
		rseg := &c.segments[t.RSeg]
		return c.eps.Above(rseg.V1, rseg.V0)
	}
	return false
}

// Walk the inside trapezoids, adding diagonals, and return the number of
// monotone polygons.
func (c *Context) monotonateTrapezoids() int {
	start := 0
	for id := 1; id <= c.trapezoids.len(); id++ {
		if c.insidePolygon(id) {
			start = id
			break
		}
	}
	if start == 0 {
		throw(ErrDegenerate, "no trapezoid inside the polygon")
	}

	// Initially there is a single chain: the polygon itself
	for i := 1; i <= c.n; i++ {
		s := &c.segments[i]
		id := c.chain.alloc()
		*c.chain.at(id) = chainElement{vnum: i, next: s.Next, prev: s.Prev}

		v := &c.vertices[i]
		v.pt = s.V0
		v.vnext[0] = s.Next
		v.vpos[0] = id
		v.nextfree = 1
	}
	c.monotones = append(c.monotones[:0], 1)

	t := c.trap(start)
	first := traversal{mon: 0, trap: start, from: t.U0, dir: fromUp}
	if t.U0 <= 0 {
		first.from, first.dir = t.D0, fromDown
	}
	c.traversePolygon(first)

	logger().Debug("seidel: monotone decomposition done",
		zap.Int("start", start),
		zap.Int("monotones", len(c.monotones)),
		zap.Int("diagonals", c.diagonals))
	return len(c.monotones)
}

// Depth first walk over the inside trapezoids. The visiting order matters,
// since which side of a diagonal keeps the current monotone polygon depends on
// where the walk came from; children are pushed in reverse so they are popped
// in the order they are listed.
func (c *Context) traversePolygon(start traversal) {
	stack := []traversal{start}
	var children []traversal
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.trap <= 0 || c.visited[f.trap] {
			continue
		}
		c.visited[f.trap] = true

		children = c.splitTrapezoid(f, children[:0])
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

func (c *Context) classifySplit(t *Trapezoid) splitCase {
	lseg, rseg := &c.segments[t.LSeg], &c.segments[t.RSeg]
	up, down := t.above(), t.below()
	switch {
	case up == sideNone:
		if down == sideTwo {
			return splitDownwardTriangle
		}
		return splitNoneAtTip
	case down == sideNone:
		if up == sideTwo {
			return splitUpwardTriangle
		}
		return splitNoneAtTip
	case up == sideTwo:
		if down == sideTwo {
			return splitBothCusps
		}
		if c.eps.Coincident(t.Lo, lseg.V1) {
			return splitTwoUpLeft
		}
		return splitTwoUpRight
	case down == sideTwo:
		if c.eps.Coincident(t.Hi, lseg.V0) {
			return splitTwoDownLeft
		}
		return splitTwoDownRight
	case c.eps.Coincident(t.Hi, lseg.V0) && c.eps.Coincident(t.Lo, rseg.V0):
		return splitCrossDown
	case c.eps.Coincident(t.Hi, rseg.V1) && c.eps.Coincident(t.Lo, lseg.V1):
		return splitCrossUp
	}
	return splitNone
}

// Add the diagonal for the trapezoid visited by f, if it needs one, and append
// the neighbors to visit next to out.
func (c *Context) splitTrapezoid(f traversal, out []traversal) []traversal {
	trnum, mcur := f.trap, f.mon
	t := c.trap(trnum)
	// Neighbors above are entered from below, and vice versa
	up := func(mon, id int) traversal { return traversal{mon: mon, trap: id, from: trnum, dir: fromDown} }
	down := func(mon, id int) traversal { return traversal{mon: mon, trap: id, from: trnum, dir: fromUp} }

	switch c.classifySplit(t) {
	case splitNoneAtTip:
		return append(out, up(mcur, t.U0), up(mcur, t.U1), down(mcur, t.D0), down(mcur, t.D1))

	case splitNone:
		return append(out, up(mcur, t.U0), down(mcur, t.D0), up(mcur, t.U1), down(mcur, t.D1))

	case splitDownwardTriangle:
		v0, v1 := c.trap(t.D1).LSeg, t.LSeg
		if f.from == t.D1 {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, down(mcur, t.D1), down(mnew, t.D0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, down(mcur, t.D0), down(mnew, t.D1))

	case splitUpwardTriangle:
		v0, v1 := t.RSeg, c.trap(t.U0).RSeg
		if f.from == t.U1 {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U1), up(mnew, t.U0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, up(mcur, t.U0), up(mnew, t.U1))

	case splitBothCusps:
		v0, v1 := c.trap(t.D1).LSeg, c.trap(t.U0).RSeg
		if (f.dir == fromDown && t.D1 == f.from) || (f.dir == fromUp && t.U1 == f.from) {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U1), down(mcur, t.D1), up(mnew, t.U0), down(mnew, t.D0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, up(mcur, t.U0), down(mcur, t.D0), up(mnew, t.U1), down(mnew, t.D1))

	case splitTwoUpLeft:
		v0, v1 := c.trap(t.U0).RSeg, c.segments[t.LSeg].Next
		if f.dir == fromUp && t.U0 == f.from {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U0), down(mnew, t.D0), up(mnew, t.U1), down(mnew, t.D1))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, up(mcur, t.U1), down(mcur, t.D0), down(mcur, t.D1), up(mnew, t.U0))

	case splitTwoUpRight:
		v0, v1 := t.RSeg, c.trap(t.U0).RSeg
		if f.dir == fromUp && t.U1 == f.from {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U1), down(mnew, t.D1), down(mnew, t.D0), up(mnew, t.U0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, up(mcur, t.U0), down(mcur, t.D0), down(mcur, t.D1), up(mnew, t.U1))

	case splitTwoDownLeft:
		v0, v1 := c.trap(t.D1).LSeg, t.LSeg
		if !(f.dir == fromDown && t.D0 == f.from) {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U1), down(mcur, t.D1), up(mcur, t.U0), down(mnew, t.D0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, down(mcur, t.D0), up(mnew, t.U0), up(mnew, t.U1), down(mnew, t.D1))

	case splitTwoDownRight:
		v0, v1 := c.trap(t.D1).LSeg, c.segments[t.RSeg].Next
		if f.dir == fromDown && t.D1 == f.from {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, down(mcur, t.D1), up(mnew, t.U1), up(mnew, t.U0), down(mnew, t.D0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, up(mcur, t.U0), down(mcur, t.D0), up(mcur, t.U1), down(mnew, t.D1))

	case splitCrossDown, splitCrossUp:
		v0, v1 := t.RSeg, t.LSeg
		if c.classifySplit(t) == splitCrossUp {
			v0, v1 = c.segments[t.RSeg].Next, c.segments[t.LSeg].Next
		}
		if f.dir == fromUp {
			mnew := c.makeNewMonotonePoly(mcur, v1, v0)
			return append(out, up(mcur, t.U0), up(mcur, t.U1), down(mnew, t.D1), down(mnew, t.D0))
		}
		mnew := c.makeNewMonotonePoly(mcur, v0, v1)
		return append(out, down(mcur, t.D1), down(mcur, t.D0), up(mnew, t.U0), up(mnew, t.U1))
	}
	return out
}

// Pseudo-angle of the turn from vnext around p towards q: the cosine of the
// angle when it opens anticlockwise, and a value below -1 otherwise. It falls
// steadily from 1 to -3 as the anticlockwise turn grows from nothing to a full
// circle.
func pseudoAngle(p, vnext, q Point) float64 {
	a := mgl64.Vec2{vnext.X - p.X, vnext.Y - p.Y}
	b := mgl64.Vec2{q.X - p.X, q.Y - p.Y}
	cos := a.Dot(b) / a.Len() / b.Len()
	if a[0]*b[1]-b[0]*a[1] >= 0 {
		return cos
	}
	return -cos - 2
}

// Which chains through v0 and v1 the diagonal (v0, v1) cuts. For each end, this
// is the chain whose outgoing edge is the first one met sweeping clockwise from
// the diagonal.
func (c *Context) vertexPositions(v0, v1 int) (ip, iq int) {
	best := func(from, to *vertexChain) int {
		angle := -4.0
		pos := 0
		for i := 0; i < maxVertexChains; i++ {
			if from.vnext[i] <= 0 {
				continue
			}
			if a := pseudoAngle(from.pt, c.vertices[from.vnext[i]].pt, to.pt); a > angle {
				angle = a
				pos = i
			}
		}
		return pos
	}
	vp0, vp1 := &c.vertices[v0], &c.vertices[v1]
	return best(vp0, vp1), best(vp1, vp0)
}

// Cut the monotone polygon mcur along the diagonal (v0, v1). mcur keeps one
// side and the other side becomes a new polygon, whose id is returned.
func (c *Context) makeNewMonotonePoly(mcur, v0, v1 int) int {
	vp0, vp1 := &c.vertices[v0], &c.vertices[v1]
	if vp0.nextfree >= maxVertexChains || vp1.nextfree >= maxVertexChains {
		throw(ErrCapacityExceeded, "too many diagonals at vertex %d or %d", v0, v1)
	}

	mnew := len(c.monotones)
	ip, iq := c.vertexPositions(v0, v1)
	p, q := vp0.vpos[ip], vp1.vpos[iq]

	// Two new chain elements duplicate v0 and v1 on the far side of the cut
	i, j := c.chain.alloc(), c.chain.alloc()
	ci, cj := c.chain.at(i), c.chain.at(j)
	cp, cq := c.chain.at(p), c.chain.at(q)
	ci.vnum, cj.vnum = v0, v1

	ci.next = cp.next
	c.chain.at(cp.next).prev = i
	ci.prev = j
	cj.next = i
	cj.prev = cq.prev
	c.chain.at(cq.prev).next = j
	cp.next = q
	cq.prev = p

	nf0, nf1 := vp0.nextfree, vp1.nextfree
	vp0.vnext[ip] = v1
	vp0.vpos[nf0] = i
	vp0.vnext[nf0] = c.chain.at(ci.next).vnum
	vp1.vpos[nf1] = j
	vp1.vnext[nf1] = v0
	vp0.nextfree++
	vp1.nextfree++

	c.monotones[mcur] = p
	c.monotones = append(c.monotones, i)
	c.diagonals++
	return mnew
}
