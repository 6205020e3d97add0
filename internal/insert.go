package internal

// Segment insertion. Adding a segment happens in three steps:
//
// 1. Each endpoint that is not in the structure yet splits the trapezoid that
//    contains it horizontally, and the trapezoid's sink becomes a Y node.
// 2. The segment is threaded from the topmost to the bottommost trapezoid it
//    crosses. Each of those is split into a left part (the original) and a new
//    right part, and its sink becomes an X node keyed on the segment.
// 3. Consecutive parts on either side that ended up bounded by the same pair
//    of segments are merged back together.

// How a trapezoid being split by the segment connects upward.
type upperPattern int

const (
	// Two neighbors above: the segment continues a chain from above.
	upperContinuation upperPattern = iota
	// As above, with a third neighbor parked on the left or right.
	upperThreeSavedLeft
	upperThreeSavedRight
	// One neighbor above which itself has two below: the segment starts at a
	// vertex where two edges meet pointing up. The segment heads off to the
	// right or the left of the other edge.
	upperCuspRight
	upperCuspLeft
	// One neighbor above: the segment starts fresh in this trapezoid.
	upperFresh
)

// How a trapezoid being split by the segment connects downward.
type lowerPattern int

const (
	// The segment ends at an existing vertex at the bottom of this trapezoid,
	// and the other edge at that vertex is to the left or right.
	lowerTriangleLeft lowerPattern = iota
	lowerTriangleRight
	// One neighbor below, which the segment continues into.
	lowerSingle
	// Two neighbors below: the segment ends at the shared vertex, or
	// continues into the left or right one.
	lowerDoubleTriangle
	lowerDoubleLeft
	lowerDoubleRight
)

// Working state for threading one segment.
type insertion struct {
	segnum int
	// Local copy with V0 as the upper endpoint
	s Segment
	// Segment sharing the lower endpoint
	bottomNeighbor int
	tlast          int
	// The lower endpoint was already in the structure
	tribot bool
}

// Add a segment to the trapezoidation, keeping the query structure in sync.
func (c *Context) addSegment(segnum int) {
	ins := insertion{segnum: segnum, s: c.segments[segnum]}
	s := &ins.s
	topNeighbor, bottomNeighbor := s.Prev, s.Next
	if c.eps.Above(s.V1, s.V0) { // Get higher vertex in V0
		s.V0, s.V1 = s.V1, s.V0
		s.Root0, s.Root1 = s.Root1, s.Root0
		topNeighbor, bottomNeighbor = bottomNeighbor, topNeighbor
	}
	ins.bottomNeighbor = bottomNeighbor

	var tfirst int
	if !c.segments[topNeighbor].IsInserted {
		tu := c.locateEndpoint(s.V0, s.V1, s.Root0)
		tfirst = c.splitAt(tu, s.V0, segnum)
	} else {
		// Get the topmost intersecting trapezoid
		tfirst = c.locateEndpoint(s.V0, s.V1, s.Root0)
	}

	if !c.segments[bottomNeighbor].IsInserted {
		tu := c.locateEndpoint(s.V1, s.V0, s.Root1)
		c.splitAt(tu, s.V1, segnum)
		ins.tlast = tu
	} else {
		// Get the lowermost intersecting trapezoid
		ins.tlast = c.locateEndpoint(s.V1, s.V0, s.Root1)
		ins.tribot = true
	}

	tfirstr, tlastr := c.threadSegment(&ins, tfirst)
	if tfirstr == 0 || tlastr == 0 {
		throw(ErrDegenerate, "segment %d crossed no trapezoids", segnum)
	}

	c.mergeTrapezoids(segnum, tfirst, ins.tlast, Left)
	c.mergeTrapezoids(segnum, tfirstr, tlastr, Right)

	c.segments[segnum].IsInserted = true
	if c.config.DebugChecks {
		c.CheckInvariants()
	}
}

// Split trapezoid tu horizontally at point. tu keeps the upper half; the new
// lower half is returned. The trapezoid's sink becomes a Y node over two new
// sinks.
func (c *Context) splitAt(tu int, point Point, segnum int) int {
	tl := c.newTrapezoid()
	upper, lower := c.trap(tu), c.trap(tl)
	*lower = *upper
	upper.Lo = point
	lower.Hi = point
	upper.D0, upper.D1 = tl, 0
	lower.U0, lower.U1 = tu, 0

	// The lower neighbors now hang off the lower half
	for _, d := range [2]int{lower.D0, lower.D1} {
		if d <= 0 {
			continue
		}
		below := c.trap(d)
		if below.U0 == tu {
			below.U0 = tl
		}
		if below.U1 == tu {
			below.U1 = tl
		}
	}

	sk := upper.Sink
	upperSink := c.newNode(SinkNode, sk)
	lowerSink := c.newNode(SinkNode, sk)
	node := c.nodes.at(sk)
	node.Kind = YNode
	node.YVal = point
	node.Segment = segnum
	node.Left = lowerSink
	node.Right = upperSink

	c.nodes.at(upperSink).Trapezoid = tu
	c.nodes.at(lowerSink).Trapezoid = tl
	upper.Sink = upperSink
	lower.Sink = lowerSink
	return tl
}

// Split every trapezoid crossed by the segment, from the top down, and return
// the first and last of the new right-hand trapezoids.
func (c *Context) threadSegment(ins *insertion, tfirst int) (tfirstr, tlastr int) {
	t := tfirst
	for t > 0 && c.eps.AboveOrAt(c.trap(t).Lo, c.trap(ins.tlast).Lo) {
		sk := c.trap(t).Sink
		leftSink := c.newNode(SinkNode, sk)
		rightSink := c.newNode(SinkNode, sk)
		node := c.nodes.at(sk)
		node.Kind = XNode
		node.Segment = ins.segnum
		node.Left = leftSink
		node.Right = rightSink

		// Left trapezoid (use existing one), right trapezoid (allocate new)
		c.nodes.at(leftSink).Trapezoid = t
		tn := c.newTrapezoid()
		c.nodes.at(rightSink).Trapezoid = tn

		if t == tfirst {
			tfirstr = tn
		}
		if c.eps.Coincident(c.trap(t).Lo, c.trap(ins.tlast).Lo) {
			tlastr = tn
		}

		*c.trap(tn) = *c.trap(t)
		c.trap(t).Sink = leftSink
		c.trap(tn).Sink = rightSink

		next := c.splitBySegment(ins, t, tn)

		c.trap(t).RSeg = ins.segnum
		c.trap(tn).LSeg = ins.segnum
		t = next
	}
	return tfirstr, tlastr
}

// Relink the neighbors of t (now left of the segment) and its copy tn (right
// of the segment), and return the next trapezoid down the segment.
func (c *Context) splitBySegment(ins *insertion, t, tn int) int {
	tt := c.trap(t)
	switch tt.below() {
	case sideNone:
		throw(ErrDegenerate, "segment %d ran out of trapezoids at %s", ins.segnum, tt)
	case sideOne:
		c.linkAbove(t, tn, c.classifyAbove(ins, t))
		return c.linkBelow(ins, t, tn, c.classifySingleBelow(ins, t))
	}

	// Two trapezoids below; find out which one is intersected by the segment.
	// This only looks at geometry, so it is decided before any relinking.
	pattern := c.classifyDoubleBelow(ins, t)
	c.linkAbove(t, tn, c.classifyAbove(ins, t))
	return c.linkBelow(ins, t, tn, pattern)
}

func (c *Context) classifyAbove(ins *insertion, t int) upperPattern {
	tt := c.trap(t)
	if tt.U0 > 0 && tt.U1 > 0 {
		if tt.USave > 0 {
			if tt.USide == Left {
				return upperThreeSavedLeft
			}
			return upperThreeSavedRight
		}
		return upperContinuation
	}

	if tt.U0 <= 0 {
		throw(ErrDegenerate, "segment %d enters %s from nowhere", ins.segnum, tt)
	}
	up := c.trap(tt.U0)
	if up.D0 > 0 && up.D1 > 0 {
		rseg := c.trap(up.D0).RSeg
		if rseg > 0 && !c.eps.IsLeftOf(&c.segments[rseg], ins.s.V1) {
			return upperCuspRight
		}
		return upperCuspLeft
	}
	return upperFresh
}

func (c *Context) linkAbove(t, tn int, pattern upperPattern) {
	tt, tnt := c.trap(t), c.trap(tn)
	switch pattern {
	case upperThreeSavedLeft:
		tnt.U0 = tt.U1
		tt.U1 = 0
		tnt.U1 = tt.USave

		c.trap(tt.U0).D0 = t
		c.trap(tnt.U0).D0 = tn
		c.trap(tnt.U1).D0 = tn
		tt.USave, tnt.USave = 0, 0

	case upperThreeSavedRight:
		tnt.U1 = 0
		tnt.U0 = tt.U1
		tt.U1 = tt.U0
		tt.U0 = tt.USave

		c.trap(tt.U0).D0 = t
		c.trap(tt.U1).D0 = t
		c.trap(tnt.U0).D0 = tn
		tt.USave, tnt.USave = 0, 0

	case upperContinuation:
		tnt.U0 = tt.U1
		tt.U1, tnt.U1 = 0, 0
		c.trap(tnt.U0).D0 = tn

	case upperCuspRight:
		tt.U0, tt.U1, tnt.U1 = 0, 0, 0
		c.trap(tnt.U0).D1 = tn

	case upperCuspLeft:
		tnt.U0, tnt.U1, tt.U1 = 0, 0, 0
		c.trap(tt.U0).D0 = t

	case upperFresh:
		c.trap(tt.U0).D0 = t
		c.trap(tt.U0).D1 = tn
	}
}

// Does the segment end at an already inserted vertex at the bottom of t?
func (c *Context) endsAt(ins *insertion, t int) bool {
	return ins.tribot && c.eps.Coincident(c.trap(t).Lo, c.trap(ins.tlast).Lo)
}

func (c *Context) classifySingleBelow(ins *insertion, t int) lowerPattern {
	if !c.endsAt(ins, t) {
		return lowerSingle
	}
	// Bottom forms a triangle; the other edge at the bottom vertex decides which
	// side is closed off.
	other := ins.bottomNeighbor
	if other > 0 && c.eps.IsLeftOf(&c.segments[other], ins.s.V0) {
		return lowerTriangleLeft
	}
	return lowerTriangleRight
}

func (c *Context) classifyDoubleBelow(ins *insertion, t int) lowerPattern {
	if c.endsAt(ins, t) {
		return lowerDoubleTriangle
	}
	tt := c.trap(t)
	s := &ins.s
	var intersectsLeft bool
	if c.eps.Equal(tt.Lo.Y, s.V0.Y) {
		intersectsLeft = tt.Lo.X > s.V0.X
	} else {
		// Where the segment crosses the bottom of t
		y := tt.Lo.Y
		x := s.V0.X + (y-s.V0.Y)/(s.V1.Y-s.V0.Y)*(s.V1.X-s.V0.X)
		intersectsLeft = c.eps.Below(Point{X: x, Y: y}, tt.Lo)
	}
	if intersectsLeft {
		return lowerDoubleLeft
	}
	return lowerDoubleRight
}

func (c *Context) linkBelow(ins *insertion, t, tn int, pattern lowerPattern) int {
	tt, tnt := c.trap(t), c.trap(tn)
	// For a single neighbor below, it may be in either slot.
	single := func(tr *Trapezoid) int {
		if tr.D0 > 0 {
			return tr.D0
		}
		return tr.D1
	}

	switch pattern {
	case lowerTriangleLeft:
		// L-R downward cusp
		next := single(tt)
		c.trap(next).U0 = t
		tnt.D0, tnt.D1 = 0, 0
		return next

	case lowerTriangleRight:
		// R-L downward cusp
		c.trap(single(tnt)).U1 = tn
		tt.D0, tt.D1 = 0, 0
		return 0

	case lowerSingle:
		next := single(tt)
		below := c.trap(next)
		if below.U0 > 0 && below.U1 > 0 {
			// The segment passes between two upper neighbors of the trapezoid
			// below; park the one that is not t until the split reaches it.
			if below.U0 == t {
				below.USave = below.U1
				below.USide = Left
			} else {
				below.USave = below.U0
				below.USide = Right
			}
		}
		below.U0 = t
		below.U1 = tn
		return next

	case lowerDoubleTriangle:
		// This case arises only at the lowest trapezoid, when the lower
		// endpoint of the segment is already inserted in the structure
		d0, d1 := c.trap(tt.D0), c.trap(tt.D1)
		d0.U0, d0.U1 = t, 0
		d1.U0, d1.U1 = tn, 0
		tnt.D0 = tt.D1
		tt.D1, tnt.D1 = 0, 0
		return 0

	case lowerDoubleLeft:
		d0, d1 := c.trap(tt.D0), c.trap(tt.D1)
		d0.U0, d0.U1 = t, tn
		d1.U0, d1.U1 = tn, 0
		tt.D1 = 0
		return tt.D0

	case lowerDoubleRight:
		d0, d1 := c.trap(tt.D0), c.trap(tt.D1)
		d0.U0, d0.U1 = t, 0
		d1.U0, d1.U1 = t, tn
		tnt.D0, tnt.D1 = tt.D1, 0
		return tt.D1
	}
	throw(ErrInvariant, "unknown lower pattern %d", pattern)
	return 0
}

// Merge the trapezoids on one side of a freshly threaded segment that are
// bounded by the same pair of segments. The upper trapezoid of each merged
// pair survives; the lower one is invalidated and its sink is replaced by the
// survivor's sink in the (single) parent X node.
func (c *Context) mergeTrapezoids(segnum, tfirst, tlast int, side XDirection) {
	boundedBy := func(id int) bool {
		if id <= 0 {
			return false
		}
		if side == Left {
			return c.trap(id).RSeg == segnum
		}
		return c.trap(id).LSeg == segnum
	}

	t := tfirst
	for t > 0 && c.eps.AboveOrAt(c.trap(t).Lo, c.trap(tlast).Lo) {
		tt := c.trap(t)
		tnext := tt.D0
		cond := boundedBy(tnext)
		if !cond {
			tnext = tt.D1
			cond = boundedBy(tnext)
		}

		if !cond {
			t = tnext
			continue
		}
		next := c.trap(tnext)
		if tt.LSeg != next.LSeg || tt.RSeg != next.RSeg {
			t = tnext
			continue
		}

		// Good neighbours; merge them, using the upper one as the survivor
		parent := c.nodes.at(c.nodes.at(next.Sink).Parent)
		if parent.Left == next.Sink {
			parent.Left = tt.Sink
		} else {
			parent.Right = tt.Sink
		}

		// Change the upper neighbours of the lower trapezoids
		tt.D0 = next.D0
		tt.D1 = next.D1
		for _, d := range [2]int{tt.D0, tt.D1} {
			if d <= 0 {
				continue
			}
			below := c.trap(d)
			if below.U0 == tnext {
				below.U0 = t
			} else if below.U1 == tnext {
				below.U1 = t
			}
		}

		tt.Lo = next.Lo
		next.State = Invalid
	}
}
