package internal

// Facilities for converting the monotone chains into triangles. A Y monotone
// polygon is a simple polygon such that any horizontal line intersects at most
// two edges.
//
// The lexicographic Above() and Below() comparisons simulate a slightly rotated
// coordinate system that eliminates horizontal segments. Since this convention
// is consistent with the assumptions used in trapezoidation, horizontal edges
// need no special treatment here.
//
// Chains run anticlockwise, which every emitted triangle inherits.

// Triangulate every monotone polygon left by the decomposition.
func (c *Context) triangulateMonotonePolygons(nmonpoly int) {
	for i := 0; i < nmonpoly; i++ {
		c.triangulateMonotone(c.monotones[i])
	}
}

func (c *Context) triangulateMonotone(start int) {
	first := c.chain.at(start)
	vfirst := first.vnum
	ymax, ymin := c.vertices[vfirst].pt, c.vertices[vfirst].pt
	posmax := start
	vcount := 1
	first.marked = true

	// Walk the chain once to find the top vertex. Running into a marked element
	// means this chain was already emitted under another id.
	p := first.next
	for v := c.chain.at(p).vnum; v != vfirst; v = c.chain.at(p).vnum {
		e := c.chain.at(p)
		if e.marked {
			return
		}
		e.marked = true
		pt := c.vertices[v].pt
		if c.eps.Above(pt, ymax) {
			ymax = pt
			posmax = p
		}
		if c.eps.Below(pt, ymin) {
			ymin = pt
		}
		p = e.next
		vcount++
	}

	if vcount == 3 {
		e := c.chain.at(p)
		c.emit(e.vnum, c.chain.at(e.next).vnum, c.chain.at(e.prev).vnum)
		return
	}

	top := c.chain.at(posmax)
	if c.eps.Coincident(c.vertices[c.chain.at(top.next).vnum].pt, ymin) {
		// The left chain is a single edge
		second := c.chain.at(top.next).next
		c.triangulateSingleSided(
			[]int{c.chain.at(top.next).vnum, c.chain.at(second).vnum},
			c.chain.at(second).next,
			top.vnum,
			vcount,
		)
		return
	}
	if c.eps.Coincident(c.vertices[c.chain.at(top.prev).vnum].pt, ymin) {
		// The right chain is a single edge
		c.triangulateSingleSided(
			[]int{top.vnum, c.chain.at(top.next).vnum},
			c.chain.at(top.next).next,
			c.chain.at(top.prev).vnum,
			vcount,
		)
		return
	}

	ids := make([]int, 0, vcount)
	ids = append(ids, top.vnum)
	for q := top.next; q != posmax; q = c.chain.at(q).next {
		ids = append(ids, c.chain.at(q).vnum)
	}
	c.triangulateTwoSided(ids)
}

// Triangulate a monotone polygon with one side a single edge. The other side is
// scanned from the top of the polygon down, starting at chain position vpos,
// keeping a reflex chain: each new vertex either cuts off ears from the end of
// the reflex chain or is pushed onto it. endv is the last vertex to scan.
func (c *Context) triangulateSingleSided(rc []int, vpos, endv, vcount int) {
	v := c.chain.at(vpos).vnum
	for steps := 0; v != endv || len(rc) > 2; steps++ {
		if steps > 2*vcount {
			throw(ErrDegenerate, "reflex chain scan did not reach vertex %d", endv)
		}
		ri := len(rc) - 1
		if ri > 0 && (v == endv || cross(c.vertices[v].pt, c.vertices[rc[ri-1]].pt, c.vertices[rc[ri]].pt) > 0) {
			c.emit(rc[ri-1], rc[ri], v)
			rc = rc[:ri]
			continue
		}
		rc = append(rc, v)
		vpos = c.chain.at(vpos).next
		v = c.chain.at(vpos).vnum
	}
	// Reached the bottom vertex. Add in the triangle formed
	ri := len(rc) - 1
	c.emit(rc[ri-1], rc[ri], v)
}

// General monotone triangulation for a polygon given as anticlockwise vertex
// ids starting from its top vertex. The vertices are merged from both chains in
// top to bottom order and swept with a stack.
//
// Pieces cut from a trapezoidation always have a single edge on one side, so
// the pipeline only lands here if that stops holding. It is a fallback, not a
// path normal input takes.
func (c *Context) triangulateTwoSided(ids []int) {
	n := len(ids)
	pt := func(v int) Point { return c.vertices[v].pt }

	sortedPoints := make([]int, 0, n)
	sortedPoints = append(sortedPoints, ids[0])

	// Structure for determining which chain a point is on
	leftChain := make(map[int]struct{})
	isLeft := func(v int) bool {
		_, ok := leftChain[v]
		return ok
	}

	// Merge sort points starting from top, noting which are on the left chain,
	// and track the bottom point separately
	leftOffset, rightOffset := 1, 1
	var bottomPoint int
	for {
		leftPoint := ids[CircularIndex(leftOffset, n)]
		rightPoint := ids[CircularIndex(-rightOffset, n)]

		// If we've met up, we're done. The bottom point is handled at the very end.
		if leftPoint == rightPoint {
			bottomPoint = leftPoint
			break
		}

		if c.eps.Above(pt(leftPoint), pt(rightPoint)) {
			leftChain[leftPoint] = struct{}{}
			sortedPoints = append(sortedPoints, leftPoint)
			leftOffset++
		} else {
			sortedPoints = append(sortedPoints, rightPoint)
			rightOffset++
		}
	}

	stack := make(PointStack, 0, n)
	stack.Push(sortedPoints[0])
	stack.Push(sortedPoints[1])
	for i := 2; i < len(sortedPoints); i++ {
		p := sortedPoints[i]
		left := isLeft(p)
		if left != isLeft(stack.Peek()) { // Switched to the opposite chain
			// Monotonicity guarantees that every stacked point is visible from the
			// current one, so the whole stack can be emptied into triangles
			for !stack.Empty() {
				a := stack.Pop()
				if stack.Empty() {
					break
				}
				b := stack.Peek()
				if left {
					c.emit(p, a, b)
				} else {
					c.emit(a, p, b)
				}
			}
			stack.Push(sortedPoints[i-1])
			stack.Push(p)
			continue
		}

		// Same chain. Always pop the last point off; if no triangles get made, it
		// goes back
		v := stack.Pop()
		for !stack.Empty() {
			top := stack.Peek()
			a, b, d := p, top, v
			if !left {
				a, b, d = p, v, top
			}
			// p sees the top of the stack if the candidate triangle is anticlockwise
			if TriangleSignedArea(pt(a), pt(b), pt(d)) <= 0 {
				break
			}
			v = stack.Pop()
			c.emit(a, b, d)
		}
		stack.Push(v)
		stack.Push(p)
	}

	// Fan the remaining stack out to the bottom point
	l := stack.Pop()
	for !stack.Empty() {
		p := stack.Pop()
		if isLeft(l) {
			c.emit(bottomPoint, p, l)
		} else {
			c.emit(bottomPoint, l, p)
		}
		l = p
	}
}

// This is pulled out so that it's easy to add instrumentation.
func (c *Context) emit(a, b, d int) {
	if c.config.DebugChecks {
		area := TriangleSignedArea(c.vertices[a].pt, c.vertices[b].pt, c.vertices[d].pt)
		if area < -float64(c.eps) {
			throw(ErrInvariant, "triangle is clockwise: %d %d %d", a, b, d)
		}
	}
	c.triangles = append(c.triangles, Triangle{a, b, d})
}
