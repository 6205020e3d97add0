package internal

// Node for the query structure. The query structure allows us to navigate the
// trapezoid set efficiently, and can be built in expected O(n log* n) time
// when the segments are inserted in random order.
//
// Query nodes are tagged: a node starts life as a sink and is converted in
// place into a Y node or X node when its trapezoid is split. Converting in
// place is what lets Segment.Root0/Root1 keep pointing at a useful subtree.

type NodeKind int

const (
	SinkNode NodeKind = iota
	YNode
	XNode
)

func (k NodeKind) String() string {
	switch k {
	case SinkNode:
		return "sink"
	case YNode:
		return "y"
	case XNode:
		return "x"
	}
	return "unknown"
}

type QueryNode struct {
	Kind NodeKind
	// Key segment of an X node.
	Segment int
	// Key point of a Y node.
	YVal Point
	// Trapezoid of a sink.
	Trapezoid int
	// The node this one was created under. Only reliable for sinks created
	// during the current insertion, which is all merging needs.
	Parent int
	// For Y nodes Left is below and Right is above.
	Left, Right int
}

// Traverse the structure from root to find the trapezoid containing point.
// aux is another point on the segment being located (or the point itself) and
// disambiguates points that are already in the structure: a point equal to a Y
// key goes the way aux goes, and a point on an X key's endpoint goes to the
// side aux lies on.
func (c *Context) locateEndpoint(point, aux Point, root int) int {
	node := c.nodes.at(root)
	for {
		switch node.Kind {
		case SinkNode:
			return node.Trapezoid

		case YNode:
			if c.eps.Above(point, node.YVal) {
				node = c.nodes.at(node.Right)
			} else if c.eps.Coincident(point, node.YVal) {
				// The point is already inserted
				if c.eps.Above(aux, node.YVal) {
					node = c.nodes.at(node.Right)
				} else {
					node = c.nodes.at(node.Left)
				}
			} else {
				node = c.nodes.at(node.Left)
			}

		case XNode:
			s := c.segments[node.Segment]
			var left bool
			if c.eps.Coincident(point, s.V0) || c.eps.Coincident(point, s.V1) {
				if c.eps.Equal(point.Y, aux.Y) { // Horizontal segment
					left = aux.X < point.X
				} else {
					left = c.eps.IsLeftOf(&s, aux)
				}
			} else {
				left = c.eps.IsLeftOf(&s, point)
			}
			if left {
				node = c.nodes.at(node.Left)
			} else {
				node = c.nodes.at(node.Right)
			}

		default:
			throw(ErrInvariant, "query node of kind %v", node.Kind)
		}
	}
}

// Build the query structure for the plane split by a single segment, and
// return the root node.
func (c *Context) initQueryStructure(segnum int) int {
	s := &c.segments[segnum]

	// We create the following trapezoid graph:
	/*
		         top
		------a--------------
		 left  \  right
		--------b------------
		       bottom

		Where a is the upper endpoint and b the lower one. top and bottom are
		unbounded; left and right are bounded by the segment on one side.
	*/

	root := c.nodes.alloc()
	c.nodes.at(root).Kind = YNode
	c.nodes.at(root).YVal = c.eps.Max(s.V0, s.V1)

	topSink := c.newNode(SinkNode, root)
	c.nodes.at(root).Right = topSink

	lower := c.newNode(YNode, root)
	c.nodes.at(lower).YVal = c.eps.Min(s.V0, s.V1)
	c.nodes.at(root).Left = lower

	bottomSink := c.newNode(SinkNode, lower)
	c.nodes.at(lower).Left = bottomSink

	xnode := c.newNode(XNode, lower)
	c.nodes.at(xnode).Segment = segnum
	c.nodes.at(lower).Right = xnode

	leftSink := c.newNode(SinkNode, xnode)
	c.nodes.at(xnode).Left = leftSink
	rightSink := c.newNode(SinkNode, xnode)
	c.nodes.at(xnode).Right = rightSink

	left := c.newTrapezoid()
	right := c.newTrapezoid()
	bottom := c.newTrapezoid()
	top := c.newTrapezoid()

	hi := c.nodes.at(root).YVal
	lo := c.nodes.at(lower).YVal

	tl, tr, tb, tt := c.trap(left), c.trap(right), c.trap(bottom), c.trap(top)
	tl.Hi, tr.Hi, tt.Lo = hi, hi, hi
	tl.Lo, tr.Lo, tb.Hi = lo, lo, lo
	tt.Hi = Point{X: infinity, Y: infinity}
	tb.Lo = Point{X: -infinity, Y: -infinity}
	tl.RSeg = segnum
	tr.LSeg = segnum
	tl.U0, tr.U0 = top, top
	tl.D0, tr.D0 = bottom, bottom
	tt.D0, tb.U0 = left, left
	tt.D1, tb.U1 = right, right

	tl.Sink = leftSink
	tr.Sink = rightSink
	tb.Sink = bottomSink
	tt.Sink = topSink

	c.nodes.at(topSink).Trapezoid = top
	c.nodes.at(bottomSink).Trapezoid = bottom
	c.nodes.at(leftSink).Trapezoid = left
	c.nodes.at(rightSink).Trapezoid = right

	s.IsInserted = true
	return root
}

func (c *Context) newNode(kind NodeKind, parent int) int {
	id := c.nodes.alloc()
	node := c.nodes.at(id)
	node.Kind = kind
	node.Parent = parent
	return id
}
