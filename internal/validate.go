package internal

// Structural checks over the trapezoid graph and query structure. These are
// too slow to run on every insertion in normal use, but catch linking mistakes
// right where they happen when DebugChecks is on.

// Check the neighbor links between valid trapezoids are mutual, and that the
// sinks reachable from the root correspond one to one with valid trapezoids.
// A sink reached through the upper child of a Y node must reach at least as
// high as its y value, and one through the lower child at least as low. Any
// violation is thrown as ErrInvariant.
func (c *Context) CheckInvariants() {
	for id := 1; id <= c.trapezoids.len(); id++ {
		t := c.trap(id)
		if t.State != Valid {
			continue
		}
		if c.eps.Below(t.Hi, t.Lo) {
			throw(ErrInvariant, "trapezoid %d is upside down: %v below %v", id, t.Hi, t.Lo)
		}
		for _, u := range [2]int{t.U0, t.U1} {
			if u <= 0 {
				continue
			}
			up := c.trap(u)
			if up.State != Valid {
				throw(ErrInvariant, "trapezoid %d has invalid neighbor %d above", id, u)
			}
			if up.D0 != id && up.D1 != id {
				throw(ErrInvariant, "trapezoid %d lists %d above, but not the reverse", id, u)
			}
		}
		for _, d := range [2]int{t.D0, t.D1} {
			if d <= 0 {
				continue
			}
			down := c.trap(d)
			if down.State != Valid {
				throw(ErrInvariant, "trapezoid %d has invalid neighbor %d below", id, d)
			}
			if down.U0 != id && down.U1 != id {
				throw(ErrInvariant, "trapezoid %d lists %d below, but not the reverse", id, d)
			}
		}
		if sink := c.nodes.at(t.Sink); sink.Kind != SinkNode || sink.Trapezoid != id {
			throw(ErrInvariant, "trapezoid %d has sink %d pointing elsewhere", id, t.Sink)
		}
	}

	// Every reachable sink names a distinct valid trapezoid. Each path carries
	// the y range its Y nodes have narrowed it to.
	type step struct {
		id    int
		above Point // lowest point the path has gone above
		below Point // highest point the path has gone below
	}
	seen := make(map[int]int)
	visited := make(map[int]bool)
	stack := []step{{
		id:    c.root,
		above: Point{X: -infinity, Y: -infinity},
		below: Point{X: infinity, Y: infinity},
	}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[s.id] {
			continue
		}
		visited[s.id] = true
		node := c.nodes.at(s.id)
		switch node.Kind {
		case SinkNode:
			t := c.trap(node.Trapezoid)
			if t.State != Valid {
				throw(ErrInvariant, "sink %d reaches invalid trapezoid %d", s.id, node.Trapezoid)
			}
			if other, ok := seen[node.Trapezoid]; ok {
				throw(ErrInvariant, "sinks %d and %d share trapezoid %d", other, s.id, node.Trapezoid)
			}
			if c.eps.Below(t.Hi, s.above) || c.eps.Above(t.Lo, s.below) {
				throw(ErrInvariant, "sink %d reaches trapezoid %d outside %v..%v", s.id, node.Trapezoid, s.above, s.below)
			}
			seen[node.Trapezoid] = s.id
		case YNode:
			if node.Left <= 0 || node.Right <= 0 {
				throw(ErrInvariant, "%v node %d is missing a child", node.Kind, s.id)
			}
			lower, upper := s, s
			lower.id, lower.below = node.Left, c.eps.Min(s.below, node.YVal)
			upper.id, upper.above = node.Right, c.eps.Max(s.above, node.YVal)
			stack = append(stack, lower, upper)
		case XNode:
			if node.Left <= 0 || node.Right <= 0 {
				throw(ErrInvariant, "%v node %d is missing a child", node.Kind, s.id)
			}
			left, right := s, s
			left.id, right.id = node.Left, node.Right
			stack = append(stack, left, right)
		}
	}

	for id := 1; id <= c.trapezoids.len(); id++ {
		if c.trap(id).State != Valid {
			continue
		}
		if _, ok := seen[id]; !ok {
			throw(ErrInvariant, "trapezoid %d is unreachable from the query root", id)
		}
	}
}
