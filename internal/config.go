package internal

// Tunables for a triangulation context.
type Config struct {
	// Tolerance for all coordinate comparisons.
	Epsilon Epsilon
	// Seed for the segment insertion order. Ignored when Nondeterministic is set.
	Seed             int64
	Nondeterministic bool
	// Trapezoid and chain arenas hold CapacityFactor*n+capacitySlack entries;
	// the query structure holds twice that.
	CapacityFactor int
	// Verify the trapezoid graph and query structure after every insertion.
	DebugChecks bool
}

const (
	DefaultCapacityFactor = 8
	capacitySlack         = 16
	// Each vertex can sit on at most this many monotone chains.
	maxVertexChains = 4
)

func DefaultConfig() Config {
	return Config{
		Epsilon:        DefaultEpsilon,
		CapacityFactor: DefaultCapacityFactor,
	}
}

func (c Config) trapezoidCapacity(n int) int {
	factor := c.CapacityFactor
	if factor <= 0 {
		factor = DefaultCapacityFactor
	}
	return factor*n + capacitySlack
}

func (c Config) nodeCapacity(n int) int {
	return 2 * c.trapezoidCapacity(n)
}
