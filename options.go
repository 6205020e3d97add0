package seidel

import "github.com/osuushi/seidel/internal"

// Option configures a Triangulator.
//
// Example:
//
//	// Same triangles on every run, with a different order than the default
//	triangles, err := seidel.Triangulate(points, seidel.WithSeed(42))
//
//	// Coordinates in the millions need a looser tolerance
//	triangles, err := seidel.Triangulate(points, seidel.WithEpsilon(1e-3))
type Option func(*internal.Config)

// WithSeed sets the seed for the random segment insertion order. The default
// seed is 0. The triangles produced for a polygon depend only on the seed.
func WithSeed(seed int64) Option {
	return func(c *internal.Config) {
		c.Seed = seed
	}
}

// WithNondeterministic seeds the insertion order from the clock on every
// call. Deterministic results are easier to debug, but a fixed seed lets an
// adversary craft inputs that hit the algorithm's worst case, so enable this
// for untrusted input.
func WithNondeterministic() Option {
	return func(c *internal.Config) {
		c.Nondeterministic = true
	}
}

// WithEpsilon sets the absolute tolerance for coordinate comparisons. The
// default is 1e-7, which suits coordinates of roughly unit scale. Values that
// are not positive are ignored.
func WithEpsilon(eps float64) Option {
	return func(c *internal.Config) {
		if eps > 0 {
			c.Epsilon = internal.Epsilon(eps)
		}
	}
}

// WithCapacityFactor sizes the trapezoid and chain tables at factor entries per
// vertex, and the query structure at twice that. The default of 8 leaves ample
// room for any simple polygon.
func WithCapacityFactor(factor int) Option {
	return func(c *internal.Config) {
		c.CapacityFactor = factor
	}
}

// WithDebugChecks verifies the trapezoid graph and query structure after every
// segment insertion, and the winding of every triangle. This is slow, and
// meant for tracking down failures on specific inputs.
func WithDebugChecks() Option {
	return func(c *internal.Config) {
		c.DebugChecks = true
	}
}
