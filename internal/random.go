package internal

import (
	"math/rand"
	"time"
)

// Random insertion order for the segments. Any order gives a correct
// trapezoidation; a uniformly random one is what gives the expected
// O(n log* n) running time.
type segmentOrder struct {
	permutation []int
	next        int
}

// By default, this process is pseudorandom, but deterministic. This is because
// predictable results are easier to debug. However, this raises the potential
// for adversarial inputs. If you are using untrusted input, you should enable
// nondeterministic mode.
func newRand(config Config) *rand.Rand {
	seed := config.Seed
	if config.Nondeterministic {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Fill the order with a fresh permutation of 1..n.
func (o *segmentOrder) generate(n int, r *rand.Rand) {
	o.permutation = o.permutation[:0]
	for i := 1; i <= n; i++ {
		o.permutation = append(o.permutation, i)
	}
	r.Shuffle(n, func(i, j int) {
		o.permutation[i], o.permutation[j] = o.permutation[j], o.permutation[i]
	})
	o.next = 0
}

func (o *segmentOrder) choose() int {
	if o.next >= len(o.permutation) {
		throw(ErrInvariant, "segment order exhausted after %d segments", len(o.permutation))
	}
	id := o.permutation[o.next]
	o.next++
	return id
}
