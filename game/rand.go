package game

import "golang.org/x/exp/rand"

// Rand is a re-seedable generator keyed by a draw counter. Every draw is a
// pure function of (Seed, Draws), so copies of a state replay identically.
type Rand struct {
	Seed  uint64
	Draws uint64
}

func (r *Rand) next() *rand.Rand {
	src := &rand.PCGSource{}
	src.Seed(r.Seed ^ (r.Draws+1)*0x9e3779b97f4a7c15)
	r.Draws++
	return rand.New(src)
}

// Intn returns a value in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	return r.next().Intn(n)
}

// Roll returns a worker die value.
func (r *Rand) Roll() int {
	return 1 + r.Intn(6)
}

// Shuffle consumes a single draw.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}
	r.next().Shuffle(n, swap)
}
