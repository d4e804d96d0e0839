// Package noise produces the pseudo-random samples that perturb body headings.
package noise

import (
	"math"
	"math/rand/v2"
	"time"
)

// seedMix decorrelates the second PCG stream word from the first.
const seedMix = 0x9e3779b97f4a7c15

// Generator draws uniform and normally distributed samples from a
// reseedable PCG source. It is not safe for concurrent use.
type Generator struct {
	src *rand.PCG
	rng *rand.Rand
}

// New creates a generator seeded with seed. A zero seed is replaced by the
// wall clock.
func New(seed uint64) *Generator {
	src := rand.NewPCG(0, 0)
	g := &Generator{
		src: src,
		rng: rand.New(src),
	}
	g.Reseed(seed)
	return g
}

// Reseed restarts the sequence. Zero picks a wall-clock seed.
func (g *Generator) Reseed(seed uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g.src.Seed(seed, seed^seedMix)
}

// Uniform returns a sample in [0, 1).
func (g *Generator) Uniform() float64 {
	return g.rng.Float64()
}

// openUniform returns a sample in (0, 1], never zero, so log() stays finite.
func (g *Generator) openUniform() float64 {
	return 1 - g.rng.Float64()
}

// Normal returns one sample of N(mean, stddev²) using the Box–Muller transform.
func (g *Generator) Normal(mean, stddev float64) float64 {
	u1 := g.openUniform()
	u2 := g.Uniform()
	z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z0
}
