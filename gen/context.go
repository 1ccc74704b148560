package gen

import (
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"
)

// A Context carries the collaborators a generator needs at Init: the logger
// and the seed from which all random streams are derived.
type Context struct {
	lock       sync.Mutex
	seed       uint64
	nextStream uint64
	logger     *zap.Logger
}

// ContextBuilder builds Contexts.
type ContextBuilder struct {
	seed   uint64
	seeded bool
	logger *zap.Logger
}

// MakeContextBuilder returns a builder for a context with a random seed and a
// no-op logger.
func MakeContextBuilder() ContextBuilder {
	return ContextBuilder{}
}

// WithSeed fixes the seed, which makes all random generators initialized with
// the context reproducible.
func (b ContextBuilder) WithSeed(seed uint64) ContextBuilder {
	b.seed = seed
	b.seeded = true

	return b
}

// WithLogger sets the logger handed to the generators.
func (b ContextBuilder) WithLogger(logger *zap.Logger) ContextBuilder {
	b.logger = logger
	return b
}

// Build creates the context.
func (b ContextBuilder) Build() *Context {
	ctx := &Context{
		seed:   b.seed,
		logger: b.logger,
	}

	if !b.seeded {
		ctx.seed = rand.Uint64()
	}

	if ctx.logger == nil {
		ctx.logger = zap.NewNop()
	}

	return ctx
}

// NewContext creates a context with a random seed and a no-op logger.
func NewContext() *Context {
	return MakeContextBuilder().Build()
}

// Seed returns the seed of the context.
func (c *Context) Seed() uint64 {
	return c.seed
}

// Logger returns the logger of the context.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// NewRandom hands out a new random stream. Streams are derived from the seed
// in the order they are requested, so the same generator tree initialized
// with equally seeded contexts draws the same numbers.
func (c *Context) NewRandom() *Random {
	c.lock.Lock()
	stream := c.nextStream
	c.nextStream++
	c.lock.Unlock()

	return newRandom(c.seed, splitMix(stream))
}

// A Random is a reseedable random stream.
type Random struct {
	*rand.Rand

	src    *rand.PCG
	s1, s2 uint64
}

func newRandom(s1, s2 uint64) *Random {
	src := rand.NewPCG(s1, s2)

	return &Random{
		Rand: rand.New(src),
		src:  src,
		s1:   s1,
		s2:   s2,
	}
}

// NewSeededRandom creates a stand-alone random stream.
func NewSeededRandom(seed uint64) *Random {
	return newRandom(seed, splitMix(seed))
}

// Rewind moves the stream back to its first number.
func (r *Random) Rewind() {
	r.src.Seed(r.s1, r.s2)
}

// Int64Between returns a uniformly distributed number in [min, max].
func (r *Random) Int64Between(min, max int64) int64 {
	if max <= min {
		return min
	}

	return min + r.Int64N(max-min+1)
}

func splitMix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}
