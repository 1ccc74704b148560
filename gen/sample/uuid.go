package sample

import (
	"github.com/google/uuid"
	"github.com/sarchlab/datagen/gen"
)

// UUID generates random (version 4) UUID strings. The values are unique
// across instances, so UUID generators may run in parallel.
type UUID struct {
	gen.Base[string]
}

// NewUUID creates a UUID generator.
func NewUUID(name string) (*UUID, error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	return &UUID{Base: gen.MakeBase[string](name)}, nil
}

// Init makes the generator available.
func (g *UUID) Init(ctx *gen.Context) error {
	return g.InitBase(ctx)
}

// Generate yields a new UUID.
func (g *UUID) Generate() (gen.Product[string], bool) {
	if !g.Active() {
		return gen.Depleted[string]()
	}

	return g.Yield(uuid.NewString())
}

// Reset does nothing beside the lifecycle bookkeeping.
func (g *UUID) Reset() {
	g.ResetBase()
}

// Close closes the generator.
func (g *UUID) Close() {
	g.CloseBase()
}

// IsThreadSafe returns true.
func (g *UUID) IsThreadSafe() bool {
	return true
}

// IsParallelizable returns true.
func (g *UUID) IsParallelizable() bool {
	return true
}
