package core

import "math/rand/v2"

// FieldKey identifies the parameters a generated field depends on.
type FieldKey struct {
	Count int
	LOD   bool
}

// Field is one generated grass layout. It is never modified after creation;
// a configuration change produces a new Field.
type Field struct {
	Key        FieldKey
	Transforms []float32
	Bounds     Sphere
	Generation uint64
}

func (f *Field) Count() int {
	if f == nil {
		return 0
	}
	return InstanceCount(f.Transforms)
}

// FieldCache memoizes the field on its key. It is meant for a single owner on
// the render thread and does no locking.
type FieldCache struct {
	src        RandomSource
	current    *Field
	generation uint64
}

// NewFieldCache creates a cache drawing from src; nil means unseeded.
func NewFieldCache(src RandomSource) *FieldCache {
	return &FieldCache{src: src}
}

// NewSeededFieldCache is a convenience for reproducible layouts.
func NewSeededFieldCache(seed uint64) *FieldCache {
	return NewFieldCache(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Get returns the field for cfg, regenerating it only when the key differs
// from the cached one. The bool result reports whether a new field was built.
func (c *FieldCache) Get(cfg RenderConfig) (*Field, bool) {
	key := cfg.FieldKey()
	if c.current != nil && c.current.Key == key {
		return c.current, false
	}

	rangeX, rangeZ := cfg.FieldRange()
	c.generation++
	c.current = &Field{
		Key:        key,
		Transforms: GenerateField(key.Count, rangeX, rangeZ, c.src),
		Bounds:     FieldBounds(rangeX, rangeZ),
		Generation: c.generation,
	}
	return c.current, true
}

// Current returns the last generated field, or nil.
func (c *FieldCache) Current() *Field {
	return c.current
}

// Invalidate drops the cached field so the next Get regenerates.
func (c *FieldCache) Invalidate() {
	c.current = nil
}
