package multifinder

// Layer selects a stage of the biome layer stack.
type Layer int

const (
	// LayerBiome256 is the biome layer at 1:256 scale.
	LayerBiome256 Layer = iota
	// LayerShore16 is the shore layer at 1:16 scale.
	LayerShore16
	// LayerFull is the final 1:1 voronoi layer.
	LayerFull
)

// BiomeLayerSalt seeds the LayerRand that mirrors LayerBiome256.
const BiomeLayerSalt = 200

// Generator is a biome generator. Implementations are stateful and not safe
// for concurrent use; every search worker owns its own instance.
type Generator interface {
	// SeedLayer seeds layer and its parents only. Cheaper than ApplySeed
	// when only a coarse layer is sampled.
	SeedLayer(layer Layer, seed int64)
	// ApplySeed seeds the whole stack.
	ApplySeed(seed int64)
	// GenArea fills dst (reallocating it if too small) with the biome ids of
	// the w*h cells at x, z in layer coordinates, row by row.
	GenArea(layer Layer, dst []int, x, z, w, h int) []int
	// Spawn returns the world spawn block position. The stack must have
	// been seeded with ApplySeed(seed).
	Spawn(seed int64) Pos
	ViableMonument(x, z int32) bool
	ViableMansion(x, z int32) bool
	Close()
}

// GeneratorFactory creates a Generator for a new worker.
type GeneratorFactory func() (Generator, error)
