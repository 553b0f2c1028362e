package multifinder

// Random is a Go implementation of java.util.Random, which drives structure
// placement. Not safe for concurrent use.
type Random struct {
	seed int64
}

const (
	magic    = 0x5DEECE66D
	seedMask = (1 << 48) - 1
)

func NewRandom(seed int64) Random {
	return Random{mixSeed(seed)}
}

func mixSeed(seed int64) int64 {
	return (seed ^ magic) & seedMask
}

func (r *Random) SetSeed(seed int64) {
	r.seed = mixSeed(seed)
}

func (r *Random) Next(bits int) int32 {
	r.seed = (r.seed*magic + 0xB) & seedMask
	return int32(r.seed >> (48 - bits))
}

func (r *Random) NextInt(n int32) int32 {
	if n&-n == n {
		return int32((int64(n) * int64(r.Next(31))) >> 31)
	}

	var bits, val int32
	for {
		bits = r.Next(31)
		val = bits % n
		// Rejects the top partial bucket; the sum overflows int32 there.
		if bits-val+(n-1) >= 0 {
			return val
		}
	}
}

// LayerRand is the per-layer generator of the 1.12 biome layer stack.
// Layer seeds are mixed with a 64 bit LCG whose low bits are poor; the cheap
// swamp checks in the search rely on exactly this weakness, so it must not be
// replaced with a better generator.
type LayerRand struct {
	layerSeed int64
	worldSeed int64
	chunkSeed int64
}

const (
	lcgMul = 6364136223846793005
	lcgAdd = 1442695040888963407
)

func lcgStep(s, salt int64) int64 {
	s *= s*lcgMul + lcgAdd
	return s + salt
}

// NewLayerRand returns the generator of the layer with the given salt
// (200 is the 1:256 biome layer).
func NewLayerRand(salt int64) LayerRand {
	s := salt
	s = lcgStep(s, salt)
	s = lcgStep(s, salt)
	s = lcgStep(s, salt)
	return LayerRand{layerSeed: s}
}

func (l *LayerRand) SetWorldSeed(seed int64) {
	s := seed
	s = lcgStep(s, l.layerSeed)
	s = lcgStep(s, l.layerSeed)
	s = lcgStep(s, l.layerSeed)
	l.worldSeed = s
}

func (l *LayerRand) SetChunkSeed(x, z int64) {
	s := l.worldSeed
	s = lcgStep(s, x)
	s = lcgStep(s, z)
	s = lcgStep(s, x)
	s = lcgStep(s, z)
	l.chunkSeed = s
}

func (l *LayerRand) NextInt(n int) int {
	ret := int((l.chunkSeed >> 24) % int64(n))
	if ret < 0 {
		ret += n
	}
	l.chunkSeed = lcgStep(l.chunkSeed, l.worldSeed)
	return ret
}
