package multifinder

// Pos is a block (or chunk, where noted) position.
type Pos struct {
	X, Z int32
}

const (
	regionSalt    = 341873128712
	regionSaltZ   = 132897987541
	witchHutSalt  = 14357617
	monumentSalt  = 10387313
	mansionSalt   = 10387319
	HutRegionSize = 32 * 16
	mansionRegion = 80
)

func regionSeed(seed int64, regionX, regionZ int64, salt int64) int64 {
	return regionX*regionSalt + regionZ*regionSaltZ + seed + salt
}

// MoveTemple translates a base seed so that the structure layout it has in
// region (0, 0) appears in region (regionX, regionZ) instead.
func MoveTemple(base int64, regionX, regionZ int32) int64 {
	return (base - int64(regionX)*regionSalt - int64(regionZ)*regionSaltZ) & seedMask
}

// WitchHutChunk returns the chunk offset of the hut within its 32x32 chunk region.
func WitchHutChunk(seed int64, regionX, regionZ int32) Pos {
	r := NewRandom(regionSeed(seed, int64(regionX), int64(regionZ), witchHutSalt))
	x := r.NextInt(24)
	z := r.NextInt(24)
	return Pos{x, z}
}

// WitchHutPos returns the block position of the witch hut attempt in the region.
func WitchHutPos(seed int64, regionX, regionZ int32) Pos {
	c := WitchHutChunk(seed, regionX, regionZ)
	return Pos{
		regionX*HutRegionSize + c.X<<4 + 8,
		regionZ*HutRegionSize + c.Z<<4 + 8,
	}
}

// MonumentChunk returns the region-relative chunk of the ocean monument
// attempt in the region. Monuments use a triangular distribution over 0..26.
func MonumentChunk(seed int64, regionX, regionZ int32) Pos {
	r := NewRandom(regionSeed(seed, int64(regionX), int64(regionZ), monumentSalt))
	x := r.NextInt(27) + r.NextInt(27)
	z := r.NextInt(27) + r.NextInt(27)
	return Pos{x >> 1, z >> 1}
}

// MansionPos returns the block position of the woodland mansion attempt in
// the 80x80 chunk region.
func MansionPos(seed int64, regionX, regionZ int32) Pos {
	r := NewRandom(regionSeed(seed, int64(regionX), int64(regionZ), mansionSalt))
	x := r.NextInt(60) + r.NextInt(60)
	z := r.NextInt(60) + r.NextInt(60)
	return Pos{
		(regionX*mansionRegion + x>>1)*16 + 8,
		(regionZ*mansionRegion + z>>1)*16 + 8,
	}
}

// InQuadCorner reports whether the region-relative chunk c of region
// (regionX, regionZ), with both in {0, 1}, lies within distance chunks of the
// corner shared by the four regions of a quad.
func InQuadCorner(c Pos, regionX, regionZ int32, distance int) bool {
	upper := int32(23 - distance)
	lower := int32(distance)
	near := func(v, region int32) bool {
		if region == 0 {
			return v >= upper
		}
		return v <= lower
	}
	return near(c.X, regionX) && near(c.Z, regionZ)
}
