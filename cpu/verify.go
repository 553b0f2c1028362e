package cpu

import "github.com/vktec/multifinder"

const (
	// The 1:16 window around spawn: spawn may land anywhere in a 256x256
	// area, plus a cell on each side for the neighbours that blend into it.
	spawnWindow = 18
	spawnCells  = spawnWindow * spawnWindow

	maxExcludeFraction = 0.80
)

// verify runs the enabled auxiliary checks in order of cost. The stack must
// already be seeded with seed.
func (w *worker) verify(o *offset, seed int64, mons *Monuments) Verdict {
	if w.opts.MonumentsEnabled() && !w.verifyMonuments(o, mons) {
		return Reject
	}
	if w.opts.MansionsEnabled() && !w.hasMansions(seed) {
		return Reject
	}
	if w.opts.SpawnEnabled() && !w.hasSpawnBiome(seed) {
		return Reject
	}
	return Accept
}

// verifyMonuments moves the origin relative monuments to the offset and
// accepts if any of them can generate.
func (w *worker) verifyMonuments(o *offset, mons *Monuments) bool {
	for i := 0; i < mons.Len(); i++ {
		p := mons.At(i)
		x := p.X + o.rX*multifinder.HutRegionSize
		z := p.Z + o.rZ*multifinder.HutRegionSize
		if w.gen.ViableMonument(x, z) {
			return true
		}
	}
	return false
}

func (w *worker) hasMansions(seed int64) bool {
	r := int32(w.opts.MansionRadius)
	count := 0
	for rZ := -r; rZ < r; rZ++ {
		for rX := -r; rX < r; rX++ {
			p := multifinder.MansionPos(seed, rX, rZ)
			if w.gen.ViableMansion(p.X, p.Z) {
				count++
				if count >= w.opts.WoodlandMansions {
					return true
				}
			}
		}
	}
	return false
}

func (w *worker) hasSpawnBiome(seed int64) bool {
	spawn := w.gen.Spawn(seed)
	x := int(spawn.X>>4) - spawnWindow/2
	z := int(spawn.Z>>4) - spawnWindow/2
	w.buf = w.gen.GenArea(multifinder.LayerShore16, w.buf, x, z, spawnWindow, spawnWindow)
	cfg := w.opts.Biomes
	return spawnFraction(w.buf[:spawnCells], cfg) >= cfg.Fraction()
}

// spawnFraction is the included share of the window once excluded biomes are
// discounted. The excluded share is capped so the ratio stays bounded.
func spawnFraction(biomes []int, cfg *multifinder.BiomeConfig) float64 {
	var include, exclude int
	for _, id := range biomes {
		switch cfg.Classify(id) {
		case multifinder.Include:
			include++
		case multifinder.Exclude:
			exclude++
		}
	}
	n := float64(len(biomes))
	inc := float64(include) / n
	exc := float64(exclude) / n
	if exc > maxExcludeFraction {
		exc = maxExcludeFraction
	}
	return inc / (1 - exc)
}
