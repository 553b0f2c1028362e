package cpu

import (
	"bufio"
	"strconv"

	"github.com/vktec/multifinder"
)

// Verdict is the outcome of one stage of the cascade.
type Verdict int

const (
	// Reject drops the current salt.
	Reject Verdict = iota
	// Accept passes the salt on to the next stage.
	Accept
	// Abort drops the rest of the salt sweep for the current offset.
	Abort
)

const (
	saltCount  = 0x10000
	probeFirst = 0x53
	probeLast  = 0x57

	// Period of the sparse swamp check while an offset has no quad yet.
	abortPeriod = 0x1000

	// mcNextInt(6) == 5 at the biome layer is the lush->swampland roll.
	swampRoll  = 6
	swampValue = 5
)

// worker owns everything a search goroutine mutates: the generator, the
// mirror of the 1:256 layer RNG, scratch buffers and the output writer.
type worker struct {
	id     int
	opts   *multifinder.Options
	gen    multifinder.Generator
	coarse multifinder.LayerRand
	out    *bufio.Writer
	buf    []int
	line   []byte
}

func newWorker(id int, opts *multifinder.Options, gen multifinder.Generator, out *bufio.Writer) *worker {
	return &worker{
		id:     id,
		opts:   opts,
		gen:    gen,
		coarse: multifinder.NewLayerRand(multifinder.BiomeLayerSalt),
		out:    out,
	}
}

// offset is a base seed moved so its quad sits at regions (rX..rX+1, rZ..rZ+1).
type offset struct {
	rX, rZ int32
	base   int64
	// 1:256 cell at the centre of the quad, minus one on each axis.
	areaX, areaZ int32
	huts         [4]multifinder.Pos
}

func newOffset(base int64, rX, rZ int32) offset {
	o := offset{
		rX:    rX,
		rZ:    rZ,
		base:  multifinder.MoveTemple(base, rX, rZ),
		areaX: rX<<1 + 1,
		areaZ: rZ<<1 + 1,
	}
	o.huts[0] = multifinder.WitchHutPos(o.base, rX, rZ)
	o.huts[1] = multifinder.WitchHutPos(o.base, rX, rZ+1)
	o.huts[2] = multifinder.WitchHutPos(o.base, rX+1, rZ)
	o.huts[3] = multifinder.WitchHutPos(o.base, rX+1, rZ+1)
	return o
}

func saltSeed(base, salt int64) int64 {
	return base + salt<<48
}

// swampRolled reports whether the biome layer, already seeded, rolls
// swampland at cell x, z.
func (w *worker) swampRolled(x, z int32) bool {
	w.coarse.SetChunkSeed(int64(x), int64(z))
	return w.coarse.NextInt(swampRoll) == swampValue
}

// plausible probes a handful of salts for the swamp roll south east of the
// quad centre. The layer RNG repeats with a period of about 3 in the high seed
// bits, so an offset that fails every probe rarely has any quad. Misses 8-9%
// of seeds for a 2x speedup.
func (w *worker) plausible(o *offset) bool {
	for salt := int64(probeFirst); salt <= probeLast; salt++ {
		w.coarse.SetWorldSeed(saltSeed(o.base, salt))
		if w.swampRolled(o.areaX+1, o.areaZ+1) {
			return true
		}
	}
	return false
}

// sparseSwamps runs every abortPeriod salts until the offset has a quad. It
// checks the three other cells around the quad centre and gives up on the
// offset when too few of them can roll swampland.
func (w *worker) sparseSwamps(o *offset, salt int64) Verdict {
	n := 0
	if w.swampRolled(o.areaX, o.areaZ+1) {
		n++
	}
	if w.swampRolled(o.areaX+1, o.areaZ) {
		n++
	}
	if w.swampRolled(o.areaX, o.areaZ) {
		n++
	}
	need := 1
	if salt > abortPeriod {
		need = 2
	}
	if n < need {
		return Abort
	}
	return Accept
}

// swampIndicator is the single cell roll. About a 2.75x pruning factor.
func (w *worker) swampIndicator(o *offset) Verdict {
	if !w.swampRolled(o.areaX+1, o.areaZ+1) {
		return Reject
	}
	return Accept
}

// coarseSwamp generates the real 1:256 biome at the cell. About 1.7x.
func (w *worker) coarseSwamp(o *offset, seed int64) Verdict {
	w.gen.SeedLayer(multifinder.LayerBiome256, seed)
	w.buf = w.gen.GenArea(multifinder.LayerBiome256, w.buf, int(o.areaX+1), int(o.areaZ+1), 1, 1)
	if w.buf[0] != multifinder.Swampland {
		return Reject
	}
	return Accept
}

// quadSwamp seeds the full stack and requires all four huts in swampland.
func (w *worker) quadSwamp(o *offset, seed int64) Verdict {
	w.gen.ApplySeed(seed)
	for _, p := range o.huts {
		w.buf = w.gen.GenArea(multifinder.LayerFull, w.buf, int(p.X), int(p.Z), 1, 1)
		if w.buf[0] != multifinder.Swampland {
			return Reject
		}
	}
	return Accept
}

// searchBase runs every regional offset of base and returns the hit count.
func (w *worker) searchBase(base int64) uint {
	var mons Monuments
	if w.opts.MonumentsEnabled() {
		mons = PotentialMonuments(base, w.opts.MonumentDistance)
		if mons.Len() == 0 {
			return 0
		}
	}

	r := int32(w.opts.HutRadius)
	var hits uint
	for rZ := -r - 1; rZ <= r; rZ++ {
		for rX := -r - 1; rX <= r; rX++ {
			o := newOffset(base, rX, rZ)
			hits += w.searchOffset(&o, &mons)
		}
	}
	return hits
}

// searchOffset sweeps every salt of one offset through the cascade.
func (w *worker) searchOffset(o *offset, mons *Monuments) uint {
	if !w.plausible(o) {
		return 0
	}

	var hits uint
	// Quads found, counted before the auxiliary checks so that they cannot
	// trip the sparse swamp abort.
	quads := 0
	for salt := int64(0); salt < saltCount; salt++ {
		seed := saltSeed(o.base, salt)
		w.coarse.SetWorldSeed(seed)

		if quads == 0 && salt&(abortPeriod-1) == abortPeriod-1 {
			if w.sparseSwamps(o, salt) == Abort {
				break
			}
		}
		if w.swampIndicator(o) != Accept {
			continue
		}
		if w.coarseSwamp(o, seed) != Accept {
			continue
		}
		if w.quadSwamp(o, seed) != Accept {
			continue
		}
		quads++

		if w.verify(o, seed, mons) != Accept {
			continue
		}
		w.emit(seed)
		hits++
	}
	return hits
}

func (w *worker) emit(seed int64) {
	w.line = strconv.AppendInt(w.line[:0], seed, 10)
	w.line = append(w.line, '\n')
	w.out.Write(w.line)
}
