package cpu

import (
	"bufio"
	"io"
	"testing"

	"github.com/vktec/multifinder"
)

// fakeGen answers every query from plain functions and counts calls.
type fakeGen struct {
	seed     int64
	biome    func(seed int64, layer multifinder.Layer, x, z int) int
	monument func(x, z int32) bool
	mansion  func(x, z int32) bool
	spawn    multifinder.Pos
	calls    int
	closed   bool

	// Per layer GenArea calls, full stack seedings, and seedings of the
	// full stack that were not preceded by the coarse layer for that seed.
	areas     [multifinder.LayerFull + 1]int
	applied   int
	unordered int
	coarse    int64
}

func swampEverywhere(int64, multifinder.Layer, int, int) int { return multifinder.Swampland }

func newFakeGen() *fakeGen {
	return &fakeGen{
		biome:    swampEverywhere,
		monument: func(x, z int32) bool { return true },
		mansion:  func(x, z int32) bool { return true },
	}
}

func (g *fakeGen) SeedLayer(layer multifinder.Layer, seed int64) {
	g.calls++
	g.seed = seed
	if layer == multifinder.LayerBiome256 {
		g.coarse = seed
	}
}

func (g *fakeGen) ApplySeed(seed int64) {
	g.calls++
	g.applied++
	if g.coarse != seed {
		g.unordered++
	}
	g.seed = seed
}

func (g *fakeGen) GenArea(layer multifinder.Layer, dst []int, x, z, w, h int) []int {
	g.calls++
	g.areas[layer]++
	if cap(dst) < w*h {
		dst = make([]int, w*h)
	}
	dst = dst[:w*h]
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			dst[j*w+i] = g.biome(g.seed, layer, x+i, z+j)
		}
	}
	return dst
}

func (g *fakeGen) Spawn(seed int64) multifinder.Pos {
	g.calls++
	return g.spawn
}

func (g *fakeGen) ViableMonument(x, z int32) bool {
	g.calls++
	return g.monument(x, z)
}

func (g *fakeGen) ViableMansion(x, z int32) bool {
	g.calls++
	return g.mansion(x, z)
}

func (g *fakeGen) Close() { g.closed = true }

func testOptions(t testing.TB, mutate func(*multifinder.Options)) *multifinder.Options {
	t.Helper()
	opts := multifinder.DefaultOptions()
	opts.Radius = 0
	if mutate != nil {
		mutate(&opts)
	}
	if err := opts.Validate(); err != nil {
		t.Fatal(err)
	}
	return &opts
}

func testWorker(opts *multifinder.Options, gen multifinder.Generator, out io.Writer) (*worker, *bufio.Writer) {
	bw := bufio.NewWriter(out)
	return newWorker(0, opts, gen, bw), bw
}
