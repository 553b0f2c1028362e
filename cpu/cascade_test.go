package cpu

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/vktec/multifinder"
)

const seedMask = (1 << 48) - 1

func readSeeds(t *testing.T, data string) []int64 {
	t.Helper()
	var ret []int64
	for _, line := range strings.Fields(data) {
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		ret = append(ret, v)
	}
	return ret
}

// evenSalts puts the huts in swampland only for even salts.
func evenSalts(seed int64, layer multifinder.Layer, x, z int) int {
	if layer == multifinder.LayerFull && (seed>>48)&1 != 0 {
		return multifinder.Plains
	}
	return multifinder.Swampland
}

func TestAcceptedSeedsPassEveryStage(t *testing.T) {
	opts := testOptions(t, nil)

	var hits []int64
	var base int64
	for base = 1; base < 50 && len(hits) == 0; base++ {
		gen := newFakeGen()
		gen.biome = evenSalts
		var out bytes.Buffer
		w, bw := testWorker(opts, gen, &out)
		n := w.searchBase(base)
		bw.Flush()
		hits = readSeeds(t, out.String())
		if uint(len(hits)) != n {
			t.Fatalf("base %d: reported %d hits, wrote %d", base, n, len(hits))
		}
	}
	if len(hits) == 0 {
		t.Fatal("No hits found")
	}
	base--

	gen := newFakeGen()
	gen.biome = evenSalts
	w, _ := testWorker(opts, gen, new(bytes.Buffer))
	for _, seed := range hits {
		var o offset
		found := false
		for rZ := int32(-1); rZ <= 0 && !found; rZ++ {
			for rX := int32(-1); rX <= 0 && !found; rX++ {
				o = newOffset(base, rX, rZ)
				found = o.base == seed&seedMask
			}
		}
		if !found {
			t.Fatalf("seed %d does not belong to any offset of base %d", seed, base)
		}
		if (seed>>48)&1 != 0 {
			t.Fatalf("seed %d has an odd salt", seed)
		}
		if !w.plausible(&o) {
			t.Fatalf("seed %d: offset not plausible", seed)
		}
		w.coarse.SetWorldSeed(seed)
		if w.swampIndicator(&o) != Accept {
			t.Fatalf("seed %d: failed swamp indicator", seed)
		}
		if w.coarseSwamp(&o, seed) != Accept {
			t.Fatalf("seed %d: failed coarse biome", seed)
		}
		if w.quadSwamp(&o, seed) != Accept {
			t.Fatalf("seed %d: failed quad biome", seed)
		}
	}
}

func TestHitsAreAscendingWithinOffset(t *testing.T) {
	opts := testOptions(t, nil)
	gen := newFakeGen()
	var out bytes.Buffer
	w, bw := testWorker(opts, gen, &out)
	o := newOffset(12345, 0, 0)
	var mons Monuments
	w.searchOffset(&o, &mons)
	bw.Flush()

	// Salts only grow the high bits, so as unsigned values seeds ascend.
	hits := readSeeds(t, out.String())
	for i := 1; i < len(hits); i++ {
		if uint64(hits[i]) <= uint64(hits[i-1]) {
			t.Fatalf("hit %d (%d) not after %d", i, hits[i], hits[i-1])
		}
	}
}

func TestSparseSwampsThreshold(t *testing.T) {
	opts := testOptions(t, nil)
	w, _ := testWorker(opts, newFakeGen(), new(bytes.Buffer))
	o := newOffset(777, 0, 0)

	rolls := func(seed int64) int {
		w.coarse.SetWorldSeed(seed)
		n := 0
		for _, c := range [][2]int32{{o.areaX, o.areaZ + 1}, {o.areaX + 1, o.areaZ}, {o.areaX, o.areaZ}} {
			if w.swampRolled(c[0], c[1]) {
				n++
			}
		}
		return n
	}

	var none, one int64 = -1, -1
	for salt := int64(0); salt < saltCount && (none < 0 || one < 0); salt++ {
		switch rolls(saltSeed(o.base, salt)) {
		case 0:
			if none < 0 {
				none = salt
			}
		case 1:
			if one < 0 {
				one = salt
			}
		}
	}
	if none < 0 || one < 0 {
		t.Fatal("Could not find salts with zero and one swamp rolls")
	}

	w.coarse.SetWorldSeed(saltSeed(o.base, none))
	if v := w.sparseSwamps(&o, abortPeriod-1); v != Abort {
		t.Errorf("no rolls at first check: expected Abort, got %v", v)
	}
	w.coarse.SetWorldSeed(saltSeed(o.base, one))
	if v := w.sparseSwamps(&o, abortPeriod-1); v != Accept {
		t.Errorf("one roll at first check: expected Accept, got %v", v)
	}
	w.coarse.SetWorldSeed(saltSeed(o.base, one))
	if v := w.sparseSwamps(&o, 2*abortPeriod-1); v != Abort {
		t.Errorf("one roll at later check: expected Abort, got %v", v)
	}
}

func TestOffsetWindow(t *testing.T) {
	opts := testOptions(t, func(o *multifinder.Options) { o.Radius = 1024 })
	if opts.HutRadius != 2 {
		t.Fatalf("Expected hut radius 2, got %d", opts.HutRadius)
	}

	// Record the regions of every hut the quad check asks about.
	gen := newFakeGen()
	seen := map[int32]bool{}
	gen.biome = func(seed int64, layer multifinder.Layer, x, z int) int {
		if layer == multifinder.LayerFull {
			seen[int32(x)>>9] = true
		}
		return multifinder.Swampland
	}
	w, bw := testWorker(opts, gen, io.Discard)
	for base := int64(1); base < 4; base++ {
		w.searchBase(base)
	}
	bw.Flush()

	// Quads at rX in [-3, 2] cover hut regions -3..3.
	for r := int32(-3); r <= 3; r++ {
		if !seen[r] {
			t.Errorf("hut region %d never checked", r)
		}
	}
	if seen[-4] || seen[4] {
		t.Error("checked a hut region outside the window")
	}
}

func TestMonumentSkipsBase(t *testing.T) {
	// A base with no monument near the quad corner, even at distance 1.
	// Distance 0 turns the monument check off, so 1 is the strictest setting.
	var base int64 = -1
	for s := int64(0); s < 1000; s++ {
		if m := PotentialMonuments(s, 1); m.Len() == 0 {
			base = s
			break
		}
	}
	if base < 0 {
		t.Fatal("No base without monuments")
	}
	m0 := PotentialMonuments(base, 0)
	if n := m0.Len(); n != 0 {
		t.Fatalf("distance 0 should be stricter, got %d monuments", n)
	}

	opts := testOptions(t, func(o *multifinder.Options) { o.MonumentDistance = 1 })
	gen := newFakeGen()
	var out bytes.Buffer
	w, bw := testWorker(opts, gen, &out)
	if hits := w.searchBase(base); hits != 0 {
		t.Errorf("Expected no hits, got %d", hits)
	}
	bw.Flush()
	if gen.calls != 0 {
		t.Errorf("Expected no generator calls, got %d", gen.calls)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestEmitFormat(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	w := newWorker(0, testOptions(t, nil), newFakeGen(), bw)
	w.emit(-42)
	w.emit(1 << 50)
	bw.Flush()
	if got, want := out.String(), "-42\n1125899906842624\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// plausibleOffset returns the first offset, over bases from 1, whose
// plausibility probe gives want.
func plausibleOffset(t testing.TB, w *worker, want bool) offset {
	t.Helper()
	for base := int64(1); base < 1000; base++ {
		o := newOffset(base, 0, 0)
		if w.plausible(&o) == want {
			return o
		}
	}
	t.Fatalf("No offset with plausible() == %v", want)
	return offset{}
}

func TestImplausibleOffsetSkipsGenerator(t *testing.T) {
	opts := testOptions(t, nil)
	gen := newFakeGen()
	var out bytes.Buffer
	w, bw := testWorker(opts, gen, &out)
	o := plausibleOffset(t, w, false)

	var mons Monuments
	if hits := w.searchOffset(&o, &mons); hits != 0 {
		t.Errorf("Expected no hits, got %d", hits)
	}
	bw.Flush()
	if gen.calls != 0 {
		t.Errorf("Expected no generator calls, got %d", gen.calls)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestCoarseBiomeRejectsBeforeFullStack(t *testing.T) {
	opts := testOptions(t, nil)
	gen := newFakeGen()
	gen.biome = func(seed int64, layer multifinder.Layer, x, z int) int {
		if layer == multifinder.LayerBiome256 {
			return multifinder.Plains
		}
		return multifinder.Swampland
	}
	w, bw := testWorker(opts, gen, io.Discard)
	o := plausibleOffset(t, w, true)

	var mons Monuments
	if hits := w.searchOffset(&o, &mons); hits != 0 {
		t.Errorf("Expected no hits, got %d", hits)
	}
	bw.Flush()
	if gen.areas[multifinder.LayerBiome256] == 0 {
		t.Fatal("Coarse biome layer never sampled")
	}
	if gen.applied != 0 {
		t.Errorf("Full stack seeded %d times after coarse rejections", gen.applied)
	}
	if n := gen.areas[multifinder.LayerFull]; n != 0 {
		t.Errorf("Full layer sampled %d times after coarse rejections", n)
	}
}

func TestCoarseBiomeRunsFirst(t *testing.T) {
	opts := testOptions(t, nil)
	gen := newFakeGen()
	gen.biome = evenSalts
	w, bw := testWorker(opts, gen, io.Discard)
	o := plausibleOffset(t, w, true)

	var mons Monuments
	w.searchOffset(&o, &mons)
	bw.Flush()
	if gen.applied == 0 {
		t.Fatal("Full stack never seeded")
	}
	if gen.unordered != 0 {
		t.Errorf("Full stack seeded %d times without a coarse check for the same seed", gen.unordered)
	}
	if gen.areas[multifinder.LayerBiome256] < gen.applied {
		t.Errorf("%d coarse checks for %d full seedings", gen.areas[multifinder.LayerBiome256], gen.applied)
	}
}

func BenchmarkSearchOffset(b *testing.B) {
	opts := testOptions(b, nil)
	gen := newFakeGen()
	gen.biome = evenSalts
	w, bw := testWorker(opts, gen, io.Discard)
	o := newOffset(12345, 0, 0)
	var mons Monuments

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.searchOffset(&o, &mons)
	}
	bw.Flush()
}

func BenchmarkSearchBase(b *testing.B) {
	opts := testOptions(b, func(o *multifinder.Options) { o.Radius = 512 })
	gen := newFakeGen()
	gen.biome = neverSwamp
	w, bw := testWorker(opts, gen, io.Discard)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.searchBase(int64(i) + 1)
	}
	bw.Flush()
}
