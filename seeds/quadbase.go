package seeds

import (
	"runtime"
	"sort"
	"sync"

	"github.com/vktec/multifinder"
)

const (
	lowBits = 20
	// Upper bits of a 48 bit base seed.
	HighCount = 1 << (48 - lowBits)

	sectionSize = 1 << 8

	javaMagic = 0x5DEECE66D
	lowMask   = (1 << lowBits) - 1
)

// quad lists the four hut regions around the quad corner.
var quad = [4][2]int32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// IsQuadBase reports whether the huts of regions (0,0) to (1,1) all lie
// within quality chunks of their shared corner.
func IsQuadBase(seed int64, quality int) bool {
	for _, r := range quad {
		c := multifinder.WitchHutChunk(seed, r[0], r[1])
		if !multifinder.InQuadCorner(c, r[0], r[1], quality) {
			return false
		}
	}
	return true
}

// residues returns the bitmask of chunk offsets mod 8 allowed on an axis of
// the given region.
func residues(region int32, quality int) uint8 {
	var mask uint8
	for c := int32(0); c < 24; c++ {
		p := multifinder.Pos{X: c, Z: 23}
		if multifinder.InQuadCorner(p, region, 0, quality) {
			mask |= 1 << (c & 7)
		}
	}
	return mask
}

// hutResidues returns the hut chunk offsets mod 8 for region (rx, rz). The
// Java LCG's bits 17-19 only depend on the low 20 bits of the seed, and 24 is
// a multiple of 8, so these are fixed by the low bits alone.
func hutResidues(low int64, rx, rz int32) (x, z uint8) {
	s := int64(rx)*341873128712 + int64(rz)*132897987541 + low + 14357617
	s ^= javaMagic
	s = (s*javaMagic + 0xB) & lowMask
	x = uint8(s>>17) & 7
	s = (s*javaMagic + 0xB) & lowMask
	z = uint8(s>>17) & 7
	return x, z
}

// LowCandidates returns, in ascending order, the low 20 bit patterns that can
// complete to a quad base of the given quality.
func LowCandidates(quality int) []int64 {
	var masks [2]uint8
	masks[0] = residues(0, quality)
	masks[1] = residues(1, quality)

	var ret []int64
	for low := int64(0); low <= lowMask; low++ {
		ok := true
		for _, r := range quad {
			x, z := hutResidues(low, r[0], r[1])
			if masks[r[0]]&(1<<x) == 0 || masks[r[1]]&(1<<z) == 0 {
				ok = false
				break
			}
		}
		if ok {
			ret = append(ret, low)
		}
	}
	return ret
}

// BaseFinder precomputes quad hut base seeds.
type BaseFinder struct {
	Workers int
	Quality int
}

type section struct {
	hi0, hi1 int64
}

// Find returns the quad bases whose upper 28 bits lie in [hi0, hi1), sorted.
func (f BaseFinder) Find(hi0, hi1 int64) []int64 {
	workerCount := f.Workers
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	lows := LowCandidates(f.Quality)

	sectionCh := make(chan section, 8)
	resultCh := make(chan []int64, 8)
	wgroup := new(sync.WaitGroup)
	wgroup.Add(workerCount)
	go func() {
		for hi := hi0; hi < hi1; hi += sectionSize {
			end := hi + sectionSize
			if end > hi1 {
				end = hi1
			}
			sectionCh <- section{hi, end}
		}
		close(sectionCh)
		wgroup.Wait()
		close(resultCh)
	}()

	for i := 0; i < workerCount; i++ {
		go func() {
			defer wgroup.Done()
			for sec := range sectionCh {
				if res := f.search(sec, lows); len(res) > 0 {
					resultCh <- res
				}
			}
		}()
	}

	var results []int64
	for res := range resultCh {
		results = append(results, res...)
	}
	sort.Slice(results, func(i, j int) bool { return results[i] < results[j] })
	return results
}

func (f BaseFinder) search(sec section, lows []int64) (results []int64) {
	for hi := sec.hi0; hi < sec.hi1; hi++ {
		for _, low := range lows {
			seed := hi<<lowBits | low
			if IsQuadBase(seed, f.Quality) {
				results = append(results, seed)
			}
		}
	}
	return results
}
