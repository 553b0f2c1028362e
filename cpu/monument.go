package cpu

import (
	"github.com/vktec/multifinder"
	"github.com/vktec/multifinder/util"
)

const maxMonuments = 4

// Monuments holds the monument positions around the quad of a base seed,
// relative to the origin.
type Monuments struct {
	n   int
	pos [maxMonuments]multifinder.Pos
}

func (m *Monuments) Len() int { return m.n }

func (m *Monuments) At(i int) multifinder.Pos {
	util.Assert(i >= 0 && i < m.n, "monument index out of range")
	return m.pos[i]
}

func (m *Monuments) add(p multifinder.Pos) {
	util.Assert(m.n < maxMonuments, "too many monuments")
	m.pos[m.n] = p
	m.n++
}

// PotentialMonuments returns the monuments of the four regions around the
// quad corner whose chunk lies within distance chunks of the corner.
func PotentialMonuments(base int64, distance int) Monuments {
	var m Monuments
	for rz := int32(0); rz < 2; rz++ {
		for rx := int32(0); rx < 2; rx++ {
			c := multifinder.MonumentChunk(base, rx, rz)
			if !multifinder.InQuadCorner(c, rx, rz, distance) {
				continue
			}
			m.add(multifinder.Pos{
				X: (c.X+rx*32)*16 + 8,
				Z: (c.Z+rz*32)*16 + 8,
			})
		}
	}
	return m
}
