package multifinder

import (
	"fmt"
	"sort"
)

// Biome ids of the 1.12 overworld generator. Mutated variants are id+Mutated.
const (
	Ocean = iota
	Plains
	Desert
	ExtremeHills
	Forest
	Taiga
	Swampland
	River
	Hell
	Sky
	FrozenOcean
	FrozenRiver
	IcePlains
	IceMountains
	MushroomIsland
	MushroomIslandShore
	Beach
	DesertHills
	ForestHills
	TaigaHills
	ExtremeHillsEdge
	Jungle
	JungleHills
	JungleEdge
	DeepOcean
	StoneBeach
	ColdBeach
	BirchForest
	BirchForestHills
	RoofedForest
	ColdTaiga
	ColdTaigaHills
	MegaTaiga
	MegaTaigaHills
	ExtremeHillsPlus
	Savanna
	SavannaPlateau
	Mesa
	MesaPlateauF
	MesaPlateau
)

const (
	Mutated   = 128
	NumBiomes = 256
)

// Class is how a biome counts towards a spawn biome search.
type Class int8

const (
	Exclude Class = -1
	Neutral Class = 0
	Include Class = 1
)

// BiomeConfig classifies every biome id for the spawn biome check. It is
// immutable once built and may be shared between workers.
type BiomeConfig struct {
	name     string
	fraction float64
	lookup   [NumBiomes]Class
}

func NewBiomeConfig(name string, fraction float64, include, exclude []int) (*BiomeConfig, error) {
	if fraction < 0 || fraction > 1 {
		return nil, &ConfigError{"spawn_biomes", fmt.Sprintf("%s: fraction %v outside [0, 1]", name, fraction)}
	}
	cfg := &BiomeConfig{name: name, fraction: fraction}
	for _, id := range include {
		if id < 0 || id >= NumBiomes {
			return nil, &ConfigError{"spawn_biomes", fmt.Sprintf("%s: included biome %d out of range", name, id)}
		}
		cfg.lookup[id] = Include
	}
	for _, id := range exclude {
		if id < 0 || id >= NumBiomes {
			return nil, &ConfigError{"spawn_biomes", fmt.Sprintf("%s: excluded biome %d out of range", name, id)}
		}
		cfg.lookup[id] = Exclude
	}
	return cfg, nil
}

func (c *BiomeConfig) Name() string      { return c.name }
func (c *BiomeConfig) Fraction() float64 { return c.fraction }

func (c *BiomeConfig) Classify(id int) Class {
	if id < 0 || id >= NumBiomes {
		return Neutral
	}
	return c.lookup[id]
}

type biomePreset struct {
	name     string
	fraction float64
	include  []int
	exclude  []int
}

var waterBiomes = []int{River, Ocean, DeepOcean}

var biomePresets = map[string]biomePreset{
	"ocean": {"ocean", 0.85,
		[]int{Ocean, FrozenOcean, DeepOcean},
		nil},
	"flower_forest": {"flower forest", 0.65,
		[]int{Forest + Mutated},
		waterBiomes},
	"ice_spikes": {"ice spikes", 0.75,
		[]int{IcePlains + Mutated},
		[]int{IcePlains, IceMountains, FrozenRiver, River, FrozenOcean, Ocean, DeepOcean}},
	"jungle": {"jungle", 0.95,
		[]int{Jungle, JungleHills, JungleEdge, Jungle + Mutated, JungleEdge + Mutated},
		waterBiomes},
	"mega_taiga": {"mega taiga", 0.90,
		[]int{MegaTaiga, MegaTaigaHills, MegaTaiga + Mutated, MegaTaigaHills + Mutated},
		waterBiomes},
	"mesa": {"mesa", 0.90,
		[]int{Mesa, MesaPlateauF, MesaPlateau, Mesa + Mutated, MesaPlateauF + Mutated, MesaPlateau + Mutated},
		waterBiomes},
	"mushroom_island": {"mushroom island", 0.50,
		[]int{MushroomIsland, MushroomIslandShore},
		waterBiomes},
}

var biomeAliases = map[string]string{
	"flower":         "flower_forest",
	"flowerForest":   "flower_forest",
	"iceSpikes":      "ice_spikes",
	"megaTaiga":      "mega_taiga",
	"mushroom":       "mushroom_island",
	"mushroomIsland": "mushroom_island",
}

// BiomeConfigNames lists the canonical preset names.
func BiomeConfigNames() []string {
	names := make([]string, 0, len(biomePresets))
	for name := range biomePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupBiomeConfig builds the named preset. Each call returns a new value.
func LookupBiomeConfig(name string) (*BiomeConfig, error) {
	if canon, ok := biomeAliases[name]; ok {
		name = canon
	}
	p, ok := biomePresets[name]
	if !ok {
		return nil, &ConfigError{"spawn_biomes", fmt.Sprintf("unknown biome group %q", name)}
	}
	return NewBiomeConfig(p.name, p.fraction, p.include, p.exclude)
}
