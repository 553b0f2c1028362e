//go:build cubiomes
// +build cubiomes

// Package cubiomes implements multifinder.Generator with the cubiomes C
// library's 1.12 layer stack. Build with -tags cubiomes and the library
// installed.
package cubiomes

/*
#cgo LDFLAGS: -lcubiomes -lm
#include <stdlib.h>
#include "finders.h"
#include "generator.h"
#include "layers.h"

static Layer *stackLayer(LayerStack *g, int l) {
	switch (l) {
	case 0: return &g->layers[L_BIOME_256];
	case 1: return &g->layers[L_SHORE_16];
	}
	return &g->layers[g->layerNum-1];
}

static void seedLayer(LayerStack *g, int l, int64_t seed) {
	setWorldSeed(stackLayer(g, l), seed);
}

static int *layerCache(LayerStack *g, int l, int w, int h) {
	return allocCache(stackLayer(g, l), w, h);
}

static void layerArea(LayerStack *g, int l, int *out, int x, int z, int w, int h) {
	genArea(stackLayer(g, l), out, x, z, w, h);
}

static int viableMonument(LayerStack *g, int x, int z) {
	return isViableOceanMonumentPos(*g, NULL, x, z);
}

static int viableMansion(LayerStack *g, int x, int z) {
	return isViableMansionPos(*g, NULL, x, z);
}

static Pos spawnPos(LayerStack *g, int64_t seed) {
	return getSpawn(g, NULL, seed);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/vktec/multifinder"
)

var initOnce sync.Once

type cacheKey struct {
	layer multifinder.Layer
	w, h  int
}

// Generator wraps one cubiomes LayerStack. Not safe for concurrent use.
type Generator struct {
	stack  C.LayerStack
	caches map[cacheKey]*C.int
}

var _ multifinder.Generator = (*Generator)(nil)

func New() (multifinder.Generator, error) {
	initOnce.Do(func() { C.initBiomes() })
	return &Generator{
		stack:  C.setupGenerator(),
		caches: make(map[cacheKey]*C.int),
	}, nil
}

func (g *Generator) SeedLayer(layer multifinder.Layer, seed int64) {
	C.seedLayer(&g.stack, C.int(layer), C.int64_t(seed))
}

func (g *Generator) ApplySeed(seed int64) {
	C.applySeed(&g.stack, C.int64_t(seed))
}

func (g *Generator) cache(layer multifinder.Layer, w, h int) *C.int {
	key := cacheKey{layer, w, h}
	buf, ok := g.caches[key]
	if !ok {
		buf = C.layerCache(&g.stack, C.int(layer), C.int(w), C.int(h))
		g.caches[key] = buf
	}
	return buf
}

func (g *Generator) GenArea(layer multifinder.Layer, dst []int, x, z, w, h int) []int {
	buf := g.cache(layer, w, h)
	C.layerArea(&g.stack, C.int(layer), buf, C.int(x), C.int(z), C.int(w), C.int(h))

	n := w * h
	if cap(dst) < n {
		dst = make([]int, n)
	}
	dst = dst[:n]
	for i, id := range unsafe.Slice(buf, n) {
		dst[i] = int(id)
	}
	return dst
}

func (g *Generator) Spawn(seed int64) multifinder.Pos {
	p := C.spawnPos(&g.stack, C.int64_t(seed))
	return multifinder.Pos{X: int32(p.x), Z: int32(p.z)}
}

func (g *Generator) ViableMonument(x, z int32) bool {
	return C.viableMonument(&g.stack, C.int(x), C.int(z)) != 0
}

func (g *Generator) ViableMansion(x, z int32) bool {
	return C.viableMansion(&g.stack, C.int(x), C.int(z)) != 0
}

func (g *Generator) Close() {
	for key, buf := range g.caches {
		C.free(unsafe.Pointer(buf))
		delete(g.caches, key)
	}
	C.freeGenerator(g.stack)
}
