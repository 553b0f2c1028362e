//go:build !cubiomes
// +build !cubiomes

package main

import (
	"errors"

	"github.com/vktec/multifinder"
)

func newGenerator() (multifinder.Generator, error) {
	return nil, errors.New("built without a biome generator; rebuild with -tags cubiomes")
}
