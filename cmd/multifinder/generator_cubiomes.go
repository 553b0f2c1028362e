//go:build cubiomes
// +build cubiomes

package main

import (
	"github.com/vktec/multifinder"
	"github.com/vktec/multifinder/cubiomes"
)

func newGenerator() (multifinder.Generator, error) {
	return cubiomes.New()
}
