// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Dither holds the error diffusion kernels and ordered dither matrices
// used by the translator and the transparency ditherer.
package dither

import (
	"github.com/soniakeys/quant/v2"
)

// Builtin returns the kernel for e.  ErrDiffCustom and unknown values give
// Floyd-Steinberg.  The returned kernel is a fresh copy.
func Builtin(e quant.ErrDiff) quant.Kernel {
	var k quant.Kernel
	switch e {
	case quant.ErrDiffJarvis:
		k = quant.Kernel{Width: 5, Height: 3, Orig: 2, Weights: []int{
			0, 0, 0, 7, 5,
			3, 5, 7, 5, 3,
			1, 3, 5, 3, 1,
		}}
	case quant.ErrDiffStucki:
		k = quant.Kernel{Width: 5, Height: 3, Orig: 2, Weights: []int{
			0, 0, 0, 8, 4,
			2, 4, 8, 4, 2,
			1, 2, 4, 2, 1,
		}}
	default:
		k = quant.Kernel{Width: 3, Height: 2, Orig: 1, Weights: []int{
			0, 0, 7,
			3, 5, 1,
		}}
	}
	return k
}

// Select returns the kernel the configuration asks for: cfg.Kernel for
// ErrDiffCustom, else the builtin.
func Select(e quant.ErrDiff, custom *quant.Kernel) quant.Kernel {
	if e == quant.ErrDiffCustom && custom != nil {
		return *custom
	}
	return Builtin(e)
}

// Total validates k and returns the sum of its weights.
func Total(k quant.Kernel) (int, error) {
	if k.Width <= 0 || k.Height <= 0 || len(k.Weights) < k.Width*k.Height {
		return 0, quant.Errorf(0, "%w: %dx%d map with %d weights",
			quant.ErrKernel, k.Width, k.Height, len(k.Weights))
	}
	if k.Orig < 0 || k.Orig >= k.Width {
		return 0, quant.Errorf(0, "%w: origin %d outside width %d",
			quant.ErrKernel, k.Orig, k.Width)
	}
	total := 0
	for i, w := range k.Weights[:k.Width*k.Height] {
		if w < 0 {
			return 0, quant.Errorf(0, "%w: errdiff_map values must be non-negative, errdiff[%d] is negative",
				quant.ErrKernel, i)
		}
		total += w
	}
	if total == 0 {
		return 0, quant.Errorf(0, "%w: error diffusion map must contain some non-zero values",
			quant.ErrKernel)
	}
	return total, nil
}
