// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Quant provides the types shared by the palette builders, the palette
// translator and the fill engine: colors, palettes, the quantize
// configuration, error reporting and pixel access helpers.
package quant

import "image"

// Quantizer defines a palette builder.
type Quantizer interface {
	// Palette builds a palette of no more than size colors for imgs.
	// Colors in fixed are kept at the front of the result where the
	// algorithm supports fixed colors.
	Palette(fixed Palette, size int, imgs ...image.Image) Palette
}
