// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quant

import (
	"io"
	"log/slog"
)

// MakeColors selects the palette building algorithm.
type MakeColors int

const (
	MakeNone      MakeColors = iota // use Config.Colors as given
	MakeWebMap                      // 216 color web safe map
	MakeMedianCut                   // median cut over 5 bit cells
	MakeMono                        // black and white
	MakeGray                        // 256 level gray ramp
	MakeGray4                       // 4 level gray ramp
	MakeGray16                      // 16 level gray ramp
	MakeAddi                        // local means refinement
)

var makeColorsNames = [...]string{"none", "webmap", "mediancut", "mono", "gray", "gray4", "gray16", "addi"}

func (m MakeColors) String() string {
	if m >= 0 && int(m) < len(makeColorsNames) {
		return makeColorsNames[m]
	}
	return "addi"
}

// Translate selects how pixels are mapped to palette indices.
type Translate int

const (
	TranslateClosest Translate = iota // nearest color
	TranslatePerturb                  // nearest color after random perturbation
	TranslateErrDiff                  // error diffusion
	TranslateGiflib                   // nearest color, palette forced to median cut
)

var translateNames = [...]string{"closest", "perturb", "errdiff", "giflib"}

func (t Translate) String() string {
	if t >= 0 && int(t) < len(translateNames) {
		return translateNames[t]
	}
	return "perturb"
}

// ErrDiff selects an error diffusion kernel.
type ErrDiff int

const (
	ErrDiffFloyd ErrDiff = iota
	ErrDiffJarvis
	ErrDiffStucki
	ErrDiffCustom
)

var errDiffNames = [...]string{"floyd", "jarvis", "stucki", "custom"}

func (e ErrDiff) String() string {
	if e >= 0 && int(e) < len(errDiffNames) {
		return errDiffNames[e]
	}
	return "floyd"
}

// Transp selects how transparent pixels are chosen.
type Transp int

const (
	TranspNone Transp = iota
	TranspThreshold
	TranspErrDiff
	TranspOrdered
)

var transpNames = [...]string{"none", "threshold", "errdiff", "ordered"}

func (t Transp) String() string {
	if t >= 0 && int(t) < len(transpNames) {
		return transpNames[t]
	}
	return "threshold"
}

// OrdDith selects an 8x8 ordered dither threshold matrix.
type OrdDith int

const (
	OrdDithRandom OrdDith = iota
	OrdDithDot8
	OrdDithDot4
	OrdDithHLine
	OrdDithVLine
	OrdDithSlashLine
	OrdDithBackLine
	OrdDithTiny
	OrdDithCustom
)

var ordDithNames = [...]string{"random", "dot8", "dot4", "hline", "vline", "slashline", "backline", "tiny", "custom"}

func (o OrdDith) String() string {
	if o >= 0 && int(o) < len(ordDithNames) {
		return ordDithNames[o]
	}
	return "random"
}

// Search selects the nearest color search used by the translator and the
// local means builder.  All strategies return an exact nearest color.
type Search int

const (
	SearchHashbox Search = iota // coarse RGB cells with candidate lists
	SearchLinear                // every entry
	SearchSorted                // entries sorted on one channel
	SearchJump                  // previous answer then pruned scan
)

var searchNames = [...]string{"hashbox", "linear", "sorted", "jump"}

func (s Search) String() string {
	if s >= 0 && int(s) < len(searchNames) {
		return searchNames[s]
	}
	return "hashbox"
}

// Kernel is an error diffusion map.  Weights holds Height rows of Width
// integer weights; the current pixel sits at column Orig of the first row
// and only weights after it receive error.
type Kernel struct {
	Width, Height, Orig int
	Weights            []int
}

// Config is the quantize configuration.  A Config is read only while an
// operation runs; builders return new palettes instead of modifying it.
type Config struct {
	// Colors are the fixed colors.  With MakeNone they are the palette.
	Colors Palette
	// Size is the palette capacity, 1 to MaxColors.  Zero means MaxColors.
	Size int

	MakeColors MakeColors
	Translate  Translate
	ErrDiff    ErrDiff
	Kernel     *Kernel // used with ErrDiffCustom
	Perturb    int     // noise amplitude for closest and perturb

	Transp      Transp
	TrThreshold uint8
	TrErrDiff   ErrDiff
	TrOrdDith   OrdDith
	TrCustom    *[64]uint8 // used with OrdDithCustom

	Search Search
	// Seed feeds the random source used for perturbation and for
	// respawning unused local means candidates.
	Seed uint64
	// ExactColors uses the image colors directly when they fit in Size.
	ExactColors bool

	Logger *slog.Logger
	Errors *ErrorStack
}

// Capacity returns Size clipped to 1..MaxColors.
func (c *Config) Capacity() int {
	n := c.Size
	if n <= 0 || n > MaxColors {
		n = MaxColors
	}
	return n
}

// Fixed returns the fixed colors, truncated to Capacity.
func (c *Config) Fixed() Palette {
	if n := c.Capacity(); len(c.Colors) > n {
		return c.Colors[:n]
	}
	return c.Colors
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Log returns the configured logger or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discard
}

// Fail records err on the configured error stack and returns it.
func (c *Config) Fail(err error) error {
	if c.Errors != nil {
		c.Errors.PushErr(err)
	}
	return err
}
