package quantize_test

import (
	"errors"
	"image"
	"image/color"
	"math/bits"
	"testing"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/quantize"
)

var searches = []quant.Search{quant.SearchHashbox, quant.SearchLinear, quant.SearchSorted, quant.SearchJump}

func TestTranslateIndexRange(t *testing.T) {
	img := gradient(40, 30)
	for _, mc := range []quant.MakeColors{quant.MakeMedianCut, quant.MakeAddi, quant.MakeWebMap, quant.MakeGray16} {
		for _, tr := range []quant.Translate{quant.TranslateClosest, quant.TranslatePerturb, quant.TranslateErrDiff} {
			cfg := &quant.Config{MakeColors: mc, Translate: tr, Size: 32, Perturb: 8}
			pal := quantize.MakePalette(cfg, img)
			idx, err := quantize.Translate(cfg, pal, img)
			if err != nil {
				t.Fatalf("%s/%s: %v", mc, tr, err)
			}
			if len(idx) != 40*30 {
				t.Fatalf("%s/%s: %d indices, want %d", mc, tr, len(idx), 40*30)
			}
			for i, v := range idx {
				if int(v) >= len(pal) {
					t.Fatalf("%s/%s: index %d at %d, palette has %d", mc, tr, v, i, len(pal))
				}
			}
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	fixed := quant.Palette{
		{0, 0, 0, 255}, {255, 255, 255, 255}, {200, 10, 10, 255},
		{10, 200, 10, 255}, {10, 10, 200, 255}, {128, 128, 0, 255},
		{129, 128, 0, 255},
	}
	img := image.NewNRGBA(image.Rect(0, 0, 17, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 17; x++ {
			c := fixed[(x*3+y*5)%len(fixed)]
			img.SetNRGBA(x, y, color.NRGBA{c[0], c[1], c[2], c[3]})
		}
	}
	for _, s := range searches {
		for _, tr := range []quant.Translate{quant.TranslateClosest, quant.TranslateErrDiff} {
			cfg := &quant.Config{MakeColors: quant.MakeNone, Colors: fixed, Translate: tr, Search: s}
			pal := quantize.MakePalette(cfg, img)
			idx, err := quantize.Translate(cfg, pal, img)
			if err != nil {
				t.Fatal(err)
			}
			for y := 0; y < 9; y++ {
				for x := 0; x < 17; x++ {
					got := pal[idx[y*17+x]]
					want := quant.FromColor(img.At(x, y))
					if got != want {
						t.Fatalf("%s/%s: pixel %d,%d = %v, want %v", s, tr, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestTranslateGrayImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x := 0; x < 4; x++ {
		img.SetGray(x, 0, color.Gray{uint8(x * 85)})
	}
	cfg := &quant.Config{MakeColors: quant.MakeGray4}
	pal := quantize.MakePalette(cfg, img)
	idx, err := quantize.Translate(cfg, pal, img)
	if err != nil {
		t.Fatal(err)
	}
	for x, v := range idx {
		if int(v) != x {
			t.Errorf("pixel %d index %d, want %d", x, v, x)
		}
	}
}

func TestTranslatePerturbSeeded(t *testing.T) {
	img := gradient(16, 16)
	cfg := &quant.Config{MakeColors: quant.MakeWebMap, Translate: quant.TranslatePerturb, Perturb: 20, Seed: 5}
	pal := quantize.MakePalette(cfg, img)
	a, _ := quantize.Translate(cfg, pal, img)
	b, _ := quantize.Translate(cfg, pal, img)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs between runs with the same seed", i)
		}
	}
}

func TestTranslateNoColors(t *testing.T) {
	var stack quant.ErrorStack
	cfg := &quant.Config{Errors: &stack}
	idx, err := quantize.Translate(cfg, nil, gradient(2, 2))
	if idx != nil || !errors.Is(err, quant.ErrNoColors) {
		t.Fatalf("got %v, %v, want nil, ErrNoColors", idx, err)
	}
	if stack.Len() != 1 || stack.Errors()[0].Msg != "no colors available for translation" {
		t.Errorf("stack = %v", stack.Err())
	}
	stack.Clear()
	if stack.Err() != nil {
		t.Errorf("cleared stack reports %v", stack.Err())
	}
}

// huge reports bounds whose area overflows int.
type huge struct{ image.Image }

const hugeSide = 1 << (bits.UintSize/2 + 1)

func (huge) Bounds() image.Rectangle { return image.Rect(0, 0, hugeSide, hugeSide) }

func TestTranslateOverflow(t *testing.T) {
	cfg := &quant.Config{}
	_, err := quantize.Translate(cfg, quantize.Mono(2), huge{})
	if !errors.Is(err, quant.ErrOverflow) {
		t.Errorf("err = %v, want ErrOverflow", err)
	}
}

func TestTranslateBadKernel(t *testing.T) {
	tests := []struct {
		name string
		k    *quant.Kernel
	}{
		{"negative", &quant.Kernel{Width: 3, Height: 1, Orig: 0, Weights: []int{0, 1, -1}}},
		{"zero", &quant.Kernel{Width: 3, Height: 1, Orig: 0, Weights: []int{0, 0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stack quant.ErrorStack
			cfg := &quant.Config{Translate: quant.TranslateErrDiff, ErrDiff: quant.ErrDiffCustom, Kernel: tt.k, Errors: &stack}
			idx, err := quantize.Translate(cfg, quantize.Mono(2), gradient(4, 4))
			if idx != nil || !errors.Is(err, quant.ErrKernel) {
				t.Errorf("got %v, %v, want nil, ErrKernel", idx, err)
			}
			if stack.Len() != 1 {
				t.Errorf("stack has %d errors, want 1", stack.Len())
			}
		})
	}
}

func TestErrDiffCustomKernel(t *testing.T) {
	// error goes entirely to the next pixel on the row
	k := &quant.Kernel{Width: 2, Height: 1, Orig: 0, Weights: []int{0, 1}}
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	for x := 0; x < 4; x++ {
		img.SetGray(x, 0, color.Gray{128})
	}
	cfg := &quant.Config{Translate: quant.TranslateErrDiff, ErrDiff: quant.ErrDiffCustom, Kernel: k}
	idx, err := quantize.Translate(cfg, quantize.Mono(2), img)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{1, 0, 1, 0}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("got %v, want %v", idx, want)
		}
	}
}

func TestErrDiffBounded(t *testing.T) {
	const w, h = 64, 64
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{100, 100, 100, 255})
		}
	}
	for _, e := range []quant.ErrDiff{quant.ErrDiffFloyd, quant.ErrDiffJarvis, quant.ErrDiffStucki} {
		t.Run(e.String(), func(t *testing.T) {
			cfg := &quant.Config{Translate: quant.TranslateErrDiff, ErrDiff: e}
			pal := quantize.Mono(2)
			idx, err := quantize.Translate(cfg, pal, img)
			if err != nil {
				t.Fatal(err)
			}
			total := 0
			for y := 0; y < h; y++ {
				row := 0
				for x := 0; x < w; x++ {
					row += int(pal[idx[y*w+x]][0]) - 100
				}
				if row < -8*255 || row > 8*255 {
					t.Fatalf("row %d error %d diverges", y, row)
				}
				total += row
			}
			if mean := 100 + float64(total)/(w*h); mean < 94 || mean > 106 {
				t.Errorf("mean output %.1f, want about 100", mean)
			}
		})
	}
}

func TestErrDiffGrayPalette(t *testing.T) {
	// a saturated color on a gray palette maps by luminance
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 255, 0, 255})
	cfg := &quant.Config{Translate: quant.TranslateErrDiff}
	pal := quantize.Gray(85, 4)
	idx, err := quantize.Translate(cfg, pal, img)
	if err != nil {
		t.Fatal(err)
	}
	// luminance 0.707*255 = 180, nearest of 0,85,170,255 is 170
	if idx[0] != 2 {
		t.Errorf("index %d, want 2", idx[0])
	}
}
