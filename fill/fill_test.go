package fill_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/fill"
)

func fillColor(f fill.Fill, x, y, width, channels int) []quant.Color {
	out := make([]quant.Color, width)
	f.FillColor(x, y, width, channels, out)
	return out
}

func fillFColor(f fill.Fill, x, y, width, channels int) []quant.FColor {
	out := make([]quant.FColor, width)
	f.FillFColor(x, y, width, channels, out)
	return out
}

func sameColors(t *testing.T, what string, got, want []quant.Color) {
	t.Helper()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: sample %d = %v, want %v", what, i, got[i], want[i])
			return
		}
	}
}

func near(a, b uint8) bool { return int(a)+1 >= int(b) && int(b)+1 >= int(a) }

// consistent checks that the float path rounds to the 8-bit path.
func consistent(t *testing.T, what string, f fill.Fill, x, y, width int) {
	t.Helper()
	for channels := 1; channels <= 4; channels++ {
		c := fillColor(f, x, y, width, channels)
		fc := fill.ToColor(fillFColor(f, x, y, width, channels), nil)
		n := 4
		if channels <= 2 {
			n = 2
		}
		for i := range c {
			for ch := 0; ch < n; ch++ {
				if !near(c[i][ch], fc[i][ch]) {
					t.Fatalf("%s channels %d: sample %d 8-bit %v, float %v",
						what, channels, i, c[i], fc[i])
				}
			}
		}
	}
}

func TestSolid(t *testing.T) {
	red := quant.Color{255, 0, 0, 255}
	s := fill.NewSolid(red, fill.CombineNormal)
	if s.Combine() != fill.CombineNormal {
		t.Errorf("Combine = %v", s.Combine())
	}
	for _, c := range fillColor(s, 3, 4, 5, 4) {
		if c != red {
			t.Fatalf("rgba sample %v, want %v", c, red)
		}
	}
	g := fillColor(s, 0, 0, 1, 1)[0]
	if g[0] != 57 || g[1] != 255 {
		t.Errorf("gray sample %v, want gray 57 alpha 255", g)
	}
	consistent(t, "solid", s, 0, 0, 3)
	consistent(t, "solidf", fill.NewSolidF(quant.FColor{0.2, 0.4, 0.6, 0.5}, fill.CombineNone), 0, 0, 3)
	if c := fillColor(fill.NewSolidF(quant.FColor{0.5, 0, 1, 1}, fill.CombineNone), 0, 0, 1, 3)[0]; c != (quant.Color{128, 0, 255, 255}) {
		t.Errorf("NewSolidF 8-bit color %v", c)
	}
}

func TestHatchPeriodic(t *testing.T) {
	fg := quant.Color{255, 255, 255, 255}
	bg := quant.Color{0, 0, 0, 255}
	for p := fill.Check1x1; p <= fill.Stipple3; p++ {
		h := fill.NewHatch(fg, bg, fill.CombineNormal, p, nil, 3, 5)
		for _, pt := range []image.Point{{0, 0}, {5, 2}, {-3, -9}} {
			a := fillColor(h, pt.X, pt.Y, 21, 4)
			b := fillColor(h, pt.X+8, pt.Y+8, 21, 4)
			sameColors(t, "pattern", b, a)
		}
		consistent(t, "hatch", h, -2, 1, 17)
	}
}

func TestHatchBits(t *testing.T) {
	fg := quant.Color{200, 10, 10, 255}
	bg := quant.Color{0, 0, 0, 0}
	custom := [8]uint8{0x81, 0, 0, 0, 0, 0, 0, 0xff}
	h := fill.NewHatch(fg, bg, fill.CombineNormal, fill.Check1x1, &custom, 0, 0)
	got := fillColor(h, 0, 0, 9, 4)
	want := []quant.Color{fg, bg, bg, bg, bg, bg, bg, fg, fg}
	sameColors(t, "row 0", got, want)
	// dy selects row (y+dy)&7
	h = fill.NewHatch(fg, bg, fill.CombineNormal, 0, &custom, 1, 7)
	got = fillColor(h, 0, 0, 8, 4)
	want = []quant.Color{fg, fg, fg, fg, fg, fg, fg, fg}
	sameColors(t, "row 7", got, want)
	got = fillColor(h, 0, 1, 8, 4)
	want = []quant.Color{bg, bg, bg, bg, bg, bg, fg, fg}
	sameColors(t, "row 0 shifted", got, want)

	// out of range patterns use the first builtin
	if fill.Bitmap(-1) != fill.Bitmap(fill.Check1x1) || fill.Bitmap(1000) != fill.Bitmap(fill.Check1x1) {
		t.Error("out of range pattern is not Check1x1")
	}
}

func TestHatchGray(t *testing.T) {
	h := fill.NewHatchF(quant.FColor{1, 1, 1, 1}, quant.FColor{0, 0, 0, 0.5},
		fill.CombineNormal, fill.HLine1, nil, 0, 0)
	got := fillColor(h, 0, 0, 2, 2)
	if !near(got[0][0], 255) || got[0][1] != 255 {
		t.Errorf("foreground %v", got[0])
	}
	got = fillColor(h, 0, 1, 1, 1)
	if got[0][0] != 0 || got[0][1] != 128 {
		t.Errorf("background %v", got[0])
	}
}

func TestOpacity(t *testing.T) {
	s := fill.NewSolid(quant.Color{10, 20, 30, 200}, fill.CombineMultiply)
	tests := []struct {
		mult float64
		want uint8
	}{
		{2, 255},
		{0.5, 100},
		{1, 200},
		{-1, 0},
		{0.25, 50},
	}
	for _, tt := range tests {
		o := fill.NewOpacity(s, tt.mult)
		if o.Combine() != fill.CombineMultiply {
			t.Errorf("Combine = %v, want inner's", o.Combine())
		}
		if got := fillColor(o, 0, 0, 1, 4)[0]; got[3] != tt.want || got[0] != 10 {
			t.Errorf("mult %g: rgba %v, want alpha %d", tt.mult, got, tt.want)
		}
		if got := fillColor(o, 0, 0, 1, 2)[0]; got[1] != tt.want {
			t.Errorf("mult %g: gray %v, want alpha %d", tt.mult, got, tt.want)
		}
		f := fillFColor(o, 0, 0, 1, 4)[0]
		if f[3] < 0 || f[3] > 1 {
			t.Errorf("mult %g: float alpha %g out of range", tt.mult, f[3])
		}
		consistent(t, "opacity", o, 0, 0, 1)
	}
	if !fill.HasColor(fill.NewOpacity(s, 1)) {
		t.Error("opacity over solid has no 8-bit path")
	}
}

// ramp is a fill with only a floating point path.
type ramp struct{}

func (ramp) FillColor(x, y, width, channels int, out []quant.Color) {
	panic("no 8-bit path")
}

func (ramp) FillFColor(x, y, width, channels int, out []quant.FColor) {
	for i := range out[:width] {
		v := float64(x+i) / 10
		out[i] = quant.FColor{v, v, v, 1}
	}
}

func (ramp) Combine() fill.Combine { return fill.CombineNormal }
func (ramp) HasColor() bool        { return false }

func TestOpacityFloatOnly(t *testing.T) {
	o := fill.NewOpacity(ramp{}, 0.5)
	if fill.HasColor(o) {
		t.Fatal("HasColor is true over a float only fill")
	}
	got := fillColor(o, 5, 0, 2, 4)
	want := []quant.Color{{128, 128, 128, 128}, {153, 153, 153, 128}}
	sameColors(t, "float only", got, want)
}

// tile is a 3x2 image with distinct opaque colors.
func tile() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			m.SetNRGBA(10+x, 20+y, color.NRGBA{uint8(x * 100), uint8(y * 100), 7, 255})
		}
	}
	return m
}

func at(x, y int) quant.Color { return quant.Color{uint8(x * 100), uint8(y * 100), 7, 255} }

func TestImageWrap(t *testing.T) {
	f := fill.NewImage(tile(), nil, 0, 0, fill.CombineNormal)
	got := fillColor(f, -4, -1, 8, 4)
	want := []quant.Color{at(2, 1), at(0, 1), at(1, 1), at(2, 1), at(0, 1), at(1, 1), at(2, 1), at(0, 1)}
	sameColors(t, "y -1", got, want)
	got = fillColor(f, 0, -4, 3, 4)
	sameColors(t, "y -4", got, []quant.Color{at(0, 0), at(1, 0), at(2, 0)})
	consistent(t, "image", f, -7, 3, 12)
}

func TestImageOffsets(t *testing.T) {
	// xoff shifts each tile row
	f := fill.NewImage(tile(), nil, 1, 2, fill.CombineNormal)
	got := fillColor(f, 0, 2, 3, 4)
	sameColors(t, "xoff", got, []quant.Color{at(1, 0), at(2, 0), at(0, 0)})
	// negative offsets wrap to the positive equivalent
	g := fill.NewImage(tile(), nil, -2, 0, fill.CombineNormal)
	sameColors(t, "negative xoff", fillColor(g, 0, 2, 3, 4), got)
	// yoff applies to columns when xoff is zero
	f = fill.NewImage(tile(), nil, 0, 1, fill.CombineNormal)
	got = fillColor(f, 3, 0, 3, 4)
	sameColors(t, "yoff", got, []quant.Color{at(0, 1), at(1, 1), at(2, 1)})
}

func TestImageTransform(t *testing.T) {
	id := &f64.Aff3{1, 0, 0, 0, 1, 0}
	plain := fill.NewImage(tile(), nil, 1, 0, fill.CombineNormal)
	xf := fill.NewImage(tile(), id, 1, 0, fill.CombineNormal)
	for y := -3; y < 4; y++ {
		sameColors(t, "identity", fillColor(xf, -5, y, 11, 4), fillColor(plain, -5, y, 11, 4))
	}

	bw := image.NewGray(image.Rect(0, 0, 2, 1))
	bw.Pix[1] = 255
	half := fill.NewImage(bw, &f64.Aff3{1, 0, 0.5, 0, 1, 0}, 0, 0, fill.CombineNormal)
	got := fillColor(half, 0, 0, 2, 3)
	want := []quant.Color{{128, 128, 128, 255}, {128, 128, 128, 255}}
	sameColors(t, "half pixel", got, want)
	consistent(t, "transformed", half, 0, 0, 4)
	rot := fill.NewImage(tile(), &f64.Aff3{0.8, -0.6, 0.3, 0.6, 0.8, -1.7}, 0, 0, fill.CombineNormal)
	consistent(t, "rotated", rot, -10, 5, 20)
}

func TestImageAlphaWeighting(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 0})
	m.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
	f := fill.NewImage(m, &f64.Aff3{1, 0, 0.5, 0, 1, 0}, 0, 0, fill.CombineNone)
	got := fillColor(f, 0, 0, 1, 4)[0]
	// the transparent red pixel contributes no color, the cover of 127.5
	// truncates
	if got != (quant.Color{0, 0, 255, 127}) {
		t.Errorf("got %v, want blue at alpha 127", got)
	}
}

func TestImageDestroy(t *testing.T) {
	f := fill.NewImage(tile(), nil, 0, 0, fill.CombineNormal)
	require.NotEqual(t, quant.Color{}, fillColor(f, 0, 0, 1, 4)[0])
	fill.Destroy(f)
	assert.Equal(t, make([]quant.Color, 4), fillColor(f, 0, 0, 4, 4))
	// fills without resources are ignored
	fill.Destroy(fill.NewSolid(quant.Color{}, fill.CombineNone))
}

func TestCombine(t *testing.T) {
	c := quant.Color{40, 80, 120, 255}
	white := quant.Color{255, 255, 255, 255}
	tests := []struct {
		name     string
		combine  fill.Combine
		dst, src quant.Color
		channels int
		want     quant.Color
	}{
		{"normal opaque", fill.CombineNormal, white, c, 4, c},
		{"normal transparent", fill.CombineNormal, white, quant.Color{1, 2, 3, 0}, 4, white},
		{"normal over clear", fill.CombineNormal, quant.Color{}, quant.Color{9, 8, 7, 100}, 4, quant.Color{9, 8, 7, 100}},
		{"multiply white", fill.CombineMultiply, white, c, 3, c},
		{"none keeps alpha", fill.CombineNone, white, quant.Color{1, 2, 3, 4}, 4, quant.Color{1, 2, 3, 4}},
		{"add", fill.CombineAdd, quant.Color{200, 10, 0, 255}, quant.Color{100, 10, 0, 255}, 3, quant.Color{255, 20, 0, 255}},
		{"subtract", fill.CombineSubtract, quant.Color{200, 10, 0, 255}, quant.Color{100, 10, 0, 255}, 3, quant.Color{100, 0, 0, 255}},
		{"diff", fill.CombineDiff, quant.Color{50, 10, 0, 255}, quant.Color{100, 10, 0, 255}, 3, quant.Color{50, 0, 0, 255}},
		{"lighten", fill.CombineLighten, quant.Color{50, 10, 0, 255}, quant.Color{100, 5, 0, 255}, 3, quant.Color{100, 10, 0, 255}},
		{"darken", fill.CombineDarken, quant.Color{50, 10, 0, 255}, quant.Color{100, 5, 0, 255}, 3, quant.Color{50, 5, 0, 255}},
		{"gray half", fill.CombineNormal, quant.Color{0, 255}, quant.Color{255, 255}, 1, quant.Color{255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := []quant.Color{tt.dst}
			tt.combine.Apply(dst, []quant.Color{tt.src}, tt.channels)
			assert.Equal(t, tt.want, dst[0], "Apply")
			fd := []quant.FColor{tt.dst.F()}
			tt.combine.ApplyF(fd, []quant.FColor{tt.src.F()}, tt.channels)
			got := fd[0].C()
			for ch := range got {
				assert.InDelta(t, float64(tt.want[ch]), float64(got[ch]), 1, "ApplyF channel %d", ch)
			}
		})
	}
}

func TestCombineNames(t *testing.T) {
	for c := fill.CombineNone; c <= fill.CombineDarken; c++ {
		got, ok := fill.ParseCombine(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	_, ok := fill.ParseCombine("hue")
	assert.False(t, ok, "unknown name accepted")
}
