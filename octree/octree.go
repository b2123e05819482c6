// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Octree counts the distinct RGB colors of images.
//
// Each tree level consumes one bit of each channel, most significant
// first, so a leaf at depth 8 is one exact color.  Counting stops as soon
// as a limit is exceeded, which keeps the pre-analysis cheap for images
// with many colors.
package octree

import (
	"image"

	"github.com/soniakeys/quant/v2"
)

const maxDepth = 8

type node struct {
	children [8]*node
}

// Tree is a set of RGB colors.
type Tree struct {
	root   node
	count  int
	colors []quant.Color // in insertion order
}

func childIndex(c quant.Color, level int) int {
	i := 0
	mask := uint8(0x80) >> level
	if c[0]&mask != 0 {
		i |= 4
	}
	if c[1]&mask != 0 {
		i |= 2
	}
	if c[2]&mask != 0 {
		i |= 1
	}
	return i
}

// Add inserts the RGB channels of c and reports whether it was new.
func (t *Tree) Add(c quant.Color) bool {
	n := &t.root
	for level := 0; level < maxDepth; level++ {
		i := childIndex(c, level)
		if n.children[i] == nil {
			n.children[i] = &node{}
			if level == maxDepth-1 {
				t.count++
				t.colors = append(t.colors, quant.Color{c[0], c[1], c[2], 255})
				return true
			}
		}
		n = n.children[i]
	}
	return false
}

// Len returns the number of distinct colors added.
func (t *Tree) Len() int { return t.count }

// Colors returns the distinct colors in the order they were first added,
// all opaque.
func (t *Tree) Colors() quant.Palette {
	return append(quant.Palette(nil), t.colors...)
}

// Count returns the number of distinct colors in imgs, or a number greater
// than max as soon as more than max colors are found.
func Count(max int, imgs ...image.Image) int {
	t, _ := Collect(max, imgs...)
	return t.Len()
}

// Collect adds the colors of imgs to a new Tree.  ok is false if more
// than max colors were found, in which case the tree is incomplete.
func Collect(max int, imgs ...image.Image) (t *Tree, ok bool) {
	t = &Tree{}
	var lr quant.LineReader
	for _, img := range imgs {
		lr.Reset(img)
		h := img.Bounds().Dy()
		for y := 0; y < h; y++ {
			for _, c := range lr.Line(y) {
				if t.Add(c) && t.count > max {
					return t, false
				}
			}
		}
	}
	return t, true
}
