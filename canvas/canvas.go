// Package canvas provides the off-chip pixel buffer that is transferred to
// the display.
//
// A Canvas implements draw.Image, so anything able to draw on an image (the
// standard image/draw package, golang.org/x/image/font, imaging, gg, ...) can
// populate it. The driver only reads the resulting linear buffer.
//
// A Canvas must not be drawn on and packed concurrently.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/oledkit/ssd1322/nibble"
)

// ErrSize is returned for non-positive canvas dimensions.
var ErrSize = errors.New("canvas: width and height must be positive")

// Canvas is a row-major pixel buffer of fixed size.
//
// Gray8 canvases hold one 0-255 sample per pixel. Mono canvases hold one bit
// per pixel, most significant bit first, each row padded to a whole byte.
type Canvas struct {
	pix    []byte
	stride int
	rect   image.Rectangle
	depth  nibble.Format
}

// New allocates a zeroed w×h canvas.
func New(w, h int, depth nibble.Format) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrSize, w, h)
	}
	stride := w
	switch depth {
	case nibble.Gray8:
	case nibble.Mono:
		stride = (w + 7) / 8
	default:
		return nil, fmt.Errorf("canvas: unsupported depth %s", depth)
	}
	return &Canvas{
		pix:    make([]byte, stride*h),
		stride: stride,
		rect:   image.Rect(0, 0, w, h),
		depth:  depth,
	}, nil
}

// Width returns the width in pixels.
func (c *Canvas) Width() int { return c.rect.Dx() }

// Height returns the height in pixels.
func (c *Canvas) Height() int { return c.rect.Dy() }

// Depth returns the sample format.
func (c *Canvas) Depth() nibble.Format { return c.depth }

// Stride returns the number of bytes per row.
func (c *Canvas) Stride() int { return c.stride }

// Bytes returns the raw sample buffer. Callers must not modify it.
func (c *Canvas) Bytes() []byte { return c.pix }

// Clear sets every pixel to zero.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = 0
	}
}

// Fill sets every pixel to col. Mono row padding bits stay clear.
func (c *Canvas) Fill(col color.Color) {
	var v byte
	if c.depth == nibble.Mono {
		if monoOn(col) {
			v = 0xFF
		}
	} else {
		v = color.GrayModel.Convert(col).(color.Gray).Y
	}
	for i := range c.pix {
		c.pix[i] = v
	}
	if c.depth == nibble.Mono && c.Width()%8 != 0 {
		last := byte(0xFF) << uint(8-c.Width()%8)
		for i := c.stride - 1; i < len(c.pix); i += c.stride {
			c.pix[i] &= last
		}
	}
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	if c.depth == nibble.Mono {
		return monoModel
	}
	return color.GrayModel
}

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return c.rect }

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(c.rect)) {
		return color.Gray{}
	}
	if c.depth == nibble.Mono {
		if c.pix[y*c.stride+x/8]&(0x80>>uint(x%8)) != 0 {
			return color.Gray{Y: 0xFF}
		}
		return color.Gray{}
	}
	return color.Gray{Y: c.pix[y*c.stride+x]}
}

// Set implements draw.Image.
func (c *Canvas) Set(x, y int, col color.Color) {
	if !(image.Point{X: x, Y: y}.In(c.rect)) {
		return
	}
	if c.depth == nibble.Mono {
		i, bit := y*c.stride+x/8, byte(0x80>>uint(x%8))
		if monoOn(col) {
			c.pix[i] |= bit
		} else {
			c.pix[i] &^= bit
		}
		return
	}
	c.pix[y*c.stride+x] = color.GrayModel.Convert(col).(color.Gray).Y
}

// Pack returns the canvas in the controller's packed format.
func (c *Canvas) Pack() *nibble.Frame {
	return c.depth.PackFrame(c.pix, c.Width(), c.Height(), c.stride)
}

// Load replaces the pixels covered by f with its levels.
func (c *Canvas) Load(f *nibble.Frame) {
	r := c.rect.Intersect(f.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Set(x, y, f.LevelAt(x, y))
		}
	}
}

// monoOn reports whether col is lit on a 1-bit panel.
func monoOn(col color.Color) bool {
	return color.GrayModel.Convert(col).(color.Gray).Y >= 0x80
}

var monoModel = color.ModelFunc(func(col color.Color) color.Color {
	if monoOn(col) {
		return color.Gray{Y: 0xFF}
	}
	return color.Gray{}
})
