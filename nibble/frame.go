package nibble

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrFrameSize is returned when a frame's buffer does not match its bounds.
var ErrFrameSize = errors.New("nibble: frame buffer does not match its bounds")

// Level is a 4-bit pixel intensity as stored by the controller, 0-15.
type Level uint8

// RGBA implements color.Color. Bits above the low nibble are ignored.
func (l Level) RGBA() (r, g, b, a uint32) {
	y := uint32(l&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// LevelModel keeps the top nibble of the 8-bit gray value, the same rounding
// Combine applies to Gray8 samples.
var LevelModel = color.ModelFunc(func(c color.Color) color.Color {
	if l, ok := c.(Level); ok {
		return l & 0x0F
	}
	return Level(color.GrayModel.Convert(c).(color.Gray).Y >> 4)
})

// RowLen returns the number of packed bytes holding a row of w pixels. For an
// odd w the low nibble of the last byte is padding and stays zero.
func RowLen(w int) int {
	return (w + 1) / 2
}

// Frame is a packed frame: rows of Stride bytes, two pixels per byte, the
// left pixel in the high nibble. Pix is what gets streamed into display RAM.
type Frame struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewFrame allocates a zeroed w×h frame at the origin.
func NewFrame(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		return &Frame{Rect: image.Rect(0, 0, max(w, 0), max(h, 0))}
	}
	return &Frame{
		Pix:    make([]byte, RowLen(w)*h),
		Stride: RowLen(w),
		Rect:   image.Rect(0, 0, w, h),
	}
}

// Wrap returns a w×h frame backed by pix, which is not copied.
func Wrap(w, h int, pix []byte) (*Frame, error) {
	f := &Frame{Pix: pix, Stride: RowLen(w), Rect: image.Rect(0, 0, w, h)}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that Stride and Pix cover Rect exactly.
func (f *Frame) Validate() error {
	w, h := f.Rect.Dx(), f.Rect.Dy()
	if f.Stride != RowLen(w) {
		return fmt.Errorf("%w: stride %d for width %d", ErrFrameSize, f.Stride, w)
	}
	if len(f.Pix) != f.Stride*h {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameSize, len(f.Pix), w, h)
	}
	return nil
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return LevelModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return f.Rect }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color { return f.LevelAt(x, y) }

// LevelAt returns the level at (x, y). Pixels outside the frame, or beyond
// the end of a short Pix, read as 0.
func (f *Frame) LevelAt(x, y int) Level {
	i, hi, ok := f.index(x, y)
	if !ok {
		return 0
	}
	if hi {
		return Level(f.Pix[i] >> 4)
	}
	return Level(f.Pix[i] & 0x0F)
}

// Set implements draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	f.SetLevel(x, y, LevelModel.Convert(c).(Level))
}

// SetLevel stores l at (x, y).
func (f *Frame) SetLevel(x, y int, l Level) {
	i, hi, ok := f.index(x, y)
	if !ok {
		return
	}
	l &= 0x0F
	if hi {
		f.Pix[i] = f.Pix[i]&0x0F | byte(l)<<4
	} else {
		f.Pix[i] = f.Pix[i]&0xF0 | byte(l)
	}
}

// index locates the byte holding (x, y) and whether it is the high nibble.
func (f *Frame) index(x, y int) (i int, hi bool, ok bool) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return 0, false, false
	}
	dx := x - f.Rect.Min.X
	i = (y-f.Rect.Min.Y)*f.Stride + dx/2
	if i >= len(f.Pix) {
		return 0, false, false
	}
	return i, dx%2 == 0, true
}
