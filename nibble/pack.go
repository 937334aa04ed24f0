// Package nibble converts linear pixel buffers into the SSD1322 native
// 4-bit-per-pixel packed format.
//
// The controller stores two horizontally adjacent pixels per byte. The high
// nibble holds the left pixel, the low nibble the right pixel:
//
//	Pixels: 0  1  2  3
//	Values: 5  10 3  12
//	Bytes:  0x5A     0x3C
//
// Two source depths are supported. Mono buffers hold one bit per pixel, MSB
// first, and each bit is expanded to a full nibble. Gray8 buffers hold one byte
// per pixel and keep only the top 4 bits of each sample.
package nibble

// Format is the pixel depth of a source buffer.
type Format uint8

const (
	// Gray8 is one byte per pixel, 0-255 intensity.
	Gray8 Format = iota
	// Mono is one bit per pixel, packed MSB first.
	Mono
)

func (f Format) String() string {
	switch f {
	case Gray8:
		return "gray8"
	case Mono:
		return "mono"
	default:
		return "unknown"
	}
}

// Pack converts src to device nibbles using the transform for f.
func (f Format) Pack(src []byte) []byte {
	if f == Mono {
		return Expand(src)
	}
	return Combine(src)
}

// PackedLen returns the number of bytes Pack produces for n source bytes.
func (f Format) PackedLen(n int) int {
	if f == Mono {
		return 4 * n
	}
	return (n + 1) / 2
}

// Expand turns every source bit into a nibble: 0 becomes 0x0, 1 becomes 0xF.
// One source byte yields four output bytes.
func Expand(src []byte) []byte {
	dst := make([]byte, 4*len(src))
	for i, b := range src {
		o := dst[4*i : 4*i+4]
		for j := range o {
			// Bits 7-2j and 6-2j land in the high and low nibble of o[j].
			hi := (b >> (7 - 2*uint(j))) & 1
			lo := (b >> (6 - 2*uint(j))) & 1
			o[j] = hi*0xF0 | lo*0x0F
		}
	}
	return dst
}

// Combine packs pairs of 8-bit samples into one byte holding the top nibble
// of each. An odd trailing sample is paired with zero.
func Combine(src []byte) []byte {
	dst := make([]byte, (len(src)+1)/2)
	n := len(src) &^ 1
	for i := 0; i < n; i += 2 {
		dst[i/2] = src[i]&0xF0 | src[i+1]>>4
	}
	if n != len(src) {
		dst[len(dst)-1] = src[n] & 0xF0
	}
	return dst
}

// PackFrame packs a w×h buffer of rows srcStride bytes apart into a frame.
// Nibbles expanded from Mono row padding are dropped, and the padding nibble
// of an odd width is zero.
func (f Format) PackFrame(src []byte, w, h, srcStride int) *Frame {
	out := NewFrame(w, h)
	if w <= 0 || h <= 0 {
		return out
	}
	if srcStride*h == len(src) && f.PackedLen(len(src)) == len(out.Pix) && w%2 == 0 {
		out.Pix = f.Pack(src)
		return out
	}
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : (y+1)*out.Stride]
		copy(row, f.Pack(src[y*srcStride:(y+1)*srcStride]))
		if w%2 != 0 {
			row[len(row)-1] &= 0xF0
		}
	}
	return out
}
