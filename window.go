package ssd1322

// NativeWidth is the number of pixel columns in the controller display RAM.
const NativeWidth = 480

// Window is a display RAM address window. Columns are in units of 4 pixels
// (2 packed bytes), rows in single lines.
type Window struct {
	ColStart, ColEnd byte
	RowStart, RowEnd byte
}

// ComputeWindow centres a w×h panel in RAM that is native pixels wide.
// w must be a multiple of 4.
func ComputeWindow(native, w, h int) Window {
	offset := (native - w) / 2
	colStart := offset / 4
	return Window{
		ColStart: byte(colStart),
		ColEnd:   byte(colStart + w/4 - 1),
		RowStart: 0,
		RowEnd:   byte(h - 1),
	}
}
