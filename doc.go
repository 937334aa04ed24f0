// Package ssd1322 controls a SSD1322 OLED display controller.
//
// The SSD1322 is a 4-bit grayscale OLED controller with 480×128 pixels of
// display RAM. This driver implements the display.Drawer interface from
// periph.io.
//
// # Display Characteristics
//
// - 4-bit grayscale with 16 intensity levels (0-15)
// - Panel widths that are a multiple of 4 up to 480, heights up to 128
// - Adjustable contrast (0-255), 180° rotation and display inversion
// - Power off/on through the internal VDD regulator
// - 480-column internal RAM with automatic centering for smaller panels
//
// # Transport
//
// The driver does not talk to hardware itself. It drives a Bus, which sends
// command and data bytes, selects between them with the D/C line and drives
// the reset line. Package spibus provides a Bus for 4-wire SPI using
// periph.io pins or GPIO character device lines:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select
//	RES         → GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//	p, _ := spireg.Open("")
//	b, _ := spibus.NewSPI(p, gpioreg.ByName("GPIO24"), gpioreg.ByName("GPIO25"), nil)
//
//	dev, _ := ssd1322.New(b, &ssd1322.Opts{W: 256, H: 64})
//	defer dev.Halt()
//
//	c := dev.Canvas()
//	for x := 0; x < c.Width(); x++ {
//		c.Set(x, 10, color.White)
//	}
//	dev.Show()
//
// # Initialization
//
// New pulses the reset line (high, low, high, 10ms each), unlocks the command
// set and programs every register from a fixed table, then clears the canvas
// and writes one full frame. If any write fails, New returns the error and
// nothing is retried; call Init on an existing Dev to start over.
//
// # Frames
//
// The canvas holds 8-bit samples (nibble.Gray8) or 1-bit samples
// (nibble.Mono). Show packs it into a nibble.Frame, two 4-bit pixels per
// byte, and writes it into the centred RAM window. Write sends bytes that are
// already packed, and Draw accepts any image.Image. A full-size nibble.Frame
// given to Draw is sent as is and also copied into the canvas.
//
// # Grayscale Table
//
// By default a custom gamma table is programmed (CustomGrayLevels). Set
// Opts.GrayTable to DefaultGrayTable to use the controller's built-in table.
//
// # Datasheet
//
// https://www.displayfuture.com/Display/datasheet/controller/SSD1322.pdf
package ssd1322
