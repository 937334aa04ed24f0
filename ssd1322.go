package ssd1322

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/oledkit/ssd1322/canvas"
	"github.com/oledkit/ssd1322/nibble"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// Errors
var (
	ErrGeometry   = errors.New("ssd1322: width must be a multiple of 4 between 4 and 480, height between 1 and 128")
	ErrNotReady   = errors.New("ssd1322: display not initialized")
	ErrBufferSize = errors.New("ssd1322: invalid buffer size")
)

// resetPulse is the minimum hold time of each reset line edge.
const resetPulse = 10 * time.Millisecond

var sleep = time.Sleep

// State is the controller lifecycle state as tracked by the driver.
type State uint8

// Driver states.
const (
	Uninitialized State = iota
	Resetting
	CommandsUnlocked
	Configuring
	AwakeNormal
	PoweredOff
	PoweredOn
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resetting:
		return "resetting"
	case CommandsUnlocked:
		return "commands-unlocked"
	case Configuring:
		return "configuring"
	case AwakeNormal:
		return "awake"
	case PoweredOff:
		return "powered-off"
	case PoweredOn:
		return "powered-on"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Opts is the configuration for the SSD1322 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (multiple of 4, ≤480)
	H int // Height (≤128)

	// Depth of the canvas the driver allocates.
	Depth nibble.Format

	// Rotated selects the 180° remap at initialization.
	Rotated bool

	// COM pin options of the remap command.
	SplitCOM      bool // Odd/even split COM pin layout
	SwapTopBottom bool // Reverse the COM scan direction

	// GrayTable selects the custom gamma table or the built-in one.
	GrayTable GrayTable

	// Contrast current at initialization; 0 selects 0x7F.
	Contrast byte
}

// DefaultOpts is a 256×64 grayscale panel.
var DefaultOpts = Opts{
	W:        256,
	H:        64,
	Depth:    nibble.Gray8,
	Contrast: 0x7F,
}

// Dev is the device handle for the SSD1322 display.
//
// Dev is not safe for concurrent use.
type Dev struct {
	bus    Bus
	opts   Opts
	rect   image.Rectangle
	window Window
	canvas *canvas.Canvas

	state    State
	rotated  bool
	inverted bool
	contrast byte
}

// New resets and initializes the controller behind b.
//
// opts can be nil to use DefaultOpts.
func New(b Bus, opts *Opts) (*Dev, error) {
	if b == nil {
		return nil, fmt.Errorf("ssd1322: no bus: %w", ErrNotImplemented)
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.W <= 0 || o.W > NativeWidth || o.W%4 != 0 || o.H <= 0 || o.H > 128 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrGeometry, o.W, o.H)
	}
	if o.Contrast == 0 {
		o.Contrast = DefaultOpts.Contrast
	}
	c, err := canvas.New(o.W, o.H, o.Depth)
	if err != nil {
		return nil, err
	}

	d := &Dev{
		bus:    b,
		opts:   o,
		rect:   image.Rect(0, 0, o.W, o.H),
		window: ComputeWindow(NativeWidth, o.W, o.H),
		canvas: c,
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init pulses the reset line, programs every register and writes one blank
// frame. On failure the device is left Uninitialized; the caller may retry.
func (d *Dev) Init() error {
	if err := d.init(); err != nil {
		d.state = Uninitialized
		return err
	}
	return nil
}

func (d *Dev) init() error {
	d.state = Resetting
	if err := d.reset(); err != nil {
		return fmt.Errorf("ssd1322: reset: %w", err)
	}

	for _, w := range initSequence(&d.opts) {
		if err := d.command(w.cmd, w.data...); err != nil {
			return fmt.Errorf("ssd1322: init command 0x%02X: %w", w.cmd, err)
		}
		if w.cmd == cmdSetCommandLock {
			d.state = CommandsUnlocked
		} else {
			d.state = Configuring
		}
	}
	d.rotated = d.opts.Rotated
	d.inverted = false
	d.contrast = d.opts.Contrast

	d.canvas.Clear()
	if err := d.show(); err != nil {
		return err
	}
	d.state = AwakeNormal
	return nil
}

// reset drives the reset line high, low, high, holding each level.
func (d *Dev) reset() error {
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := d.bus.SetResetLine(l); err != nil {
			return err
		}
		sleep(resetPulse)
	}
	return nil
}

// command sends cmd followed by its arguments as data.
func (d *Dev) command(cmd byte, args ...byte) error {
	if err := d.bus.SetControlLine(Command); err != nil {
		return err
	}
	if err := d.bus.WriteCommand(cmd); err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	return d.data(args)
}

// data sends p as one logical data write.
func (d *Dev) data(p []byte) error {
	if err := d.bus.SetControlLine(Data); err != nil {
		return err
	}
	return d.bus.WriteData(p)
}

func (d *Dev) ready() error {
	switch d.state {
	case AwakeNormal, PoweredOff, PoweredOn:
		return nil
	}
	return ErrNotReady
}

// writeFrame sets the address window and streams f into it. f must cover
// the whole display.
func (d *Dev) writeFrame(f *nibble.Frame) error {
	if f.Rect.Size() != d.rect.Size() {
		return fmt.Errorf("%w: frame %v for a %v display", ErrBufferSize, f.Rect.Size(), d.rect.Size())
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	w := d.window
	if err := d.command(cmdSetColumnAddress, w.ColStart, w.ColEnd); err != nil {
		return fmt.Errorf("ssd1322: column address: %w", err)
	}
	if err := d.command(cmdSetRowAddress, w.RowStart, w.RowEnd); err != nil {
		return fmt.Errorf("ssd1322: row address: %w", err)
	}
	if err := d.command(cmdWriteRAM); err != nil {
		return fmt.Errorf("ssd1322: write RAM: %w", err)
	}
	if err := d.data(f.Pix); err != nil {
		return fmt.Errorf("ssd1322: frame data: %w", err)
	}
	return nil
}

func (d *Dev) show() error {
	return d.writeFrame(d.canvas.Pack())
}

// Show packs the canvas and transfers it to the display.
func (d *Dev) Show() error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.show()
}

// Canvas returns the pixel buffer transferred by Show. Draw on it, then call
// Show.
func (d *Dev) Canvas() *canvas.Canvas {
	return d.canvas
}

// State returns the current driver state.
func (d *Dev) State() State {
	return d.state
}

// Window returns the RAM address window used for frame writes.
func (d *Dev) Window() Window {
	return d.window
}

// ColorModel returns the color model of the canvas.
func (d *Dev) ColorModel() color.Model {
	return d.canvas.ColorModel()
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes an already packed frame to the display, bypassing the canvas.
// The data must be exactly W*H/2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	f, err := nibble.Wrap(d.rect.Dx(), d.rect.Dy(), pixels)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBufferSize, err)
	}
	if err := d.writeFrame(f); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw composes src onto the canvas and transfers the whole canvas.
//
// A well-formed *nibble.Frame covering the display is copied into the canvas
// and its bytes are sent unchanged.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	if f, ok := src.(*nibble.Frame); ok && dst == d.rect && sp == f.Rect.Min && f.Rect.Size() == d.rect.Size() && f.Validate() == nil {
		d.canvas.Load(&nibble.Frame{Pix: f.Pix, Stride: f.Stride, Rect: d.rect})
		return d.writeFrame(f)
	}
	draw.Draw(d.canvas, dst, src, sp, draw.Src)
	return d.show()
}

// PowerOff disables the internal VDD regulator and puts the panel to sleep.
// Register configuration and display RAM are kept.
func (d *Dev) PowerOff() error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(cmdFunctionSelect, functionExternalVDD); err != nil {
		return err
	}
	if err := d.command(cmdSleepOn); err != nil {
		return err
	}
	d.state = PoweredOff
	return nil
}

// PowerOn enables the internal VDD regulator and wakes the panel.
func (d *Dev) PowerOn() error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(cmdFunctionSelect, functionInternalVDD); err != nil {
		return err
	}
	if err := d.command(cmdSleepOff); err != nil {
		return err
	}
	d.state = PoweredOn
	return nil
}

// SetContrast sets the display contrast current (0-255).
func (d *Dev) SetContrast(level byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(cmdSetContrast, level); err != nil {
		return err
	}
	d.contrast = level
	return nil
}

// Contrast returns the last programmed contrast current.
func (d *Dev) Contrast() byte {
	return d.contrast
}

// SetRotation selects the 180° rotated remap.
func (d *Dev) SetRotation(rotated bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if err := d.command(cmdSetRemap, remapArgs(rotated, &d.opts)...); err != nil {
		return err
	}
	d.rotated = rotated
	return nil
}

// Rotated reports whether the rotated remap is active.
func (d *Dev) Rotated() bool {
	return d.rotated
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	var flag byte
	if invert {
		flag = 1
	}
	if err := d.command(cmdNormalDisplay | flag); err != nil {
		return err
	}
	d.inverted = invert
	return nil
}

// Inverted reports whether the display is inverted.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// Halt powers off the display. PowerOn wakes it again.
func (d *Dev) Halt() error {
	return d.PowerOff()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

var _ display.Drawer = (*Dev)(nil)
