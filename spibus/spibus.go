// Package spibus is a 4-wire SPI transport for the ssd1322 driver.
//
// Command and data bytes share the SPI MOSI line and are told apart by the
// D/C GPIO: low for commands, high for data. Long data writes are split into
// transfers no larger than the SPI driver accepts in one go (4096 bytes for
// the Linux spidev default).
package spibus

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/oledkit/ssd1322"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultMaxTxSize is used when neither Opts nor the connection report a
// transfer limit.
const DefaultMaxTxSize = 4096

// ErrDCPin is returned when no data/command pin is given.
var ErrDCPin = errors.New("spibus: data/command (DC) pin is invalid")

var debug = os.Getenv("SSD1322_DEBUG") != ""

// Pin is an output line. gpio.PinOut and *CdevLine satisfy it.
type Pin interface {
	Out(l gpio.Level) error
}

// Opts is the SPI port configuration.
type Opts struct {
	// Freq is the SPI clock, default 8MHz. The SSD1322 accepts up to 10MHz.
	Freq physic.Frequency
	// Mode is the SPI mode. The SSD1322 works in Mode0 or Mode3.
	Mode spi.Mode
	// MaxTxSize bounds a single transfer. 0 asks the connection, then falls
	// back to DefaultMaxTxSize.
	MaxTxSize int
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Freq: 8 * physic.MegaHertz,
	Mode: spi.Mode0,
}

// Bus implements ssd1322.Bus over a SPI connection.
type Bus struct {
	c     conn.Conn
	dc    Pin
	rst   Pin
	maxTx int

	dcLevel gpio.Level
	dcKnown bool
}

// NewSPI connects to p and returns a Bus using dc as the D/C line and rst as
// the reset line. rst may be nil when the panel reset is wired elsewhere.
// Only an untyped nil or gpio.INVALID dc is rejected here; a nil *CdevLine
// fails on first use with ErrLineClosed.
//
// opts can be nil to use DefaultOpts.
func NewSPI(p spi.Port, dc, rst Pin, opts *Opts) (*Bus, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	freq := opts.Freq
	if freq == 0 {
		freq = DefaultOpts.Freq
	}
	c, err := p.Connect(freq, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("spibus: connect: %w", err)
	}
	return New(c, dc, rst, opts.MaxTxSize)
}

// New returns a Bus over an already connected c. maxTx <= 0 selects the
// connection's limit or DefaultMaxTxSize.
func New(c conn.Conn, dc, rst Pin, maxTx int) (*Bus, error) {
	if dc == nil || dc == Pin(gpio.INVALID) {
		return nil, ErrDCPin
	}
	if maxTx <= 0 {
		if l, ok := c.(conn.Limits); ok {
			maxTx = l.MaxTxSize()
		}
	}
	if maxTx <= 0 {
		maxTx = DefaultMaxTxSize
	}
	return &Bus{c: c, dc: dc, rst: rst, maxTx: maxTx}, nil
}

// MaxTxSize returns the largest single transfer the Bus issues.
func (b *Bus) MaxTxSize() int {
	return b.maxTx
}

// WriteCommand implements ssd1322.Bus.
func (b *Bus) WriteCommand(cmd byte) error {
	return b.c.Tx([]byte{cmd}, nil)
}

// WriteData implements ssd1322.Bus. p is sent in chunks of at most
// MaxTxSize bytes, in order.
func (b *Bus) WriteData(p []byte) error {
	chunks := Chunks(p, b.maxTx)
	if debug && len(chunks) > 1 {
		log.Printf("spibus: write %d bytes of data in %d chunks", len(p), len(chunks))
	}
	for i, c := range chunks {
		if err := b.c.Tx(c, nil); err != nil {
			return fmt.Errorf("spibus: chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

// SetControlLine implements ssd1322.Bus. The D/C pin is only driven when
// its level changes.
func (b *Bus) SetControlLine(l ssd1322.Line) error {
	level := gpio.Level(l == ssd1322.Data)
	if b.dcKnown && b.dcLevel == level {
		return nil
	}
	if err := b.dc.Out(level); err != nil {
		return fmt.Errorf("spibus: D/C %s: %w", l, err)
	}
	b.dcLevel, b.dcKnown = level, true
	return nil
}

// SetResetLine implements ssd1322.Bus.
func (b *Bus) SetResetLine(l gpio.Level) error {
	if b.rst == nil {
		return nil
	}
	if err := b.rst.Out(l); err != nil {
		return fmt.Errorf("spibus: reset %s: %w", l, err)
	}
	return nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("spibus.Bus{%s}", b.c)
}

var _ ssd1322.Bus = (*Bus)(nil)
