package spibus

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"periph.io/x/conn/v3/gpio"
)

// ErrLineClosed is returned when driving a CdevLine that is nil or closed.
var ErrLineClosed = errors.New("spibus: GPIO line not open")

// CdevLine is an output line requested through the Linux GPIO character
// device, for boards where the D/C and reset lines are addressed as a chip
// name and line offset (for example gpiochip1, line 0).
type CdevLine struct {
	l      *gpiocdev.Line
	chip   string
	offset int
}

// OpenLine requests offset on chip as an output, initially high.
func OpenLine(chip string, offset int) (*CdevLine, error) {
	l, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1), gpiocdev.WithConsumer("ssd1322"))
	if err != nil {
		return nil, fmt.Errorf("spibus: request %s line %d: %w", chip, offset, err)
	}
	return &CdevLine{l: l, chip: chip, offset: offset}, nil
}

// Out implements Pin.
func (c *CdevLine) Out(l gpio.Level) error {
	if c == nil || c.l == nil {
		return ErrLineClosed
	}
	v := 0
	if l {
		v = 1
	}
	return c.l.SetValue(v)
}

// Close releases the line.
func (c *CdevLine) Close() error {
	if c == nil || c.l == nil {
		return nil
	}
	err := c.l.Close()
	c.l = nil
	return err
}

func (c *CdevLine) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s:%d", c.chip, c.offset)
}
