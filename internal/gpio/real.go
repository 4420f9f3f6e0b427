//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the hall sensors from actual hardware using the Linux
// GPIO character device.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// NewRealReader requests the given BCM pins as pulled-up inputs on
// gpiochip0. The hall sensors are open-drain: idle reads high through the
// pull-up, a detected magnet pulls the line low.
func NewRealReader(pins []int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealReader{chip: chip}
	for _, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request sensor pin %d: %w", pin, err)
		}
		r.lines = append(r.lines, line)
	}

	return r, nil
}

// Read returns the logical state of every sensor.
// Inverts raw GPIO: raw low (0) = magnet present = true.
func (r *RealReader) Read() ([]bool, error) {
	out := make([]bool, len(r.lines))
	for i, line := range r.lines {
		raw, err := line.Value()
		if err != nil {
			return nil, fmt.Errorf("read sensor line %d: %w", i, err)
		}
		out[i] = raw == 0
	}
	return out, nil
}

// Close releases GPIO resources. Lines are reconfigured back to plain
// inputs before closing so the pins are in a known state for the next boot.
func (r *RealReader) Close() error {
	var errs []error

	for i, line := range r.lines {
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line %d: %w", i, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line %d: %w", i, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
