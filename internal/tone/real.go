//go:build linux

package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// DefaultPin is the BCM pin driving the piezo buzzer.
const DefaultPin = 12

// RealOutput generates a software square wave on a GPIO output line.
// Timing jitter from the scheduler is audible as slight detuning but is
// fine for a piezo toy.
type RealOutput struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line

	mu   sync.Mutex
	stop chan struct{} // closed to halt the current toggler, nil when silent
}

// NewRealOutput requests the given BCM pin as an output, initially low.
func NewRealOutput(pin int) (*RealOutput, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pin, err)
	}

	return &RealOutput{chip: chip, line: line}, nil
}

// SetFrequency starts toggling the line at the given frequency.
// Frequencies of zero or below mute the output.
func (o *RealOutput) SetFrequency(hz int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.haltLocked()

	if hz <= 0 {
		return o.line.SetValue(0)
	}

	halfPeriod := time.Second / time.Duration(2*hz)
	stop := make(chan struct{})
	o.stop = stop

	go func() {
		ticker := time.NewTicker(halfPeriod)
		defer ticker.Stop()
		level := 0
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				level ^= 1
				// Error here means the line is gone; the toggler just
				// keeps running until halted.
				o.line.SetValue(level)
			}
		}
	}()

	return nil
}

// Stop silences the output.
func (o *RealOutput) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.haltLocked()
	return o.line.SetValue(0)
}

// haltLocked stops the current toggler goroutine. Caller must hold mu.
func (o *RealOutput) haltLocked() {
	if o.stop != nil {
		close(o.stop)
		o.stop = nil
	}
}

// Close silences the output and releases GPIO resources.
func (o *RealOutput) Close() error {
	o.mu.Lock()
	o.haltLocked()
	o.mu.Unlock()

	var errs []error
	if o.line != nil {
		if err := o.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("silence buzzer: %w", err))
		}
		if err := o.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := o.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer line: %w", err))
		}
	}
	if o.chip != nil {
		if err := o.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
