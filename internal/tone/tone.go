// Package tone drives the piezo buzzer with abstraction for testing.
// The real implementation generates a square wave on a GPIO line.
// The fake implementation records calls without hardware.
package tone

import (
	"fmt"
	"time"
)

// Output is the tone output device: a square-wave generator.
type Output interface {
	// SetFrequency starts emitting the given frequency. A frequency of
	// zero or below mutes the output instead of erroring.
	SetFrequency(hz int) error

	// Stop silences the output.
	Stop() error

	// Close releases the output device.
	Close() error
}

const (
	// NoteDuration is how long a triggered note sounds.
	NoteDuration = 200 * time.Millisecond

	// DefaultGap is the silence held after each note before the next can
	// start.
	DefaultGap = 50 * time.Millisecond
)

// Dispatcher plays single notes through an Output. Play is blocking by
// design: the polling loop is single-threaded and one note must finish
// audibly before another can start (the toy has one speaker).
type Dispatcher struct {
	out   Output
	gap   time.Duration
	sleep func(time.Duration)
}

// NewDispatcher creates a Dispatcher with the given inter-note gap.
func NewDispatcher(out Output, gap time.Duration) *Dispatcher {
	return &Dispatcher{
		out:   out,
		gap:   gap,
		sleep: time.Sleep,
	}
}

// Play drives the output to frequencyHz, holds for duration, silences the
// output, then holds the inter-note gap before returning. A frequency of
// zero or below plays as silence for the same total time.
func (d *Dispatcher) Play(frequencyHz int, duration time.Duration) error {
	if err := d.out.SetFrequency(frequencyHz); err != nil {
		return fmt.Errorf("set frequency %d: %w", frequencyHz, err)
	}
	d.sleep(duration)

	if err := d.out.Stop(); err != nil {
		return fmt.Errorf("stop output: %w", err)
	}
	d.sleep(d.gap)

	return nil
}

// PlayAll plays the given notes in order through the same blocking
// primitive. It stops at the first output error.
func (d *Dispatcher) PlayAll(notes []Note) error {
	for i, n := range notes {
		if err := d.Play(n.FrequencyHz, n.Duration); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	return nil
}
