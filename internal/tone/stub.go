//go:build !linux

package tone

import "errors"

// DefaultPin is the BCM pin driving the piezo buzzer.
const DefaultPin = 12

// RealOutput is not available on non-Linux platforms.
type RealOutput struct{}

// NewRealOutput returns an error on non-Linux platforms.
func NewRealOutput(pin int) (*RealOutput, error) {
	return nil, errors.New("tone: not supported on this platform (requires Linux)")
}

// SetFrequency is not implemented on non-Linux platforms.
func (o *RealOutput) SetFrequency(hz int) error {
	return errors.New("tone: not supported")
}

// Stop is not implemented on non-Linux platforms.
func (o *RealOutput) Stop() error {
	return errors.New("tone: not supported")
}

// Close is not implemented on non-Linux platforms.
func (o *RealOutput) Close() error {
	return nil
}
