package tone

// FakeOutput records output device calls for test assertions.
type FakeOutput struct {
	// Frequencies contains every frequency passed to SetFrequency, in
	// order, including zero/negative (mute) values.
	Frequencies []int

	// Stops counts calls to Stop.
	Stops int

	// Playing reflects the device state: true between a positive
	// SetFrequency and the next Stop or mute.
	Playing bool

	// Closed tracks if Close was called.
	Closed bool

	// SetFrequencyError, if set, will be returned by SetFrequency.
	SetFrequencyError error

	// StopError, if set, will be returned by Stop.
	StopError error
}

// NewFakeOutput creates a FakeOutput for testing.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// SetFrequency records the frequency.
func (f *FakeOutput) SetFrequency(hz int) error {
	if f.SetFrequencyError != nil {
		return f.SetFrequencyError
	}
	f.Frequencies = append(f.Frequencies, hz)
	f.Playing = hz > 0
	return nil
}

// Stop records the stop.
func (f *FakeOutput) Stop() error {
	if f.StopError != nil {
		return f.StopError
	}
	f.Stops++
	f.Playing = false
	return nil
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded calls.
func (f *FakeOutput) Reset() {
	f.Frequencies = nil
	f.Stops = 0
	f.Playing = false
	f.Closed = false
	f.SetFrequencyError = nil
	f.StopError = nil
}
