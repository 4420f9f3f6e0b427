// Package logic contains pure business logic for rotation detection.
// This package has NO external dependencies (no GPIO, PWM, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Channel identifies one of the 8 hall sensor channels.
// The order matches the note table: frequencies ascend with the index.
type Channel int

const (
	Down Channel = iota
	Front
	Up
	Right
	Back
	Left
	Middle
	Equator

	// NumChannels is the number of sensor channels.
	NumChannels = 8
)

// ChannelInfo describes one sensor channel: the note it plays and its
// human-readable rotation label. Immutable after initialization.
type ChannelInfo struct {
	FrequencyHz int
	Label       string
}

// Channels is the fixed channel table. Frequencies form a diatonic
// C-major scale from C4 to C5.
var Channels = [NumChannels]ChannelInfo{
	Down:    {FrequencyHz: 262, Label: "Down"},
	Front:   {FrequencyHz: 294, Label: "Front"},
	Up:      {FrequencyHz: 330, Label: "Up"},
	Right:   {FrequencyHz: 349, Label: "Right"},
	Back:    {FrequencyHz: 392, Label: "Back"},
	Left:    {FrequencyHz: 440, Label: "Left"},
	Middle:  {FrequencyHz: 494, Label: "Middle"},
	Equator: {FrequencyHz: 523, Label: "Equator"},
}

// Debounce and cooldown windows. These are fixed properties of the sensor
// hardware (magnet jostle characteristics), not runtime configuration.
const (
	// DebounceWindow is the minimum time a raw reading must hold constant
	// before being accepted as the stable state.
	DebounceWindow = 100 * time.Millisecond

	// CooldownWindow is the minimum time between two accepted triggers on
	// the same channel. One physical rotation can jostle the magnet past
	// the detector more than once; the cooldown collapses that into a
	// single note.
	CooldownWindow = 500 * time.Millisecond
)

// Event signals a valid rotation detection on a channel, carrying the
// channel's assigned note.
type Event struct {
	Timestamp   time.Time
	Channel     Channel
	FrequencyHz int
	Label       string
}

// ChannelState tracks debounce and cooldown state for a single channel.
type ChannelState struct {
	// Most recent raw reading (true = magnet present)
	LastRaw bool
	// Current stable (debounced) state
	Stable bool
	// Time the raw reading last changed
	LastChange time.Time
	// Time of the last accepted trigger
	LastTrigger time.Time
}

// Input represents a single poll cycle's samples across all channels.
type Input struct {
	// Active holds logical states (true = magnet present, already
	// inverted from the raw active-low GPIO reading).
	Active [NumChannels]bool
	Time   time.Time
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    [NumChannels]int
}
