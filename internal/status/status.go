// Package status provides a thread-safe status tracker for the cube-chimes
// daemon. It is read by HTTP handlers and feeds the MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	CooldownMs  int64
	NoteMs      int64
	GapMs       int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
}

// LastNote records the most recently played note.
type LastNote struct {
	Label       string
	FrequencyHz int
	At          time.Time
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	// Ready is true once the startup melody has finished.
	Ready bool
	// Magnets holds the debounced magnet-present state per channel.
	Magnets [logic.NumChannels]bool
	// Counts holds accepted trigger counts per channel.
	Counts [logic.NumChannels]int
	// Last is the most recently played note, nil before the first trigger.
	Last          *LastNote
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets magnet states and trigger counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(magnets [logic.NumChannels]bool, counts [logic.NumChannels]int) {
	t.mu.Lock()
	t.snap.Magnets = magnets
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetLastNote records the most recently played note.
func (t *Tracker) SetLastNote(label string, frequencyHz int, at time.Time) {
	t.mu.Lock()
	t.snap.Last = &LastNote{Label: label, FrequencyHz: frequencyHz, At: at}
	t.mu.Unlock()
}

// SetReady marks the startup melody as finished.
func (t *Tracker) SetReady() {
	t.mu.Lock()
	t.snap.Ready = true
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

// SnapshotAt returns a copy of the daemon state with Now set explicitly.
// Used where the caller owns the clock.
func (t *Tracker) SnapshotAt(now time.Time) Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = now
	return s
}
