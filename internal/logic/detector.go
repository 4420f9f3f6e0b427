package logic

import "time"

// Detector filters raw sensor readings into stable states and detects
// debounced transitions into the active level, gated per channel by a
// cooldown window.
type Detector struct {
	debounce      time.Duration
	cooldown      time.Duration
	channels      [NumChannels]ChannelState
	counts        [NumChannels]int
	seeded        bool
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewDetector creates a detector with the given debounce and cooldown
// windows. The startTime is used for calculating uptime in heartbeat events.
func NewDetector(debounce, cooldown time.Duration, startTime time.Time) *Detector {
	return &Detector{
		debounce:      debounce,
		cooldown:      cooldown,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a new sample of all channels and returns any trigger events.
// The first call seeds every channel's stable state from the raw reading and
// emits nothing, so a magnet already parked on a sensor at boot does not
// play a note.
func (d *Detector) Process(in Input) []Event {
	if !d.seeded {
		for i := range d.channels {
			d.channels[i] = ChannelState{
				LastRaw:    in.Active[i],
				Stable:     in.Active[i],
				LastChange: in.Time,
			}
		}
		d.seeded = true
		return nil
	}

	var events []Event
	for i := range d.channels {
		if e := d.processChannel(Channel(i), &d.channels[i], in.Active[i], in.Time); e != nil {
			events = append(events, *e)
			d.counts[i]++
		}
	}
	return events
}

// processChannel handles debounce and cooldown for a single channel.
// Returns an event if a qualifying transition into the active level
// occurred, nil otherwise.
//
// The change timestamp resets on every raw flip, so sustained noise keeps
// extending the debounce window rather than eventually committing. That
// matches the sensor's observed behavior in the field and is intentional.
func (d *Detector) processChannel(ch Channel, st *ChannelState, active bool, now time.Time) *Event {
	if active != st.LastRaw {
		st.LastChange = now
	}

	var ev *Event
	if now.Sub(st.LastChange) >= d.debounce && active != st.Stable {
		st.Stable = active

		// Trigger only on the transition into the active level. The
		// return-to-idle commit is the rotation leaving the sensor zone,
		// not a new rotation. Cooldown is independent of debounce: the
		// channel may re-debounce freely but stays suppressed until the
		// cooldown elapses.
		if active && now.Sub(st.LastTrigger) >= d.cooldown {
			info := Channels[ch]
			ev = &Event{
				Timestamp:   now,
				Channel:     ch,
				FrequencyHz: info.FrequencyHz,
				Label:       info.Label,
			}
			st.LastTrigger = now
		}
	}

	st.LastRaw = active
	return ev
}

// Seeded reports whether the detector has taken its first sample.
func (d *Detector) Seeded() bool {
	return d.seeded
}

// StableStates returns the current debounced state of every channel.
func (d *Detector) StableStates() [NumChannels]bool {
	var out [NumChannels]bool
	for i := range d.channels {
		out[i] = d.channels[i].Stable
	}
	return out
}

// TriggerCounts returns the number of accepted triggers per channel since
// startup.
func (d *Detector) TriggerCounts() [NumChannels]int {
	return d.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (d *Detector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.counts,
	}
}
