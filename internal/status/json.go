package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Ready         bool          `json:"ready"`
	Channels      []ChannelJSON `json:"channels"`
	LastNote      *LastNoteJSON `json:"last_note,omitempty"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Network       *NetworkJSON  `json:"network,omitempty"`
	Config        ConfigJSON    `json:"config"`
}

// ChannelJSON is the JSON representation of one sensor channel.
type ChannelJSON struct {
	Label    string `json:"label"`
	NoteHz   int    `json:"note_hz"`
	Magnet   bool   `json:"magnet"`
	Triggers int    `json:"triggers"`
}

// LastNoteJSON is the JSON representation of the last played note.
type LastNoteJSON struct {
	Label  string `json:"label"`
	NoteHz int    `json:"note_hz"`
	At     string `json:"at"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	CooldownMs  int64  `json:"cooldown_ms"`
	NoteMs      int64  `json:"note_ms"`
	GapMs       int64  `json:"gap_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	channels := make([]ChannelJSON, logic.NumChannels)
	for i, info := range logic.Channels {
		channels[i] = ChannelJSON{
			Label:    info.Label,
			NoteHz:   info.FrequencyHz,
			Magnet:   snap.Magnets[i],
			Triggers: snap.Counts[i],
		}
	}

	inner := StatusInner{
		Ready:         snap.Ready,
		Channels:      channels,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			CooldownMs:  snap.Config.CooldownMs,
			NoteMs:      snap.Config.NoteMs,
			GapMs:       snap.Config.GapMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}

	if snap.Last != nil {
		inner.LastNote = &LastNoteJSON{
			Label:  snap.Last.Label,
			NoteHz: snap.Last.FrequencyHz,
			At:     snap.Last.At.UTC().Format(time.RFC3339),
		}
	}

	return inner
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
