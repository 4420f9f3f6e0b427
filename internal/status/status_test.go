package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:      10,
		DebounceMs:  100,
		CooldownMs:  500,
		NoteMs:      200,
		GapMs:       50,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":8080",
	}
}

func TestTrackerUpdateAndSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	var magnets [logic.NumChannels]bool
	var counts [logic.NumChannels]int
	magnets[logic.Up] = true
	counts[logic.Up] = 3
	counts[logic.Left] = 1

	tr.Update(magnets, counts)
	tr.SetMQTTConnected(true)
	tr.SetReady()
	tr.SetLastNote("Up", 330, start.Add(time.Minute))

	snap := tr.SnapshotAt(start.Add(2 * time.Minute))

	if !snap.Ready {
		t.Error("expected ready")
	}
	if !snap.Magnets[logic.Up] || snap.Magnets[logic.Down] {
		t.Errorf("unexpected magnet states: %v", snap.Magnets)
	}
	if snap.Counts[logic.Up] != 3 || snap.Counts[logic.Left] != 1 {
		t.Errorf("unexpected counts: %v", snap.Counts)
	}
	if snap.Last == nil || snap.Last.Label != "Up" || snap.Last.FrequencyHz != 330 {
		t.Errorf("unexpected last note: %+v", snap.Last)
	}
	if !snap.MQTTConnected {
		t.Error("expected MQTT connected")
	}
	if snap.Uptime() != 2*time.Minute {
		t.Errorf("expected uptime 2m, got %v", snap.Uptime())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap1 := tr.SnapshotAt(start)

	var counts [logic.NumChannels]int
	counts[logic.Front] = 7
	tr.Update([logic.NumChannels]bool{}, counts)

	if snap1.Counts[logic.Front] != 0 {
		t.Error("snapshot should not see later updates")
	}

	snap2 := tr.SnapshotAt(start)
	if snap2.Counts[logic.Front] != 7 {
		t.Error("new snapshot should see the update")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	var counts [logic.NumChannels]int
	counts[logic.Equator] = 2
	tr.Update([logic.NumChannels]bool{}, counts)
	tr.SetReady()
	tr.SetLastNote("Equator", 523, start.Add(30*time.Second))

	data := FormatJSON(tr.SnapshotAt(start.Add(time.Minute)))

	var sj StatusJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !sj.Status.Ready {
		t.Error("expected ready")
	}
	if len(sj.Status.Channels) != logic.NumChannels {
		t.Fatalf("expected %d channels, got %d", logic.NumChannels, len(sj.Status.Channels))
	}
	if sj.Status.Channels[logic.Up].Label != "Up" || sj.Status.Channels[logic.Up].NoteHz != 330 {
		t.Errorf("unexpected Up channel: %+v", sj.Status.Channels[logic.Up])
	}
	if sj.Status.Channels[logic.Equator].Triggers != 2 {
		t.Errorf("expected 2 triggers on Equator, got %d", sj.Status.Channels[logic.Equator].Triggers)
	}
	if sj.Status.LastNote == nil || sj.Status.LastNote.NoteHz != 523 {
		t.Errorf("unexpected last note: %+v", sj.Status.LastNote)
	}
	if sj.Status.UptimeSeconds != 60 {
		t.Errorf("expected uptime 60s, got %d", sj.Status.UptimeSeconds)
	}
	if sj.Status.Event != "" {
		t.Errorf("web JSON should not carry an event, got %q", sj.Status.Event)
	}
	if sj.Status.Config.CooldownMs != 500 {
		t.Errorf("expected cooldown 500ms in config, got %d", sj.Status.Config.CooldownMs)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())
	tr.SetNetwork(&NetworkInfo{Type: "wifi", IP: "192.168.1.50", Status: "connected", SSID: "Home"})

	data := FormatStatusEvent(tr.SnapshotAt(start.Add(time.Second)), "SHUTDOWN", "SIGTERM")

	var sj StatusJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sj.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", sj.Status.Event)
	}
	if sj.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", sj.Status.Reason)
	}
	if sj.Status.Network == nil || sj.Status.Network.SSID != "Home" {
		t.Errorf("unexpected network: %+v", sj.Status.Network)
	}
}
