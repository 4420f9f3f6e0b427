package mqtt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp:   time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Channel:     logic.Up,
		FrequencyHz: 330,
		Label:       "Up",
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Cube.Timestamp != "2026-03-15T09:30:00Z" {
		t.Errorf("timestamp: got %q", parsed.Cube.Timestamp)
	}
	if parsed.Cube.Channel != int(logic.Up) {
		t.Errorf("channel: got %d, want %d", parsed.Cube.Channel, int(logic.Up))
	}
	if parsed.Cube.Label != "Up" {
		t.Errorf("label: got %q, want Up", parsed.Cube.Label)
	}
	if parsed.Cube.NoteHz != 330 {
		t.Errorf("note_hz: got %d, want 330", parsed.Cube.NoteHz)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed SystemPayload
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", parsed.System.Event)
	}
	if parsed.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", parsed.System.Reason)
	}
	if parsed.System.Timestamp != "2026-03-15T09:30:00Z" {
		t.Errorf("timestamp: got %q", parsed.System.Timestamp)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC),
		Event:     "STARTUP",
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := raw["system"]["reason"]; ok {
		t.Error("empty reason should be omitted")
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"HEARTBEAT"}}`)
	event := SystemEvent{
		Timestamp:  time.Now(),
		Event:      "HEARTBEAT",
		RawPayload: raw,
	}

	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", data)
	}
}

func TestFakePublisherRecords(t *testing.T) {
	f := NewFakePublisher()

	event := logic.Event{
		Timestamp:   time.Now(),
		Channel:     logic.Back,
		FrequencyHz: 392,
		Label:       "Back",
	}
	if err := f.Publish(event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.Events))
	}
	if f.Events[0].Channel != logic.Back {
		t.Errorf("channel: got %v", f.Events[0].Channel)
	}
	if len(f.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(f.Payloads))
	}

	var parsed Payload
	if err := json.Unmarshal(f.Payloads[0], &parsed); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if parsed.Cube.NoteHz != 392 {
		t.Errorf("note_hz: got %d, want 392", parsed.Cube.NoteHz)
	}
}
