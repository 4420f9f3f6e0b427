package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
	"github.com/sweeney/cube-chimes/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		PollMs:      10,
		DebounceMs:  100,
		CooldownMs:  500,
		NoteMs:      200,
		GapMs:       50,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":8080",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)

	var magnets [logic.NumChannels]bool
	var counts [logic.NumChannels]int
	magnets[logic.Up] = true
	counts[logic.Up] = 5
	tr.Update(magnets, counts)
	tr.SetReady()
	tr.SetMQTTConnected(true)
	tr.SetLastNote("Up", 330, time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC))

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if !sj.Status.Ready {
		t.Error("expected ready")
	}
	if len(sj.Status.Channels) != logic.NumChannels {
		t.Fatalf("expected %d channels, got %d", logic.NumChannels, len(sj.Status.Channels))
	}
	if !sj.Status.Channels[logic.Up].Magnet {
		t.Error("expected Up magnet present")
	}
	if sj.Status.Channels[logic.Up].Triggers != 5 {
		t.Errorf("Up triggers: got %d, want 5", sj.Status.Channels[logic.Up].Triggers)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT connected")
	}
	if sj.Status.LastNote == nil || sj.Status.LastNote.Label != "Up" {
		t.Errorf("unexpected last note: %+v", sj.Status.LastNote)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.SetReady()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)

	// Every channel label and its note should appear in the table.
	for _, info := range logic.Channels {
		if !strings.Contains(html, info.Label) {
			t.Errorf("page missing channel label %q", info.Label)
		}
	}
	if !strings.Contains(html, "330 Hz") {
		t.Error("page missing note frequency")
	}
	if !strings.Contains(html, "melody done") {
		t.Error("page missing ready marker")
	}
}

func TestIndexNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
