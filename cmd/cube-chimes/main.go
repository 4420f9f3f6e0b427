// Command cube-chimes polls the toy's hall sensors and plays a note for
// each detected face rotation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/cube-chimes/internal/gpio"
	"github.com/sweeney/cube-chimes/internal/logic"
	"github.com/sweeney/cube-chimes/internal/mqtt"
	"github.com/sweeney/cube-chimes/internal/status"
	"github.com/sweeney/cube-chimes/internal/tone"
	"github.com/sweeney/cube-chimes/internal/web"
)

func main() {
	poll := flag.Duration("poll", 10*time.Millisecond, "Sensor polling interval")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	sensorPins := flag.String("sensor-pins", "", "Comma-separated BCM pins for the 8 hall sensors (default table order)")
	buzzerPin := flag.Int("buzzer-pin", tone.DefaultPin, "BCM pin for the piezo buzzer")
	printState := flag.Bool("print-state", false, "Print current sensor state and exit")
	httpAddr := flag.String("http", ":8080", "HTTP status address (empty to disable)")

	flag.Parse()

	pins, err := parsePins(*sensorPins)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(*poll, *broker, *heartbeat, pins, *buzzerPin, *printState, *httpAddr); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parsePins parses a comma-separated pin list, defaulting to the built-in
// table. Exactly one pin per sensor channel.
func parsePins(s string) ([]int, error) {
	if s == "" {
		return gpio.DefaultPins, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != logic.NumChannels {
		return nil, fmt.Errorf("sensor-pins: need %d pins, got %d", logic.NumChannels, len(parts))
	}

	pins := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("sensor-pins: bad pin %q: %w", p, err)
		}
		pins[i] = n
	}
	return pins, nil
}

func run(poll time.Duration, broker string, heartbeat time.Duration, pins []int, buzzerPin int, printState bool, httpAddr string) error {
	// Initialize GPIO
	reader, err := gpio.NewRealReader(pins)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer reader.Close()

	// Print state mode
	if printState {
		readings, err := reader.Read()
		if err != nil {
			return fmt.Errorf("read sensors: %w", err)
		}
		for i, info := range logic.Channels {
			state := "idle"
			if i < len(readings) && readings[i] {
				state = "MAGNET"
			}
			fmt.Printf("%-8s %3d Hz  %s\n", info.Label, info.FrequencyHz, state)
		}
		return nil
	}

	// Initialize buzzer
	buzzer, err := tone.NewRealOutput(buzzerPin)
	if err != nil {
		return fmt.Errorf("init buzzer: %w", err)
	}
	defer buzzer.Close()
	dispatcher := tone.NewDispatcher(buzzer, tone.DefaultGap)

	// Initialize MQTT (connects in the background; the toy plays without it)
	publisher := mqtt.NewRealPublisher(broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      poll.Milliseconds(),
		DebounceMs:  logic.DebounceWindow.Milliseconds(),
		CooldownMs:  logic.CooldownWindow.Milliseconds(),
		NoteMs:      tone.NoteDuration.Milliseconds(),
		GapMs:       tone.DefaultGap.Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	// Self-test the buzzer and signal readiness. Playback failure is
	// audible silence, not a reason to refuse to run.
	log.Printf("playing startup melody")
	if err := dispatcher.PlayAll(tone.StartupMelody()); err != nil {
		log.Printf("startup melody error: %v", err)
	}
	tracker.SetReady()

	log.Printf("started: poll=%v heartbeat=%v broker=%s buzzer=%d", poll, heartbeat, broker, buzzerPin)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(reader, dispatcher, publisher, publisher, tracker,
		logic.DebounceWindow, logic.CooldownWindow, heartbeat,
		time.Now, ticker.C, sigCh)
}

// notePlayer is the subset of tone.Dispatcher the poll loop needs.
type notePlayer interface {
	Play(frequencyHz int, duration time.Duration) error
}

func runLoop(reader gpio.Reader, player notePlayer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, debounce, cooldown, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	detector := logic.NewDetector(debounce, cooldown, startTime)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.SnapshotAt(event.Timestamp)
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			readings, err := reader.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			in := logic.Input{Time: t}
			for i := 0; i < logic.NumChannels && i < len(readings); i++ {
				in.Active[i] = readings[i]
			}

			events := detector.Process(in)

			for _, event := range events {
				log.Printf("note: %s %dHz", event.Label, event.FrequencyHz)

				// Blocking: the note (and inter-note gap) finishes before
				// the next poll cycle. Edges on other channels during
				// playback are missed; one speaker, one note.
				if err := player.Play(event.FrequencyHz, tone.NoteDuration); err != nil {
					log.Printf("play error: %v", err)
					// Don't crash on playback failure
				}

				if tracker != nil {
					tracker.SetLastNote(event.Label, event.FrequencyHz, event.Timestamp)
				}
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			// Check for heartbeat
			if hbData := detector.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v triggers=%v", hbData.Uptime, hbData.Counts)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(detector.StableStates(), detector.TriggerCounts())
					snap := tracker.SnapshotAt(hbData.Timestamp)
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(detector.StableStates(), detector.TriggerCounts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
