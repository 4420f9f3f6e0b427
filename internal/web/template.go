package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/cube-chimes/internal/logic"
	"github.com/sweeney/cube-chimes/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

// channelRow is one row of the channel table.
type channelRow struct {
	Label    string
	NoteHz   int
	Magnet   bool
	Triggers int
}

// indexData is the template context.
type indexData struct {
	status.Snapshot
	Rows []channelRow
}

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := indexData{Snapshot: snap}
	for i, info := range logic.Channels {
		data.Rows = append(data.Rows, channelRow{
			Label:    info.Label,
			NoteHz:   info.FrequencyHz,
			Magnet:   snap.Magnets[i],
			Triggers: snap.Counts[i],
		})
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("render status page: %v", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Cube Chimes</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.magnet { color: green; font-weight: bold; }
.idle { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Cube Chimes</h1>

<h2>Channels</h2>
<table>
<tr><th>Rotation</th><td>Note</td><td>Magnet</td><td>Triggers</td></tr>
{{range .Rows}}<tr><th>{{.Label}}</th><td>{{.NoteHz}} Hz</td><td class="{{if .Magnet}}magnet{{else}}idle{{end}}">{{if .Magnet}}present{{else}}idle{{end}}</td><td>{{.Triggers}}</td></tr>
{{end}}</table>

<h2>Playback</h2>
<table>
<tr><th>Ready</th><td>{{if .Ready}}yes (melody done){{else}}starting{{end}}</td></tr>
{{if .Last}}<tr><th>Last note</th><td>{{.Last.Label}} — {{.Last.FrequencyHz}} Hz at {{.Last.At.UTC.Format "15:04:05"}}</td></tr>{{end}}
<tr><th>Note / gap</th><td>{{.Config.NoteMs}}ms + {{.Config.GapMs}}ms</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Cooldown</th><td>{{.Config.CooldownMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`
