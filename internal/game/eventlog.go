package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/pong/internal/pong"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 12
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Tick     int
	Side     string // "P", "O" or "--"
	Category string
	Message  string
}

// EventLog is a ring buffer of recent match events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, side, category, msg string) {
	el.entries[el.head] = EventEntry{
		Tick:     tick,
		Side:     side,
		Category: category,
		Message:  msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// AddSim copies simulation log entries. Per-tick ball state is skipped.
func (el *EventLog) AddSim(entries []pong.SimLogEntry) {
	for _, e := range entries {
		if e.Category == pong.CatBall {
			continue
		}
		el.Add(e.Tick, e.Side, e.Category, fmt.Sprintf("%s %s", e.Key, e.Value))
	}
}

// Len is the number of stored entries.
func (el *EventLog) Len() int { return el.count }

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

var categoryColors = map[string]color.RGBA{
	pong.CatWall:    {R: 120, G: 120, B: 140, A: 255},
	pong.CatPaddle:  {R: 230, G: 230, B: 230, A: 255},
	pong.CatScore:   {R: 230, G: 80, B: 80, A: 255},
	pong.CatPowerUp: {R: 240, G: 210, B: 40, A: 255},
	pong.CatSetting: {R: 80, G: 160, B: 230, A: 255},
	pong.CatLoop:    {R: 80, G: 200, B: 120, A: 255},
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 24, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 60, G: 60, B: 90, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 34, G: 34, B: 48, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 150, G: 150, B: 150, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Side, e.Message), panelX+12, y-2)
		y += logLineHeight
	}
}
