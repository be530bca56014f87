package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

var ErrInvalidWindow = errors.New("timeline: invalid hours window")

// SnapStep is the drop and preview granularity in minutes.
const SnapStep = 15

// PixelsPerMinute is the density of the graphical grid.
const PixelsPerMinute = 4.0

// floorEpsilon absorbs float error when densities like 0.2 cells per minute
// divide an offset that sits exactly on a minute boundary.
const floorEpsilon = 1e-9

// Window is the visible-hours range of the timeline. Both ends are inclusive
// hours, so the grid spans EndHour-StartHour+1 hours.
type Window struct {
	StartHour int `json:"start"`
	EndHour   int `json:"end"`
}

func DefaultWindow() Window {
	return Window{StartHour: 8, EndHour: 19}
}

// Validate rejects windows that fall outside a single day or cross midnight.
func (w Window) Validate() error {
	if w.StartHour < 0 || w.EndHour > 23 || w.StartHour > w.EndHour {
		return fmt.Errorf("%w: %d-%d", ErrInvalidWindow, w.StartHour, w.EndHour)
	}
	return nil
}

// Hours returns the number of hour columns shown.
func (w Window) Hours() int {
	return w.EndHour - w.StartHour + 1
}

type Grid struct {
	Window      Window
	PxPerMinute float64
}

func NewGrid(w Window, pxPerMinute float64) Grid {
	if pxPerMinute <= 0 {
		pxPerMinute = PixelsPerMinute
	}
	return Grid{Window: w, PxPerMinute: pxPerMinute}
}

// TimeToOffset maps a clock time to its offset from the start of the window.
// Times before the window give negative offsets.
func (g Grid) TimeToOffset(c model.Clock) float64 {
	return float64((c.Hour-g.Window.StartHour)*60+c.Minute) * g.PxPerMinute
}

// MinutesAt converts an offset into whole minutes from the start of the window.
func (g Grid) MinutesAt(offset float64) int {
	return int(math.Floor(offset/g.PxPerMinute + floorEpsilon))
}

// OffsetToTime is the inverse of TimeToOffset with the minute snapped to the
// nearest quarter hour. The hour is not clamped.
func (g Grid) OffsetToTime(offset float64) model.Clock {
	raw := g.MinutesAt(offset)
	hour := floorDiv(raw, 60) + g.Window.StartHour
	minute := SnapMinutes(raw - floorDiv(raw, 60)*60)
	if minute == 60 {
		hour++
		minute = 0
	}
	return model.Clock{Hour: hour, Minute: minute}
}

// Width is the full extent of the grid.
func (g Grid) Width() float64 {
	return float64(g.Window.Hours()*60) * g.PxPerMinute
}

// HourMark is a labelled hour line on the grid.
type HourMark struct {
	Hour   int
	Offset float64
}

func (g Grid) HourMarks() []HourMark {
	marks := make([]HourMark, 0, g.Window.Hours())
	for h := g.Window.StartHour; h <= g.Window.EndHour; h++ {
		marks = append(marks, HourMark{Hour: h, Offset: g.TimeToOffset(model.Clock{Hour: h})})
	}
	return marks
}

// SnapMinutes rounds m to the nearest multiple of SnapStep, halves rounding up.
func SnapMinutes(m int) int {
	return floorDiv(2*m+SnapStep, 2*SnapStep) * SnapStep
}

// SnapClock snaps a clock to the quarter-hour grid. Snapping is idempotent.
func SnapClock(c model.Clock) model.Clock {
	return model.ClockFromMinutes(SnapMinutes(c.Minutes()))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
