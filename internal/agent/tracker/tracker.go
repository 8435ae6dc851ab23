// Package tracker converts a polled stream of foreground window snapshots
// into duration-annotated activity samples.
package tracker

import (
	"fmt"
	"time"

	"github.com/deskwatch/deskwatch/internal/agent/probe"
)

// Sample is the outcome of one tick. Duration reports how long the
// previously observed window held focus: zero on the very first tick, the
// closed interval on a focus change, and a monotonically growing value while
// the same window stays focused.
type Sample struct {
	WindowTitle string
	ProcessName string
	StartedAt   time.Time
	ObservedAt  time.Time
	Duration    float64
}

// Tracker owns exactly the previous window identity and its start time.
// It retains no history beyond that pair. Not safe for concurrent use; the
// poll loop is single-threaded.
type Tracker struct {
	lastWindow    *string
	lastTimestamp time.Time
}

// New returns a Tracker with no observed window yet.
func New() *Tracker { return &Tracker{} }

// Tick folds one probe snapshot into the tracker state. A probe failure
// degrades the window identity to an error marker and the tick proceeds;
// tracking never stops on probe failure.
func (t *Tracker) Tick(win probe.Window, probeErr error, now time.Time) Sample {
	title, proc := win.Title, win.Process
	if probeErr != nil {
		title = fmt.Sprintf("probe error -- %v", probeErr)
		proc = "unknown"
	}

	var duration float64
	if t.lastWindow == nil || title != *t.lastWindow {
		if t.lastWindow != nil {
			duration = now.Sub(t.lastTimestamp).Seconds()
		}
		t.lastWindow = &title
		t.lastTimestamp = now
	} else {
		// Same window still focused: the reported duration keeps growing
		// relative to when it gained focus.
		duration = now.Sub(t.lastTimestamp).Seconds()
	}

	return Sample{
		WindowTitle: title,
		ProcessName: proc,
		StartedAt:   t.lastTimestamp,
		ObservedAt:  now,
		Duration:    duration,
	}
}
