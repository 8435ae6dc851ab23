package tracker

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deskwatch/deskwatch/internal/agent/probe"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestFirstTickDurationIsZero(t *testing.T) {
	tr := New()
	s := tr.Tick(probe.Window{Title: "Editor", Process: "editor.exe"}, nil, t0)
	if s.Duration != 0 {
		t.Fatalf("first tick duration = %v, want 0", s.Duration)
	}
	if s.WindowTitle != "Editor" || s.ProcessName != "editor.exe" {
		t.Fatalf("unexpected sample identity: %+v", s)
	}
	if !s.StartedAt.Equal(t0) || !s.ObservedAt.Equal(t0) {
		t.Fatalf("unexpected sample times: %+v", s)
	}
}

func TestUnchangedWindowDurationGrows(t *testing.T) {
	tr := New()
	win := probe.Window{Title: "Google Chrome", Process: "chrome.exe"}
	tr.Tick(win, nil, t0)

	var prev float64
	for i := 1; i <= 5; i++ {
		s := tr.Tick(win, nil, t0.Add(time.Duration(i)*5*time.Second))
		if s.Duration < prev {
			t.Fatalf("duration decreased: %v after %v", s.Duration, prev)
		}
		if want := float64(i * 5); s.Duration != want {
			t.Fatalf("tick %d duration = %v, want %v", i, s.Duration, want)
		}
		if !s.StartedAt.Equal(t0) {
			t.Fatalf("tick %d start moved to %v", i, s.StartedAt)
		}
		prev = s.Duration
	}
}

func TestWindowChangeReportsPreviousDuration(t *testing.T) {
	tr := New()
	tr.Tick(probe.Window{Title: "A"}, nil, t0)

	// A held focus for 12s before B appears.
	s := tr.Tick(probe.Window{Title: "B"}, nil, t0.Add(12*time.Second))
	if s.Duration != 12 {
		t.Fatalf("change duration = %v, want 12", s.Duration)
	}
	if s.WindowTitle != "B" {
		t.Fatalf("sample title = %q, want B", s.WindowTitle)
	}
	if !s.StartedAt.Equal(t0.Add(12 * time.Second)) {
		t.Fatalf("new interval start = %v", s.StartedAt)
	}

	// B's own clock starts at the change instant.
	s = tr.Tick(probe.Window{Title: "B"}, nil, t0.Add(17*time.Second))
	if s.Duration != 5 {
		t.Fatalf("duration after change = %v, want 5", s.Duration)
	}
}

func TestProbeFailureDegradesButKeepsTicking(t *testing.T) {
	tr := New()
	tr.Tick(probe.Window{Title: "A"}, nil, t0)

	s := tr.Tick(probe.Window{}, errors.New("display gone"), t0.Add(5*time.Second))
	if !strings.Contains(s.WindowTitle, "probe error") {
		t.Fatalf("degraded title = %q", s.WindowTitle)
	}
	if s.ProcessName != "unknown" {
		t.Fatalf("degraded process = %q", s.ProcessName)
	}
	// The marker closes A's interval like any other focus change.
	if s.Duration != 5 {
		t.Fatalf("duration = %v, want 5", s.Duration)
	}

	// Recovery is a change back to the real window.
	s = tr.Tick(probe.Window{Title: "A"}, nil, t0.Add(10*time.Second))
	if s.Duration != 5 {
		t.Fatalf("recovery duration = %v, want 5", s.Duration)
	}
}

func TestRepeatedProbeFailuresShareOneInterval(t *testing.T) {
	tr := New()
	failure := errors.New("display gone")
	tr.Tick(probe.Window{}, failure, t0)

	s := tr.Tick(probe.Window{}, failure, t0.Add(5*time.Second))
	if s.Duration != 5 {
		t.Fatalf("identical failure marker should not reset the interval, duration = %v", s.Duration)
	}
}
