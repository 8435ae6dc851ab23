//go:build linux

package probe

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

type linuxProbe struct{}

func newPlatformProbe() Probe { return linuxProbe{} }

// Active shells out to xdotool for the active window id, name, and pid. The
// process name is resolved from the pid when available.
func (linuxProbe) Active() (Window, error) {
	winID, err := xdotool("getactivewindow")
	if err != nil {
		return Window{}, fmt.Errorf("xdotool getactivewindow: %w", err)
	}

	title, err := xdotool("getwindowname", winID)
	if err != nil {
		return Window{}, fmt.Errorf("xdotool getwindowname: %w", err)
	}

	win := Window{Title: title}
	pidStr, err := xdotool("getwindowpid", winID)
	if err != nil {
		return win, nil
	}
	pid, err := strconv.ParseInt(pidStr, 10, 32)
	if err != nil {
		return win, nil
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return win, nil
	}
	if name, err := proc.Name(); err == nil {
		win.Process = name
	}
	return win, nil
}

func xdotool(args ...string) (string, error) {
	out, err := exec.Command("xdotool", args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
