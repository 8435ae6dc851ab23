//go:build windows

package probe

import (
	"fmt"
	"unsafe"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

type windowsProbe struct{}

func newPlatformProbe() Probe { return windowsProbe{} }

// Active reads the foreground window title via user32 and resolves the owning
// process name from its pid.
func (windowsProbe) Active() (Window, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Window{}, fmt.Errorf("no foreground window")
	}

	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	title := windows.UTF16ToString(buf[:n])

	var pid uint32
	_, _, _ = procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return Window{Title: title}, nil
	}

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return Window{Title: title}, nil
	}
	name, err := proc.Name()
	if err != nil {
		return Window{Title: title}, nil
	}
	return Window{Title: title, Process: name}, nil
}
