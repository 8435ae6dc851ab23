// Package probe reads the OS foreground window. Platform support is selected
// once at startup via build tags; unsupported platforms get a stub that
// always fails, which the tracker degrades gracefully.
package probe

import "errors"

// Window identifies the application window currently receiving input focus.
type Window struct {
	Title   string
	Process string
}

// Probe is a point-in-time read of the foreground window.
type Probe interface {
	Active() (Window, error)
}

// ErrUnsupported is returned by the stub probe on platforms without
// foreground window introspection.
var ErrUnsupported = errors.New("foreground window introspection not supported on this platform")

// New returns the probe for the current platform.
func New() Probe { return newPlatformProbe() }
