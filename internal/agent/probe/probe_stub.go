//go:build !windows && !linux

package probe

type stubProbe struct{}

func newPlatformProbe() Probe { return stubProbe{} }

func (stubProbe) Active() (Window, error) { return Window{}, ErrUnsupported }
