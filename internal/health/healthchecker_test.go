package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type flakyPinger struct {
	failing atomic.Bool
}

func (p *flakyPinger) HealthPing(context.Context) error {
	if p.failing.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingCheckerTransitions(t *testing.T) {
	p := &flakyPinger{}
	hc := NewPingChecker("store", p, zerolog.Nop(), time.Second)
	require.False(t, hc.IsHealthy(), "checker must start unhealthy")
	require.Equal(t, "store", hc.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx, 10*time.Millisecond)

	require.Eventually(t, hc.IsHealthy, time.Second, 5*time.Millisecond)

	p.failing.Store(true)
	require.Eventually(t, func() bool { return !hc.IsHealthy() }, time.Second, 5*time.Millisecond)

	p.failing.Store(false)
	require.Eventually(t, hc.IsHealthy, time.Second, 5*time.Millisecond)
}

type staticChecker struct {
	healthy atomic.Bool
}

func (c *staticChecker) Name() string                         { return "static" }
func (c *staticChecker) IsHealthy() bool                      { return c.healthy.Load() }
func (c *staticChecker) Start(context.Context, time.Duration) {}

func TestServiceHealthRequiresAllDependencies(t *testing.T) {
	a, b := &staticChecker{}, &staticChecker{}
	a.healthy.Store(true)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Start(ctx, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	require.False(t, svc.IsHealthy(), "one unhealthy dependency keeps the service down")

	b.healthy.Store(true)
	require.Eventually(t, svc.IsHealthy, time.Second, 5*time.Millisecond)
}
