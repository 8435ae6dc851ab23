// Package agentservice wires and runs the deskwatch workstation agent.
package agentservice

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/deskwatch/deskwatch/internal/agent/probe"
	"github.com/deskwatch/deskwatch/internal/agent/reporter"
	"github.com/deskwatch/deskwatch/internal/agent/sysmon"
	"github.com/deskwatch/deskwatch/internal/agent/tracker"
	"github.com/deskwatch/deskwatch/internal/config"
	"github.com/deskwatch/deskwatch/internal/logger"
	"github.com/deskwatch/deskwatch/internal/model"
)

// Run starts the single-threaded poll loop and blocks until SIGINT/SIGTERM.
// Each tick is fully sequential: probe, track, sample, report, then wait out
// the remainder of the interval.
func Run() error {
	log := logger.New("deskwatch-agent")

	cfg, err := config.NewAgent()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := probe.New()
	track := tracker.New()
	sampler := sysmon.NewSampler(time.Duration(cfg.CPUSampleSeconds) * time.Second)
	rep := reporter.New(cfg.ServerURL)
	userIP, userName := sysmon.Identity()

	interval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	log.Info().
		Str("server_url", cfg.ServerURL).
		Dur("poll_interval", interval).
		Str("user_ip", userIP).
		Str("user_name", userName).
		Msg("Agent starting")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		tick(ctx, log, p, track, sampler, rep, userIP, userName)
		select {
		case <-ctx.Done():
			log.Info().Msg("Agent stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// tick performs one sampling pass. Probe and delivery failures are logged
// and never interrupt the schedule.
func tick(ctx context.Context, log zerolog.Logger, p probe.Probe, track *tracker.Tracker, sampler *sysmon.Sampler, rep *reporter.Reporter, userIP, userName string) {
	win, probeErr := p.Active()
	if probeErr != nil {
		log.Warn().Err(probeErr).Msg("window probe failed")
	}

	sample := track.Tick(win, probeErr, time.Now())

	cpuPct, ramPct, err := sampler.Sample(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("resource sample failed")
	}

	rec := &model.UsageRecord{
		UserIP:      userIP,
		UserName:    userName,
		WindowTitle: sample.WindowTitle,
		ProcessName: sample.ProcessName,
		Timestamp:   sample.ObservedAt,
		CPUUsage:    cpuPct,
		RAMUsage:    ramPct,
		Duration:    sample.Duration,
	}

	if err := rep.Report(ctx, rec); err != nil {
		log.Warn().Err(err).Str("window_title", rec.WindowTitle).Msg("usage report delivery failed")
		return
	}
	log.Debug().
		Str("window_title", rec.WindowTitle).
		Float64("duration", rec.Duration).
		Msg("usage report sent")
}
