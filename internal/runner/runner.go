// Package runner hosts the simulator in a concurrent service. The simulator
// itself is single-threaded and lock-free; the runner is the one place that
// serializes mutating calls, so the HTTP API and the tick loop never race.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/fallout-sim-service/internal/domain"
	"github.com/couchcryptid/fallout-sim-service/internal/observability"
	"github.com/couchcryptid/fallout-sim-service/internal/simulation"
)

// Publisher delivers summaries and snapshots to downstream consumers.
type Publisher interface {
	PublishSummary(ctx context.Context, summary domain.IncidentSummary) error
	PublishSnapshot(ctx context.Context, snapshot domain.ScenarioSnapshot) error
}

// Runner drives an active scenario forward on a fixed tick and exposes the
// simulator's read/write API behind a mutex.
type Runner struct {
	mu  sync.Mutex
	sim *simulation.Simulator

	clock     clockwork.Clock
	interval  time.Duration
	stepHours float64

	publisher Publisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Runner. interval is the wall-clock tick period; stepHours is
// the simulated time advanced per tick. Pass a nil publisher to disable
// snapshot publishing.
func New(sim *simulation.Simulator, clock clockwork.Clock, interval time.Duration, stepHours float64, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		sim:       sim,
		clock:     clock,
		interval:  interval,
		stepHours: stepHours,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the tick loop is running.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("tick loop has not started yet")
	}
	return nil
}

// Run executes the tick loop until the context is cancelled. Ticks are
// no-ops while the scenario is idle.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("runner started",
		"tick_interval", r.interval,
		"step_hours", r.stepHours,
		"zones", r.sim.Zones(),
	)
	r.ready.Store(true)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("runner stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			r.tick(ctx)
		}
	}
}

// tick advances an active scenario by one step and publishes the result.
func (r *Runner) tick(ctx context.Context) {
	r.mu.Lock()
	if !r.sim.Active() {
		r.mu.Unlock()
		return
	}

	start := r.clock.Now()
	snapshot, err := r.sim.Advance(r.stepHours)
	if err != nil {
		r.mu.Unlock()
		r.logger.Error("advance failed", "step_hours", r.stepHours, "error", err)
		return
	}
	r.updateGauges(snapshot)
	r.mu.Unlock()

	r.metrics.Ticks.Inc()
	r.publishSnapshot(ctx, snapshot)
	r.metrics.TickDuration.Observe(r.clock.Since(start).Seconds())
}

// Trigger starts (or overwrites) an incident and publishes its summary.
func (r *Runner) Trigger(ctx context.Context, groundZero int, yieldKT float64) (domain.IncidentSummary, error) {
	r.mu.Lock()
	summary, err := r.sim.Trigger(groundZero, yieldKT)
	if err != nil {
		r.mu.Unlock()
		return domain.IncidentSummary{}, err
	}
	r.metrics.IncidentsTriggered.Inc()
	r.metrics.ScenarioActive.Set(1)
	r.updateGauges(r.sim.Snapshot())
	r.mu.Unlock()

	r.logger.Info("incident triggered",
		"incident_id", summary.IncidentID,
		"ground_zero", summary.GroundZero,
		"yield_kt", summary.YieldKT,
		"threat_level", summary.ThreatLevel.String(),
		"evacuation_zones", summary.EvacuationZones,
	)

	if r.publisher != nil {
		if err := r.publisher.PublishSummary(ctx, summary); err != nil {
			r.logger.Warn("publish incident summary failed", "incident_id", summary.IncidentID, "error", err)
			r.metrics.PublishErrors.Inc()
		}
	}

	return summary, nil
}

// Advance performs a manual step outside the tick cadence, e.g. from the
// HTTP API while the service runs with a long tick interval.
func (r *Runner) Advance(ctx context.Context, dtHours float64) (domain.ScenarioSnapshot, error) {
	r.mu.Lock()
	snapshot, err := r.sim.Advance(dtHours)
	if err != nil {
		r.mu.Unlock()
		return domain.ScenarioSnapshot{}, err
	}
	active := r.sim.Active()
	if active {
		r.updateGauges(snapshot)
	}
	r.mu.Unlock()

	if active {
		r.metrics.Ticks.Inc()
		r.publishSnapshot(ctx, snapshot)
	}
	return snapshot, nil
}

// SetWind records wind conditions for future triggers.
func (r *Runner) SetWind(speedMS, directionDeg float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sim.SetWind(speedMS, directionDeg)
	r.logger.Info("wind conditions updated", "speed_m_s", speedMS, "direction_deg", directionDeg)
}

// Reset returns the scenario to idle and zeroes the state gauges.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sim.Reset()
	r.metrics.ScenarioActive.Set(0)
	r.metrics.ThreatLevel.Set(0)
	r.metrics.MaxRadiation.Set(0)
	r.metrics.EvacuatedZones.Set(0)
	r.logger.Info("scenario reset")
}

// Snapshot returns the current scenario state.
func (r *Runner) Snapshot() domain.ScenarioSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Snapshot()
}

// ZoneStatus returns the safety readout for one zone.
func (r *Runner) ZoneStatus(zone int) (domain.ZoneSafety, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.ZoneStatus(zone)
}

// Protocols returns the response actions for the current threat level.
func (r *Runner) Protocols() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.Protocols()
}

// SetPopulationFactor sets a zone's population weighting for resource
// allocation.
func (r *Runner) SetPopulationFactor(zone int, factor float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.sim.SetPopulationFactor(zone, factor); err != nil {
		return err
	}
	r.logger.Info("population factor updated", "zone", zone, "factor", factor)
	return nil
}

// Fallout returns a copy of the current deposition matrix.
func (r *Runner) Fallout() [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sim.FalloutDeposition()
}

func (r *Runner) publishSnapshot(ctx context.Context, snapshot domain.ScenarioSnapshot) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		r.logger.Warn("publish snapshot failed",
			"incident_id", snapshot.IncidentID,
			"elapsed_hours", snapshot.ElapsedHours,
			"error", err,
		)
		r.metrics.PublishErrors.Inc()
		return
	}
	r.metrics.SnapshotsPublished.Inc()
}

// updateGauges refreshes the scenario state gauges. Callers hold r.mu.
func (r *Runner) updateGauges(snapshot domain.ScenarioSnapshot) {
	var max float64
	for _, level := range snapshot.RadiationLevels {
		if level > max {
			max = level
		}
	}
	r.metrics.ThreatLevel.Set(float64(snapshot.ThreatLevel))
	r.metrics.MaxRadiation.Set(max)
	r.metrics.EvacuatedZones.Set(float64(len(snapshot.EvacuationZones)))
}
