// Package session is the thin control surface over one simulation run:
// generate the trajectory, start paced playback, expose pause/resume/stop
// and a live snapshot. The session is an explicit object handed around by
// reference; there is no implicit global "current simulation".
package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/internal/params"
	"github.com/selivandex/spot-simulator/internal/playback"
	"github.com/selivandex/spot-simulator/internal/timeline"
	"github.com/selivandex/spot-simulator/pkg/logger"
	"github.com/selivandex/spot-simulator/pkg/models"
)

// Session drives a single simulation run from generation to terminal playback
// state. Parameters are locked once Start succeeds. A session is not reusable;
// create a new one per run.
type Session struct {
	mu         sync.RWMutex
	parameters models.SimulationParameters
	seed       int64
	timeline   *models.Timeline
	controller *playback.Controller

	currentPrice  float64
	elapsed       float64
	regime        models.VolatilityRegime
	emittedPoints int
}

// New creates an empty session
func New() *Session {
	return &Session{}
}

// Start validates parameters, generates the full trajectory and begins
// real-time playback to the subscriber. Valid exactly once per session.
func (s *Session) Start(p models.SimulationParameters, sub playback.Subscriber, opts playback.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.controller != nil {
		return fmt.Errorf("session already started")
	}
	if err := params.Validate(p); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if sub == nil {
		sub = nopSubscriber{}
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tl, err := timeline.Generate(p, seed)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	s.parameters = p
	s.seed = seed
	s.timeline = tl
	s.controller = playback.NewController(tl, &tap{session: s, next: sub}, opts)

	logger.Info("session starting",
		zap.Float64("max_volatility", p.MaxVolatility),
		zap.Float64("mean_reversion_strength", p.MeanReversionStrength),
		zap.Float64("jump_frequency", p.JumpFrequency),
		zap.Int64("seed", seed),
	)

	return s.controller.Play()
}

// Pause suspends playback
func (s *Session) Pause() {
	if c := s.getController(); c != nil {
		c.Pause()
	}
}

// Resume continues a paused playback
func (s *Session) Resume() {
	if c := s.getController(); c != nil {
		c.Resume()
	}
}

// Stop cancels the run. Idempotent.
func (s *Session) Stop() {
	if c := s.getController(); c != nil {
		c.Stop()
	}
}

// Done is closed when playback reaches a terminal state.
// Returns nil before Start.
func (s *Session) Done() <-chan struct{} {
	if c := s.getController(); c != nil {
		return c.Done()
	}
	return nil
}

// Snapshot returns the externally visible state of the run
func (s *Session) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		State:         models.PlaybackIdle,
		CurrentPrice:  s.currentPrice,
		Elapsed:       s.elapsed,
		Regime:        s.regime,
		EmittedPoints: s.emittedPoints,
	}
	if s.controller != nil {
		snap.State = s.controller.State()
	}
	return snap
}

// Timeline exposes the immutable trajectory for read-only consumers.
// Returns nil before Start.
func (s *Session) Timeline() *models.Timeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeline
}

// Seed returns the seed the run was generated with
func (s *Session) Seed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

func (s *Session) getController() *playback.Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller
}

// tap records snapshot state from the playback stream before forwarding
// events to the external subscriber
type tap struct {
	session *Session
	next    playback.Subscriber
}

func (t *tap) OnPoint(point models.PricePoint) {
	s := t.session
	s.mu.Lock()
	s.currentPrice = point.Price
	s.elapsed = point.Timestamp
	s.regime = point.Regime
	s.emittedPoints++
	s.mu.Unlock()

	t.next.OnPoint(point)
}

func (t *tap) OnRegimeChange(regime models.VolatilityRegime, timestamp float64) {
	t.next.OnRegimeChange(regime, timestamp)
}

func (t *tap) OnOverrun(behind time.Duration) {
	t.next.OnOverrun(behind)
}

func (t *tap) OnComplete() {
	t.next.OnComplete()
}

func (t *tap) OnCancelled() {
	t.next.OnCancelled()
}

type nopSubscriber struct{}

func (nopSubscriber) OnPoint(models.PricePoint)                       {}
func (nopSubscriber) OnRegimeChange(models.VolatilityRegime, float64) {}
func (nopSubscriber) OnOverrun(time.Duration)                         {}
func (nopSubscriber) OnComplete()                                     {}
func (nopSubscriber) OnCancelled()                                    {}
