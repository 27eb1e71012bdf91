// Package playback paces delivery of a precomputed timeline at wall-clock
// cadence, one point per tick interval, independent of consumer latency.
//
// Pacing anchors against absolute deadlines (anchor + i*tick) instead of
// chaining relative delays; chained delays accumulate drift. When delivery
// falls behind schedule the inter-point delay compresses, but points are
// never skipped or reordered.
package playback

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/pkg/logger"
	"github.com/selivandex/spot-simulator/pkg/metrics"
	"github.com/selivandex/spot-simulator/pkg/models"
)

// Subscriber receives playback events. All callbacks are invoked from the
// playback goroutine, in strict chronological order, and block the next
// delivery until they return.
type Subscriber interface {
	OnPoint(point models.PricePoint)
	OnRegimeChange(regime models.VolatilityRegime, timestamp float64)
	OnOverrun(behind time.Duration)
	OnComplete()
	OnCancelled()
}

// Options tunes controller pacing
type Options struct {
	TickInterval     time.Duration // defaults to models.TickInterval
	OverrunThreshold time.Duration // defaults to 2s
}

// Controller replays an immutable timeline to a subscriber in real time.
//
// State machine: idle -> running -> paused <-> running -> completed|cancelled.
// Play is only valid from idle; completed and cancelled are terminal.
type Controller struct {
	timeline *models.Timeline
	sub      Subscriber
	tick     time.Duration
	overrun  time.Duration

	mu          sync.Mutex
	cond        *sync.Cond
	state       models.PlaybackState
	nextIndex   int
	anchor      time.Time
	anchorIndex int

	done chan struct{}
}

// NewController creates an idle controller over a finished timeline
func NewController(timeline *models.Timeline, sub Subscriber, opts Options) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = models.TickInterval
	}
	if opts.OverrunThreshold <= 0 {
		opts.OverrunThreshold = 2 * time.Second
	}

	c := &Controller{
		timeline: timeline,
		sub:      sub,
		tick:     opts.TickInterval,
		overrun:  opts.OverrunThreshold,
		state:    models.PlaybackIdle,
		done:     make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Play starts paced delivery on a dedicated goroutine.
// Valid only from the idle state.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.PlaybackIdle {
		return fmt.Errorf("play is only valid from idle, controller is %s", c.state)
	}

	c.setStateLocked(models.PlaybackRunning)
	c.anchor = time.Now()
	c.anchorIndex = 0

	go c.run()
	return nil
}

// Pause suspends delivery after any in-flight callback returns.
// The schedule anchor is discarded; Resume computes a fresh one.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.PlaybackRunning {
		return
	}
	c.setStateLocked(models.PlaybackPaused)
	c.cond.Broadcast()
}

// Resume continues delivery, scheduling the next point one tick from now
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.PlaybackPaused {
		return
	}
	c.setStateLocked(models.PlaybackRunning)
	c.anchor = time.Now().Add(c.tick)
	c.anchorIndex = c.nextIndex
	c.cond.Broadcast()
}

// Stop cancels playback. Idempotent; takes effect within one tick interval,
// after any in-flight callback has returned.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.PlaybackRunning && c.state != models.PlaybackPaused {
		return
	}
	c.setStateLocked(models.PlaybackCancelled)
	c.cond.Broadcast()
}

// State returns the current playback state
func (c *Controller) State() models.PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Emitted returns the number of points delivered so far
func (c *Controller) Emitted() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextIndex
}

// Done is closed once playback reaches a terminal state
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// run is the cooperative playback loop. Exactly one suspension point per
// iteration (the pacing sleep), never longer than one tick, so pause and
// stop are always observed within a tick interval.
func (c *Controller) run() {
	defer close(c.done)

	n := c.timeline.Len()
	lastRegime := models.VolatilityRegime("")
	warned := false

	for i := 0; i < n; i++ {
		c.mu.Lock()
		c.nextIndex = i
		c.mu.Unlock()

		var behind time.Duration
		for {
			c.mu.Lock()
			for c.state == models.PlaybackPaused {
				c.cond.Wait()
			}
			if c.state == models.PlaybackCancelled {
				c.mu.Unlock()
				c.finishCancelled(i)
				return
			}
			deadline := c.anchor.Add(time.Duration(i-c.anchorIndex) * c.tick)
			c.mu.Unlock()

			if wait := time.Until(deadline); wait > 0 {
				time.Sleep(wait)
				behind = 0
			} else {
				behind = -wait
			}

			// A pause or stop issued during the sleep must be honored
			// before this point is delivered.
			c.mu.Lock()
			state := c.state
			c.mu.Unlock()
			if state == models.PlaybackRunning {
				break
			}
		}

		if behind > c.overrun {
			if !warned {
				logger.Warn("playback running behind schedule",
					zap.Duration("behind", behind),
					zap.Int("index", i),
				)
				metrics.OverrunWarns.Inc()
				c.sub.OnOverrun(behind)
				warned = true
			}
		} else {
			warned = false
		}

		point := c.timeline.At(i)
		if point.Regime != lastRegime {
			lastRegime = point.Regime
			if i > 0 {
				metrics.RegimeSwitches.Inc()
			}
			c.sub.OnRegimeChange(point.Regime, point.Timestamp)
		}

		c.sub.OnPoint(point)

		metrics.PointsEmitted.Inc()
		metrics.CurrentPrice.Set(point.Price)
		if point.JumpOccurred {
			metrics.JumpsEmitted.Inc()
		}

		c.mu.Lock()
		c.nextIndex = i + 1
		c.mu.Unlock()
	}

	c.mu.Lock()
	cancelled := c.state == models.PlaybackCancelled
	if !cancelled {
		c.setStateLocked(models.PlaybackCompleted)
	}
	c.mu.Unlock()

	if cancelled {
		c.finishCancelled(n)
		return
	}

	logger.Info("playback completed", zap.Int("points", n))
	c.sub.OnComplete()
}

func (c *Controller) finishCancelled(delivered int) {
	logger.Info("playback cancelled", zap.Int("points_delivered", delivered))
	c.sub.OnCancelled()
}

// setStateLocked transitions state and mirrors it to the metrics gauge.
// Caller must hold c.mu.
func (c *Controller) setStateLocked(state models.PlaybackState) {
	c.state = state
	metrics.PlaybackState.Set(stateGaugeValue(state))
}

func stateGaugeValue(state models.PlaybackState) float64 {
	switch state {
	case models.PlaybackRunning:
		return 1
	case models.PlaybackPaused:
		return 2
	case models.PlaybackCompleted:
		return 3
	case models.PlaybackCancelled:
		return 4
	default:
		return 0
	}
}
