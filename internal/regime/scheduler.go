// Package regime owns the volatility regime state machine.
// A new regime is drawn uniformly every 30 seconds of simulated time;
// draws are independent, so immediate repeats are expected behavior.
package regime

import (
	"math/rand"

	"github.com/selivandex/spot-simulator/pkg/models"
)

// Scheduler tracks the active volatility regime and its switching schedule.
// It holds no price state and is not safe for concurrent use.
type Scheduler struct {
	rng          *rand.Rand
	current      models.VolatilityRegime
	segmentStart float64
	nextSwitch   float64
}

// NewScheduler draws the initial regime, valid for the first 30-second segment
func NewScheduler(rng *rand.Rand) *Scheduler {
	s := &Scheduler{
		rng:        rng,
		nextSwitch: models.RegimeSwitchInterval,
	}
	s.current = s.draw()
	return s
}

// Advance switches to a freshly drawn regime once elapsed has crossed a
// 30-second boundary since the last switch. Returns true when a switch happened.
func (s *Scheduler) Advance(elapsed float64) bool {
	if elapsed-s.segmentStart < models.RegimeSwitchInterval {
		return false
	}

	s.current = s.draw()
	s.segmentStart = elapsed
	s.nextSwitch = elapsed + models.RegimeSwitchInterval
	return true
}

// Current returns the active regime
func (s *Scheduler) Current() models.VolatilityRegime {
	return s.current
}

// NextSwitchTime returns the simulated time of the next scheduled switch
func (s *Scheduler) NextSwitchTime() float64 {
	return s.nextSwitch
}

// draw selects a regime uniformly, independent of the current one
func (s *Scheduler) draw() models.VolatilityRegime {
	return models.Regimes[s.rng.Intn(len(models.Regimes))]
}
