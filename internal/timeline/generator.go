// Package timeline precomputes the full price trajectory of a run.
//
// Generation is synchronous and completes before any playback starts; the
// strict separation between computing the trajectory and pacing its delivery
// is what keeps computation latency out of the real-time schedule.
package timeline

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/internal/engine"
	"github.com/selivandex/spot-simulator/internal/regime"
	"github.com/selivandex/spot-simulator/pkg/logger"
	"github.com/selivandex/spot-simulator/pkg/models"
)

// Generate runs the full 900-tick simulation in one pass and returns the
// completed trajectory. The rng built from seed must not be shared with any
// other generation run, otherwise determinism per seed is lost.
//
// A partial trajectory is never returned: any invariant violation aborts
// the whole run.
func Generate(p models.SimulationParameters, seed int64) (*models.Timeline, error) {
	rng := rand.New(rand.NewSource(seed))
	scheduler := regime.NewScheduler(rng)

	points := make([]models.PricePoint, 0, models.TotalTicks)
	price := models.LongTermMean
	jumps := 0
	switches := 0

	for i := 0; i < models.TotalTicks; i++ {
		elapsed := float64(i) * models.TickSeconds
		if scheduler.Advance(elapsed) {
			switches++
		}

		point := engine.Step(price, elapsed, scheduler.Current(), p, models.TickSeconds, rng)

		// Invariant check, not a recoverable condition: the engine's final
		// clamp makes an out-of-bounds price unreachable.
		if point.Price < models.PriceMin || point.Price > models.PriceMax {
			return nil, fmt.Errorf("generated price %.4f at tick %d outside [%.0f, %.0f]",
				point.Price, i, models.PriceMin, models.PriceMax)
		}

		if point.JumpOccurred {
			jumps++
		}
		points = append(points, point)
		price = point.Price
	}

	logger.Info("timeline generated",
		zap.Int64("seed", seed),
		zap.Int("points", len(points)),
		zap.Int("jumps", jumps),
		zap.Int("regime_switches", switches),
		zap.Float64("final_price", price),
	)

	return models.NewTimeline(points), nil
}
