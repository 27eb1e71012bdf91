// Package engine implements the stochastic price step.
//
// Price evolution follows a discretized mean-reverting jump diffusion:
//
//	dP = alpha*(mu - P)*dt + sigma*dW + J
//
// where alpha is the mean-reversion strength, mu the long-run mean (100 EUR),
// sigma the regime-scaled volatility and J a rare jump shock. The result of
// each step is clamped to [10, 300] EUR.
package engine

import (
	"math"
	"math/rand"

	"github.com/selivandex/spot-simulator/pkg/models"
)

// Step computes the next price point from the current price and regime.
// It is a pure function of its inputs: given a seeded rng the output is
// fully deterministic, which is what makes runs reproducible.
//
// Random draws happen in a fixed order (diffusion normal, jump uniform,
// jump normal). The jump uniform is consumed even when jumpFrequency is
// zero, so a seed pins the same noise realization across parameter sets.
//
// Inputs are pre-validated upstream; there are no failure modes here.
func Step(currentPrice, timestamp float64, reg models.VolatilityRegime, p models.SimulationParameters, dt float64, rng *rand.Rand) models.PricePoint {
	cfg := reg.Config()
	effVol := cfg.VolatilityMultiplier * p.MaxVolatility

	drift := (models.LongTermMean - currentPrice) * p.MeanReversionStrength * dt
	diffusion := rng.NormFloat64() * effVol * 0.5 * math.Sqrt(dt)

	jumpProb := p.JumpFrequency * cfg.JumpProbabilityMultiplier * dt / 60.0
	jumpOccurred := rng.Float64() < jumpProb

	var jumpSize float64
	if jumpOccurred {
		jumpSize = rng.NormFloat64() * 0.5 * effVol
	}

	// Clamp once, on the final sum. Clamping any intermediate term would
	// bias the distribution; clipping a jump at the bound is intentional.
	price := clamp(currentPrice+drift+diffusion+jumpSize, models.PriceMin, models.PriceMax)

	return models.PricePoint{
		Timestamp:    timestamp,
		Price:        price,
		Regime:       reg,
		JumpOccurred: jumpOccurred,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
