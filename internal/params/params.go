// Package params validates simulation parameters before a run starts.
// The generation core itself performs no bound checks; everything entering
// it is expected to have passed through Validate or Normalize first.
package params

import (
	"fmt"

	"github.com/selivandex/spot-simulator/pkg/models"
)

// Accepted parameter ranges
const (
	MaxVolatilityMin = 0.0
	MaxVolatilityMax = 50.0

	MeanReversionMin = 0.01
	MeanReversionMax = 0.5

	JumpFrequencyMin = 0.0
	JumpFrequencyMax = 5.0
)

// Validate checks that all parameters lie within their accepted ranges
func Validate(p models.SimulationParameters) error {
	if p.MaxVolatility < MaxVolatilityMin || p.MaxVolatility > MaxVolatilityMax {
		return fmt.Errorf("max_volatility must be between %.0f and %.0f, got %.2f",
			MaxVolatilityMin, MaxVolatilityMax, p.MaxVolatility)
	}
	if p.MeanReversionStrength < MeanReversionMin || p.MeanReversionStrength > MeanReversionMax {
		return fmt.Errorf("mean_reversion_strength must be between %.2f and %.1f, got %.3f",
			MeanReversionMin, MeanReversionMax, p.MeanReversionStrength)
	}
	if p.JumpFrequency < JumpFrequencyMin || p.JumpFrequency > JumpFrequencyMax {
		return fmt.Errorf("jump_frequency must be between %.0f and %.0f, got %.2f",
			JumpFrequencyMin, JumpFrequencyMax, p.JumpFrequency)
	}
	return nil
}

// Normalize clamps each parameter into its accepted range
func Normalize(p models.SimulationParameters) models.SimulationParameters {
	p.MaxVolatility = clamp(p.MaxVolatility, MaxVolatilityMin, MaxVolatilityMax)
	p.MeanReversionStrength = clamp(p.MeanReversionStrength, MeanReversionMin, MeanReversionMax)
	p.JumpFrequency = clamp(p.JumpFrequency, JumpFrequencyMin, JumpFrequencyMax)
	return p
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
