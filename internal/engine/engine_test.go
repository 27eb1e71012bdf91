package engine

import (
	"math/rand"
	"testing"

	"github.com/selivandex/spot-simulator/pkg/models"
)

func TestStep_ZeroVolatilityHoldsMean(t *testing.T) {
	p := models.SimulationParameters{
		MaxVolatility:         0,
		MeanReversionStrength: 0.05,
		JumpFrequency:         0,
	}
	rng := rand.New(rand.NewSource(1))

	price := models.LongTermMean
	for i := 0; i < models.TotalTicks; i++ {
		point := Step(price, float64(i)*models.TickSeconds, models.RegimeMedium, p, models.TickSeconds, rng)
		if point.Price != 100.0 {
			t.Fatalf("tick %d: expected price exactly 100.0, got %v", i, point.Price)
		}
		if point.JumpOccurred {
			t.Fatalf("tick %d: jump occurred with jump_frequency=0", i)
		}
		price = point.Price
	}
}

func TestStep_PricesStayWithinBounds(t *testing.T) {
	// Most extreme valid parameters: huge volatility, frequent jumps,
	// weakest mean reversion.
	p := models.SimulationParameters{
		MaxVolatility:         50,
		MeanReversionStrength: 0.01,
		JumpFrequency:         5,
	}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		for _, start := range []float64{10, 100, 300} {
			price := start
			for i := 0; i < models.TotalTicks; i++ {
				reg := models.Regimes[i%len(models.Regimes)]
				point := Step(price, float64(i)*models.TickSeconds, reg, p, models.TickSeconds, rng)
				if point.Price < models.PriceMin || point.Price > models.PriceMax {
					t.Fatalf("seed %d start %.0f tick %d: price %.4f outside bounds", seed, start, i, point.Price)
				}
				price = point.Price
			}
		}
	}
}

func TestStep_NoJumpsWhenFrequencyZero(t *testing.T) {
	p := models.SimulationParameters{
		MaxVolatility:         50,
		MeanReversionStrength: 0.1,
		JumpFrequency:         0,
	}
	rng := rand.New(rand.NewSource(99))

	price := models.LongTermMean
	for i := 0; i < models.TotalTicks; i++ {
		point := Step(price, float64(i)*models.TickSeconds, models.RegimeHigh, p, models.TickSeconds, rng)
		if point.JumpOccurred {
			t.Fatalf("tick %d: jump with jump_frequency=0", i)
		}
		price = point.Price
	}
}

func TestStep_DeterministicGivenSeed(t *testing.T) {
	p := models.DefaultParameters()

	run := func(seed int64) []models.PricePoint {
		rng := rand.New(rand.NewSource(seed))
		points := make([]models.PricePoint, 0, models.TotalTicks)
		price := models.LongTermMean
		for i := 0; i < models.TotalTicks; i++ {
			point := Step(price, float64(i)*models.TickSeconds, models.RegimeMedium, p, models.TickSeconds, rng)
			points = append(points, point)
			price = point.Price
		}
		return points
	}

	a := run(42)
	b := run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tick %d differs between runs with identical seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// ticksToRecover steps from a 200 EUR shock until the price is within
// 5 EUR of the long-run mean, under a fixed noise realization.
func ticksToRecover(t *testing.T, strength float64, seed int64) int {
	t.Helper()

	p := models.SimulationParameters{
		MaxVolatility:         8,
		MeanReversionStrength: strength,
		JumpFrequency:         0,
	}
	rng := rand.New(rand.NewSource(seed))

	price := 200.0
	for i := 0; i < 5000; i++ {
		point := Step(price, float64(i)*models.TickSeconds, models.RegimeMedium, p, models.TickSeconds, rng)
		price = point.Price
		if abs(price-models.LongTermMean) <= 5 {
			return i
		}
	}
	t.Fatalf("price never recovered to within 5 EUR of mean (strength %.2f)", strength)
	return -1
}

func TestStep_StrongerReversionRecoversFaster(t *testing.T) {
	// Same seed means the same diffusion draws for both runs, so only the
	// mean-reversion strength differs.
	fast := ticksToRecover(t, 0.4, 7)
	slow := ticksToRecover(t, 0.01, 7)

	if fast >= slow {
		t.Errorf("expected strong reversion (%d ticks) to beat weak reversion (%d ticks)", fast, slow)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
