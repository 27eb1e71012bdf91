package timeline

import (
	"testing"

	"github.com/selivandex/spot-simulator/pkg/models"
)

func TestGenerate_FullConfiguration(t *testing.T) {
	tl, err := Generate(models.DefaultParameters(), 42)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	t.Run("exactly 900 points", func(t *testing.T) {
		if tl.Len() != models.TotalTicks {
			t.Fatalf("expected %d points, got %d", models.TotalTicks, tl.Len())
		}
	})

	t.Run("timestamps follow the tick grid", func(t *testing.T) {
		prev := -1.0
		for i := 0; i < tl.Len(); i++ {
			point := tl.At(i)
			want := float64(i) * models.TickSeconds
			if point.Timestamp != want {
				t.Fatalf("point %d: timestamp %v, want %v", i, point.Timestamp, want)
			}
			if point.Timestamp <= prev {
				t.Fatalf("point %d: timestamps not strictly increasing", i)
			}
			prev = point.Timestamp
		}
	})

	t.Run("prices within bounds", func(t *testing.T) {
		for i := 0; i < tl.Len(); i++ {
			price := tl.At(i).Price
			if price < models.PriceMin || price > models.PriceMax {
				t.Fatalf("point %d: price %.4f outside [%.0f, %.0f]", i, price, models.PriceMin, models.PriceMax)
			}
		}
	})

	t.Run("regime constant within each 30s segment", func(t *testing.T) {
		if tl.Len()%models.TicksPerSegment != 0 {
			t.Fatalf("timeline length %d not divisible into %d-tick segments", tl.Len(), models.TicksPerSegment)
		}
		segments := tl.Len() / models.TicksPerSegment
		if segments != 6 {
			t.Fatalf("expected 6 regime segments, got %d", segments)
		}
		for s := 0; s < segments; s++ {
			segRegime := tl.At(s * models.TicksPerSegment).Regime
			for i := s * models.TicksPerSegment; i < (s+1)*models.TicksPerSegment; i++ {
				if tl.At(i).Regime != segRegime {
					t.Fatalf("tick %d: regime %s differs from its segment's regime %s", i, tl.At(i).Regime, segRegime)
				}
			}
		}
	})
}

func TestGenerate_DeterministicGivenSeed(t *testing.T) {
	p := models.DefaultParameters()

	a, err := Generate(p, 1234)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	b, err := Generate(p, 1234)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("point %d differs between runs with identical seed", i)
		}
	}
}

func TestGenerate_DifferentSeedsDiverge(t *testing.T) {
	p := models.DefaultParameters()

	a, err := Generate(p, 1)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	b, err := Generate(p, 2)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	same := true
	for i := 0; i < a.Len(); i++ {
		if a.At(i).Price != b.At(i).Price {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical trajectories")
	}
}

func TestGenerate_NoJumpsWhenFrequencyZero(t *testing.T) {
	p := models.DefaultParameters()
	p.JumpFrequency = 0

	tl, err := Generate(p, 77)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	for i := 0; i < tl.Len(); i++ {
		if tl.At(i).JumpOccurred {
			t.Fatalf("point %d flagged a jump with jump_frequency=0", i)
		}
	}
}

func TestGenerate_ZeroVolatilityStaysAtMean(t *testing.T) {
	p := models.SimulationParameters{
		MaxVolatility:         0,
		MeanReversionStrength: 0.05,
		JumpFrequency:         0,
	}

	tl, err := Generate(p, 5)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	for i := 0; i < tl.Len(); i++ {
		if tl.At(i).Price != 100.0 {
			t.Fatalf("point %d: expected exactly 100.0, got %v", i, tl.At(i).Price)
		}
	}
}
