package stats

import (
	"testing"

	"github.com/selivandex/spot-simulator/internal/timeline"
	"github.com/selivandex/spot-simulator/pkg/models"
)

func TestAnalyzer_Summarize(t *testing.T) {
	tl, err := timeline.Generate(models.DefaultParameters(), 42)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	summary, err := NewAnalyzer().Summarize(tl)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if summary.Points != models.TotalTicks {
		t.Errorf("points %d, want %d", summary.Points, models.TotalTicks)
	}

	minPrice := models.ToFloat64(summary.MinPrice)
	maxPrice := models.ToFloat64(summary.MaxPrice)
	mean := models.ToFloat64(summary.MeanPrice)
	if minPrice < models.PriceMin || maxPrice > models.PriceMax {
		t.Errorf("summary bounds [%.2f, %.2f] escape price bounds", minPrice, maxPrice)
	}
	if mean < minPrice || mean > maxPrice {
		t.Errorf("mean %.2f outside [%.2f, %.2f]", mean, minPrice, maxPrice)
	}

	if upper, lower := models.ToFloat64(summary.BollingerUpper), models.ToFloat64(summary.BollingerLower); upper < lower {
		t.Errorf("bollinger upper %.2f below lower %.2f", upper, lower)
	}

	totalTicks := 0
	for _, r := range models.Regimes {
		totalTicks += summary.RegimeTicks[r]
	}
	if totalTicks != models.TotalTicks {
		t.Errorf("regime ticks sum to %d, want %d", totalTicks, models.TotalTicks)
	}

	jumps := 0
	for i := 0; i < tl.Len(); i++ {
		if tl.At(i).JumpOccurred {
			jumps++
		}
	}
	if summary.JumpCount != jumps {
		t.Errorf("jump count %d, want %d", summary.JumpCount, jumps)
	}

	if summary.RealizedVolatility < 0 {
		t.Errorf("negative realized volatility %v", summary.RealizedVolatility)
	}
}

func TestAnalyzer_FlatTrajectory(t *testing.T) {
	p := models.SimulationParameters{
		MaxVolatility:         0,
		MeanReversionStrength: 0.05,
		JumpFrequency:         0,
	}
	tl, err := timeline.Generate(p, 1)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	summary, err := NewAnalyzer().Summarize(tl)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}

	if got := models.ToFloat64(summary.MeanPrice); got != 100.0 {
		t.Errorf("flat trajectory mean %.4f, want 100", got)
	}
	if summary.RealizedVolatility != 0 {
		t.Errorf("flat trajectory realized volatility %v, want 0", summary.RealizedVolatility)
	}
	if summary.JumpCount != 0 {
		t.Errorf("flat trajectory jump count %d, want 0", summary.JumpCount)
	}
}

func TestAnalyzer_InsufficientPoints(t *testing.T) {
	tl := models.NewTimeline(make([]models.PricePoint, smaPeriod-1))
	if _, err := NewAnalyzer().Summarize(tl); err == nil {
		t.Error("expected error for short timeline")
	}
	if _, err := NewAnalyzer().Summarize(nil); err == nil {
		t.Error("expected error for nil timeline")
	}
}
