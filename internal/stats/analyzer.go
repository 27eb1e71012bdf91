// Package stats computes read-only summary analytics over a finished
// trajectory. It only ever reads the immutable timeline, so it can run
// concurrently with playback without synchronization.
package stats

import (
	"fmt"
	"math"

	"github.com/cinar/indicator"
	"github.com/shopspring/decimal"

	"github.com/selivandex/spot-simulator/pkg/models"
)

// smaPeriod is the window for the trailing moving average (10s of ticks)
const smaPeriod = 50

// Summary aggregates one trajectory
type Summary struct {
	Points             int                             `json:"points"`
	MeanPrice          decimal.Decimal                 `json:"mean_price"`
	MinPrice           decimal.Decimal                 `json:"min_price"`
	MaxPrice           decimal.Decimal                 `json:"max_price"`
	FinalPrice         decimal.Decimal                 `json:"final_price"`
	FinalSMA           decimal.Decimal                 `json:"final_sma"`
	BollingerUpper     decimal.Decimal                 `json:"bollinger_upper"`
	BollingerLower     decimal.Decimal                 `json:"bollinger_lower"`
	RealizedVolatility float64                         `json:"realized_volatility"` // std dev of tick-to-tick changes, EUR
	JumpCount          int                             `json:"jump_count"`
	RegimeTicks        map[models.VolatilityRegime]int `json:"regime_ticks"`
}

// Analyzer summarizes finished trajectories
type Analyzer struct{}

// NewAnalyzer creates new trajectory analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Summarize computes summary statistics for the timeline
func (a *Analyzer) Summarize(tl *models.Timeline) (*Summary, error) {
	if tl == nil || tl.Len() < smaPeriod {
		return nil, fmt.Errorf("insufficient points for summary (need at least %d)", smaPeriod)
	}

	prices := tl.Prices()

	sum := 0.0
	minPrice := prices[0]
	maxPrice := prices[0]
	for _, p := range prices {
		sum += p
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}
	mean := sum / float64(len(prices))

	sma := indicator.Sma(smaPeriod, prices)
	_, bbUpper, bbLower := indicator.BollingerBands(prices)

	jumps := 0
	regimeTicks := make(map[models.VolatilityRegime]int, len(models.Regimes))
	for i := 0; i < tl.Len(); i++ {
		point := tl.At(i)
		if point.JumpOccurred {
			jumps++
		}
		regimeTicks[point.Regime]++
	}

	return &Summary{
		Points:             tl.Len(),
		MeanPrice:          models.NewDecimal(mean),
		MinPrice:           models.NewDecimal(minPrice),
		MaxPrice:           models.NewDecimal(maxPrice),
		FinalPrice:         models.NewDecimal(prices[len(prices)-1]),
		FinalSMA:           models.NewDecimal(sma[len(sma)-1]),
		BollingerUpper:     models.NewDecimal(bbUpper[len(bbUpper)-1]),
		BollingerLower:     models.NewDecimal(bbLower[len(bbLower)-1]),
		RealizedVolatility: realizedVolatility(prices),
		JumpCount:          jumps,
		RegimeTicks:        regimeTicks,
	}, nil
}

// realizedVolatility is the standard deviation of tick-to-tick price changes
func realizedVolatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	changes := make([]float64, 0, len(prices)-1)
	sum := 0.0
	for i := 1; i < len(prices); i++ {
		d := prices[i] - prices[i-1]
		changes = append(changes, d)
		sum += d
	}
	mean := sum / float64(len(changes))

	variance := 0.0
	for _, d := range changes {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(changes))

	return math.Sqrt(variance)
}
