package models

import "time"

// Core simulation constants. One run covers 180 seconds of simulated time
// at a 0.2s tick, giving exactly 900 points across 6 regime segments.
const (
	LongTermMean = 100.0 // EUR, mean-reversion target
	PriceMin     = 10.0  // EUR, lower price bound
	PriceMax     = 300.0 // EUR, upper price bound

	TickSeconds          = 0.2
	RegimeSwitchInterval = 30.0
	TotalDuration        = 180.0

	TotalTicks      = 900
	TicksPerSegment = 150
)

// TickInterval is the wall-clock pacing interval for playback.
const TickInterval = 200 * time.Millisecond

// VolatilityRegime identifies the active volatility state of the market
type VolatilityRegime string

const (
	RegimeLow    VolatilityRegime = "LOW"
	RegimeMedium VolatilityRegime = "MEDIUM"
	RegimeHigh   VolatilityRegime = "HIGH"
)

// Regimes lists all regimes in draw order
var Regimes = []VolatilityRegime{RegimeLow, RegimeMedium, RegimeHigh}

// RegimeConfig holds the static multipliers a regime applies to price generation
type RegimeConfig struct {
	VolatilityMultiplier      float64 `json:"volatility_multiplier"`
	JumpProbabilityMultiplier float64 `json:"jump_probability_multiplier"`
}

// regimeConfigs is a static lookup table, never mutated at runtime
var regimeConfigs = map[VolatilityRegime]RegimeConfig{
	RegimeLow:    {VolatilityMultiplier: 0.5, JumpProbabilityMultiplier: 1.0},
	RegimeMedium: {VolatilityMultiplier: 1.0, JumpProbabilityMultiplier: 1.5},
	RegimeHigh:   {VolatilityMultiplier: 1.5, JumpProbabilityMultiplier: 2.0},
}

// Config returns the static configuration for the regime
func (r VolatilityRegime) Config() RegimeConfig {
	return regimeConfigs[r]
}

// SimulationParameters configures one simulation run.
// Values are immutable for the lifetime of the run.
type SimulationParameters struct {
	MaxVolatility         float64 `json:"max_volatility"`          // EUR, range [0, 50]
	MeanReversionStrength float64 `json:"mean_reversion_strength"` // per second, range [0.01, 0.5]
	JumpFrequency         float64 `json:"jump_frequency"`          // jumps per minute, range [0, 5]
	Seed                  int64   `json:"seed"`                    // 0 = derive from wall clock
}

// DefaultParameters returns the stock parameter set
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		MaxVolatility:         15.0,
		MeanReversionStrength: 0.05,
		JumpFrequency:         2.0,
	}
}

// PricePoint is a single simulated price observation.
// Points are immutable once constructed.
type PricePoint struct {
	Timestamp    float64          `json:"timestamp"` // seconds since run start
	Price        float64          `json:"price"`     // EUR, within [PriceMin, PriceMax]
	Regime       VolatilityRegime `json:"regime"`
	JumpOccurred bool             `json:"jump_occurred"`
}

// Timeline is the complete precomputed trajectory of one run.
// It is built once by the generator and read-only afterwards, so it may be
// shared across goroutines without synchronization.
type Timeline struct {
	points []PricePoint
}

// NewTimeline wraps a finished point sequence
func NewTimeline(points []PricePoint) *Timeline {
	return &Timeline{points: points}
}

// Len returns the number of points in the timeline
func (t *Timeline) Len() int {
	return len(t.points)
}

// At returns the point at index i
func (t *Timeline) At(i int) PricePoint {
	return t.points[i]
}

// Last returns the final point of the timeline
func (t *Timeline) Last() PricePoint {
	return t.points[len(t.points)-1]
}

// Prices extracts the price series as a fresh slice
func (t *Timeline) Prices() []float64 {
	prices := make([]float64, len(t.points))
	for i, p := range t.points {
		prices[i] = p.Price
	}
	return prices
}

// PlaybackState represents the lifecycle state of a playback run
type PlaybackState string

const (
	PlaybackIdle      PlaybackState = "idle"
	PlaybackRunning   PlaybackState = "running"
	PlaybackPaused    PlaybackState = "paused"
	PlaybackCompleted PlaybackState = "completed"
	PlaybackCancelled PlaybackState = "cancelled"
)

// Terminal reports whether the state permits no further transitions
func (s PlaybackState) Terminal() bool {
	return s == PlaybackCompleted || s == PlaybackCancelled
}

// Snapshot captures the externally visible state of a running simulation
type Snapshot struct {
	State         PlaybackState    `json:"state"`
	CurrentPrice  float64          `json:"current_price"`
	Elapsed       float64          `json:"elapsed"` // simulated seconds delivered so far
	Regime        VolatilityRegime `json:"regime"`
	EmittedPoints int              `json:"emitted_points"`
}
