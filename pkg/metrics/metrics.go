package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PointsEmitted  = prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_points_emitted_total", Help: "Price points delivered to the consumer"})
	JumpsEmitted   = prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_jumps_emitted_total", Help: "Delivered points carrying a jump shock"})
	RegimeSwitches = prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_regime_switches_total", Help: "Regime changes observed during playback"})
	OverrunWarns   = prometheus.NewCounter(prometheus.CounterOpts{Name: "sim_playback_overruns_total", Help: "Non-fatal overrun warnings raised by the playback controller"})
	CurrentPrice   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "sim_current_price_eur", Help: "Most recently delivered spot price"})
	PlaybackState  = prometheus.NewGauge(prometheus.GaugeOpts{Name: "sim_playback_state", Help: "0=idle, 1=running, 2=paused, 3=completed, 4=cancelled"})
)

func init() {
	prometheus.MustRegister(
		PointsEmitted,
		JumpsEmitted,
		RegimeSwitches,
		OverrunWarns,
		CurrentPrice,
		PlaybackState,
	)
}
