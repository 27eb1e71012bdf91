// Package sink provides a console stand-in for the external display
// collaborator. It renders the playback stream as log lines; chart
// rendering stays outside this core.
package sink

import (
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/pkg/logger"
	"github.com/selivandex/spot-simulator/pkg/models"
)

// Console logs every playback event. Points go to debug so a default
// info-level run only shows regime changes and terminal signals.
type Console struct{}

// NewConsole creates new console sink
func NewConsole() *Console {
	return &Console{}
}

func (c *Console) OnPoint(point models.PricePoint) {
	logger.Debug("tick",
		zap.Float64("t", point.Timestamp),
		zap.Float64("price", point.Price),
		zap.String("regime", string(point.Regime)),
		zap.Bool("jump", point.JumpOccurred),
	)
}

func (c *Console) OnRegimeChange(regime models.VolatilityRegime, timestamp float64) {
	logger.Info("regime change",
		zap.String("regime", string(regime)),
		zap.Float64("t", timestamp),
	)
}

func (c *Console) OnOverrun(behind time.Duration) {
	logger.Warn("consumer falling behind schedule", zap.Duration("behind", behind))
}

func (c *Console) OnComplete() {
	logger.Info("simulation complete")
}

func (c *Console) OnCancelled() {
	logger.Info("simulation cancelled")
}
