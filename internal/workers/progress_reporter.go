package workers

import (
	"context"

	"go.uber.org/zap"

	"github.com/selivandex/spot-simulator/internal/session"
	"github.com/selivandex/spot-simulator/pkg/logger"
)

// ProgressReporter periodically logs the snapshot of a running simulation
type ProgressReporter struct {
	session *session.Session
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(sess *session.Session) *ProgressReporter {
	return &ProgressReporter{session: sess}
}

// Name returns worker name for logging
func (r *ProgressReporter) Name() string {
	return "progress_reporter"
}

// Run logs one snapshot
func (r *ProgressReporter) Run(_ context.Context) error {
	snap := r.session.Snapshot()
	if snap.State.Terminal() {
		return nil
	}

	logger.Info("playback progress",
		zap.String("state", string(snap.State)),
		zap.Float64("elapsed", snap.Elapsed),
		zap.Float64("price", snap.CurrentPrice),
		zap.String("regime", string(snap.Regime)),
		zap.Int("emitted", snap.EmittedPoints),
	)
	return nil
}
