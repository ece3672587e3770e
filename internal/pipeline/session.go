package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tsdash/internal/controls"
	"github.com/verte-zerg/tsdash/internal/dataset"
	"github.com/verte-zerg/tsdash/internal/dispatch"
	"github.com/verte-zerg/tsdash/internal/feedback"
	"github.com/verte-zerg/tsdash/internal/model"
	"github.com/verte-zerg/tsdash/internal/series"
)

// HistorySink persists settled runs.
type HistorySink interface {
	InsertRun(ctx context.Context, rec model.RunRecord) (int64, error)
}

// Session owns all state of one dashboard session: the raw series, the
// controls, the derived dataset, the dispatcher, the feedback aggregator,
// and the run history sink. All cross-component flow goes through Apply;
// there is no shared state outside the session.
type Session struct {
	Controls *controls.State
	Dataset  *dataset.Dataset
	Dispatch *dispatch.Dispatcher
	Feedback *feedback.Aggregator

	raw     series.Series
	orch    *Orchestrator
	history HistorySink
}

// NewSession wires a session around the raw series and analysis backend.
// history may be nil when runs should not be persisted.
func NewSession(raw series.Series, svc Service, defaults model.Controls, displayFor time.Duration, history HistorySink) *Session {
	ds := dataset.New()
	return &Session{
		Controls: controls.New(raw.Len(), defaults),
		Dataset:  ds,
		Dispatch: dispatch.New(),
		Feedback: feedback.New(displayFor),
		raw:      raw,
		orch:     NewOrchestrator(svc, ds),
		history:  history,
	}
}

// Raw returns the raw series of this session.
func (s *Session) Raw() series.Series {
	return s.raw
}

// Apply runs the pipeline with the committed controls, feeds the collected
// messages to the feedback aggregator, notifies all chart consumers, and
// persists the run record. The returned error covers only history
// persistence; run failures surface through the feedback text.
func (s *Session) Apply(ctx context.Context) (Result, error) {
	s.Controls.ResetInputDisplay()
	ctrl := s.Controls.Snapshot()

	started := time.Now()
	result := s.orch.Run(ctx, s.raw, ctrl)
	ended := time.Now()

	s.Feedback.Accumulate(result.Messages)
	s.Dispatch.Publish()

	if s.history == nil {
		return result, nil
	}
	rec := model.RunRecord{
		StartedAt: started,
		EndedAt:   ended,
		SeriesLen: s.raw.Len(),
		Freq:      ctrl.Freq,
		Period:    ctrl.Period,
		Lags:      ctrl.Lags,
		Bins:      ctrl.Bins,
		DiffCount: result.DiffCount,
		Message:   s.Feedback.Text(),
	}
	if _, err := s.history.InsertRun(ctx, rec); err != nil {
		return result, fmt.Errorf("failed to save run: %w", err)
	}
	return result, nil
}
