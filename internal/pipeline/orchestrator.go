// Package pipeline sequences the analysis calls for one Apply action.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/verte-zerg/tsdash/internal/dataset"
	"github.com/verte-zerg/tsdash/internal/model"
	"github.com/verte-zerg/tsdash/internal/series"
	"github.com/verte-zerg/tsdash/internal/service"
)

// Service is the analysis backend contract the orchestrator runs against.
type Service interface {
	Decompose(ctx context.Context, s series.Series, freq string, period int) (service.Decomposition, error)
	CheckStationarity(ctx context.Context, values []float64) (bool, error)
	Difference(ctx context.Context, s series.Series, freq string) (series.Series, error)
	Correlate(ctx context.Context, s series.Series, freq string, lags int) (service.Correlation, error)
}

// Result reports a settled run: the number of successful differencing
// rounds and every branch failure message, in branch order.
type Result struct {
	DiffCount int
	Messages  []string
}

// Orchestrator runs the three analysis branches of a run concurrently and
// writes their outputs into disjoint dataset categories. At most one run is
// in flight: starting a run cancels the previous run's outstanding calls
// and waits for it to settle first.
type Orchestrator struct {
	svc Service
	ds  *dataset.Dataset

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewOrchestrator builds an orchestrator writing into ds.
func NewOrchestrator(svc Service, ds *dataset.Dataset) *Orchestrator {
	return &Orchestrator{svc: svc, ds: ds}
}

// Run executes one pipeline run and blocks until all branches settle.
// A failed branch contributes its message and leaves its categories
// untouched; it never prevents the other branches from completing.
func (o *Orchestrator) Run(ctx context.Context, raw series.Series, ctrl model.Controls) Result {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	defer close(done)
	defer cancel()

	o.mu.Lock()
	prevCancel, prevDone := o.cancel, o.done
	o.cancel, o.done = cancel, done
	o.mu.Unlock()
	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	// Seed branch: raw copies straight into base, no service call.
	o.ds.SetBase(raw.Values, raw.Times)

	var wg sync.WaitGroup
	branchMsgs := make([]string, 3)
	diffCount := 0

	wg.Add(3)
	go func() {
		defer wg.Done()
		branchMsgs[0] = o.decompose(runCtx, raw, ctrl)
	}()
	go func() {
		defer wg.Done()
		branchMsgs[1], diffCount = o.stationarize(runCtx, raw, ctrl)
	}()
	go func() {
		defer wg.Done()
		branchMsgs[2] = o.correlate(runCtx, raw, ctrl)
	}()
	wg.Wait()

	var messages []string
	for _, msg := range branchMsgs {
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return Result{DiffCount: diffCount, Messages: messages}
}

func (o *Orchestrator) decompose(ctx context.Context, raw series.Series, ctrl model.Controls) string {
	dec, err := o.svc.Decompose(ctx, raw, ctrl.Freq, ctrl.Period)
	if err != nil {
		return err.Error()
	}
	o.ds.SetDecomposition(dataset.Decomposition{
		Trend:    dec.Trend,
		Seasonal: dec.Seasonal,
		Residual: dec.Residual,
		Times:    dec.Times,
	})
	return ""
}

// stationarize repeatedly checks and differences the series until it tests
// stationary, a call fails, or the round ceiling is hit. Rounds are strictly
// sequential; the last reached series is always adopted.
func (o *Orchestrator) stationarize(ctx context.Context, raw series.Series, ctrl model.Controls) (string, int) {
	current := raw
	count := 0
	maxRounds := raw.Len()
	msg := ""
	for {
		stationary, err := o.svc.CheckStationarity(ctx, current.Values)
		if err != nil {
			msg = err.Error()
			break
		}
		if stationary {
			break
		}
		if count >= maxRounds {
			msg = fmt.Sprintf("Failure. Series is still not stationary after %d differencing rounds.", count)
			break
		}
		next, err := o.svc.Difference(ctx, current, ctrl.Freq)
		if err != nil {
			msg = err.Error()
			break
		}
		current = next
		count++
	}
	o.ds.SetStationary(current.Values, current.Times)
	return msg, count
}

func (o *Orchestrator) correlate(ctx context.Context, raw series.Series, ctrl model.Controls) string {
	cor, err := o.svc.Correlate(ctx, raw, ctrl.Freq, ctrl.Lags)
	if err != nil {
		return err.Error()
	}
	o.ds.SetCorrelation(dataset.Correlation{
		ACF:        cor.ACF,
		PACF:       cor.PACF,
		Confidence: cor.Confidence,
		Lags:       cor.Lags,
	})
	return ""
}
