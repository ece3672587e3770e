package service

import (
	"context"
	"fmt"

	"github.com/verte-zerg/tsdash/internal/analysis"
	"github.com/verte-zerg/tsdash/internal/series"
)

// Local runs the analysis routines in-process behind the same contract as
// the HTTP client, including the failure-message convention.
type Local struct{}

// NewLocal returns an in-process analysis backend.
func NewLocal() *Local {
	return &Local{}
}

// Decompose splits the series into trend, seasonal, and residual components.
func (l *Local) Decompose(ctx context.Context, s series.Series, freq string, period int) (Decomposition, error) {
	if err := ctx.Err(); err != nil {
		return Decomposition{}, localError("decompose series", err)
	}
	dec, err := analysis.Decompose(s.Values, period, analysis.ModelAdditive)
	if err != nil {
		return Decomposition{}, localError("decompose series", err)
	}
	return Decomposition{
		Times:    append([]string(nil), s.Times...),
		Trend:    dec.Trend,
		Seasonal: dec.Seasonal,
		Residual: dec.Residual,
	}, nil
}

// CheckStationarity reports whether the values form a stationary series.
func (l *Local) CheckStationarity(ctx context.Context, values []float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, localError("check stationarity", err)
	}
	stationary, err := analysis.IsStationary(values)
	if err != nil {
		return false, localError("check stationarity", err)
	}
	return stationary, nil
}

// Difference applies one round of first differencing to the series.
func (l *Local) Difference(ctx context.Context, s series.Series, freq string) (series.Series, error) {
	if err := ctx.Err(); err != nil {
		return series.Series{}, localError("difference series", err)
	}
	if s.Len() < 2 {
		return series.Series{}, localError("difference series", fmt.Errorf("need at least 2 observations"))
	}
	return s.Diff(), nil
}

// Correlate computes ACF/PACF values for lags 0..lags.
func (l *Local) Correlate(ctx context.Context, s series.Series, freq string, lags int) (Correlation, error) {
	if err := ctx.Err(); err != nil {
		return Correlation{}, localError("correlate series", err)
	}
	cor, err := analysis.Correlate(s.Values, lags)
	if err != nil {
		return Correlation{}, localError("correlate series", err)
	}
	return Correlation{
		Lags:       cor.Lags,
		ACF:        cor.ACF,
		PACF:       cor.PACF,
		Confidence: cor.Confidence,
	}, nil
}

func localError(op string, err error) *CallError {
	return &CallError{
		Op:      op,
		Message: fmt.Sprintf("Failure. Could not %s due to %v.", op, err),
	}
}
