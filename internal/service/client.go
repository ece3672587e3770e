package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/verte-zerg/tsdash/internal/series"
)

// DefaultTimeout bounds every analysis call when none is configured.
const DefaultTimeout = 10 * time.Second

// Client calls a remote analysis service over HTTP. Every call is a single
// attempt with a bounded timeout; a timed-out or otherwise failed transport
// is reported as the same CallError shape as a service-side failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Decompose splits the series into trend, seasonal, and residual components.
func (c *Client) Decompose(ctx context.Context, s series.Series, freq string, period int) (Decomposition, error) {
	req := decomposeRequest{
		Data:      s.Values,
		Time:      s.Times,
		Freq:      freq,
		Period:    period,
		ModelType: "additive",
	}
	var data decomposeData
	if err := c.post(ctx, "decompose", "decompose series", req, &data); err != nil {
		return Decomposition{}, err
	}
	return Decomposition{
		Times:    data.Time,
		Trend:    data.Trend,
		Seasonal: data.Seasonal,
		Residual: data.Residual,
	}, nil
}

// CheckStationarity reports whether the values form a stationary series.
func (c *Client) CheckStationarity(ctx context.Context, values []float64) (bool, error) {
	req := stationarityRequest{Data: values}
	var data stationarityData
	if err := c.post(ctx, "stationarity", "check stationarity", req, &data); err != nil {
		return false, err
	}
	return data.IsStationary != 0, nil
}

// Difference applies one round of first differencing to the series.
func (c *Client) Difference(ctx context.Context, s series.Series, freq string) (series.Series, error) {
	req := differencingRequest{Data: s.Values, Time: s.Times, Freq: freq}
	var data differencingData
	if err := c.post(ctx, "differencing", "difference series", req, &data); err != nil {
		return series.Series{}, err
	}
	return series.Series{Times: data.Time, Values: data.Data}, nil
}

// Correlate computes ACF/PACF values for lags 0..lags.
func (c *Client) Correlate(ctx context.Context, s series.Series, freq string, lags int) (Correlation, error) {
	req := correlationRequest{Data: s.Values, Freq: freq, Lags: lags}
	var data correlationData
	if err := c.post(ctx, "correlation", "correlate series", req, &data); err != nil {
		return Correlation{}, err
	}
	return Correlation{
		Lags:       data.Lag,
		ACF:        data.Autocorrelation,
		PACF:       data.PartialAutocorrelation,
		Confidence: data.ConfidenceInterval,
	}, nil
}

// post issues one request and decodes the response envelope. Transport
// problems are converted into the failure-message shape so callers make
// identical branch decisions for both failure classes.
func (c *Client) post(ctx context.Context, path, op string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return transportError(op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(payload))
	if err != nil {
		return transportError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return transportError(op, err)
	}
	if IsFailureMessage(env.Message) {
		return &CallError{Op: op, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return transportError(op, err)
		}
	}
	return nil
}

func transportError(op string, err error) *CallError {
	return &CallError{
		Op:      op,
		Message: fmt.Sprintf("Failure. Could not %s due to %v.", op, err),
	}
}
