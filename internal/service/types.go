// Package service defines the analysis service contract: the HTTP client,
// an in-process backend, and the reference server.
package service

import (
	"encoding/json"
	"strings"
)

// Decomposition is the decompose call result.
type Decomposition struct {
	Times    []string
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Correlation is the correlation call result.
type Correlation struct {
	Lags       []int
	ACF        []float64
	PACF       []float64
	Confidence []float64
}

// failureMarker is the wire convention for failed calls: a response whose
// message contains this substring denotes failure, everything else success.
const failureMarker = "Failure"

// IsFailureMessage reports whether a response message denotes a failed call.
func IsFailureMessage(message string) bool {
	return strings.Contains(message, failureMarker)
}

// CallError is a failed analysis call. Message is user-visible and follows
// the service convention of starting with "Failure.".
type CallError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return e.Message
}

// envelope is the wire response shape shared by all calls.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type decomposeRequest struct {
	Data      []float64 `json:"data"`
	Time      []string  `json:"time"`
	Freq      string    `json:"freq"`
	Period    int       `json:"period"`
	ModelType string    `json:"model_type"`
}

type decomposeData struct {
	Time     []string  `json:"time"`
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
}

type stationarityRequest struct {
	Data []float64 `json:"data"`
}

type stationarityData struct {
	IsStationary int `json:"is_stationary"`
}

type differencingRequest struct {
	Data []float64 `json:"data"`
	Time []string  `json:"time"`
	Freq string    `json:"freq"`
}

type differencingData struct {
	Data []float64 `json:"data"`
	Time []string  `json:"time"`
}

type correlationRequest struct {
	Data []float64 `json:"data"`
	Freq string    `json:"freq"`
	Lags int       `json:"lags"`
}

type correlationData struct {
	Autocorrelation        []float64 `json:"autocorrelation"`
	PartialAutocorrelation []float64 `json:"partial_autocorrelation"`
	Lag                    []int     `json:"lag"`
	ConfidenceInterval     []float64 `json:"confidence_interval"`
}
