package service

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/verte-zerg/tsdash/internal/analysis"
	"github.com/verte-zerg/tsdash/internal/series"
)

// Handler serves the analysis service wire contract over HTTP.
// Every response carries the {status, message, data} envelope; failed
// calls answer with a message starting with "Failure.".
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/decompose", handleDecompose)
	mux.HandleFunc("/stationarity", handleStationarity)
	mux.HandleFunc("/differencing", handleDifferencing)
	mux.HandleFunc("/correlation", handleCorrelation)
	return mux
}

func handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req decomposeRequest
	if !decodeRequest(w, r, &req, "decompose series") {
		return
	}
	modelType := req.ModelType
	if modelType == "" {
		modelType = analysis.ModelAdditive
	}
	dec, err := analysis.Decompose(req.Data, req.Period, modelType)
	if err != nil {
		writeFailure(w, "decompose series", err)
		return
	}
	writeSuccess(w, fmt.Sprintf("Success. Decomposed series with period %d.", req.Period), decomposeData{
		Time:     req.Time,
		Trend:    dec.Trend,
		Seasonal: dec.Seasonal,
		Residual: dec.Residual,
	})
}

func handleStationarity(w http.ResponseWriter, r *http.Request) {
	var req stationarityRequest
	if !decodeRequest(w, r, &req, "check stationarity") {
		return
	}
	stationary, err := analysis.IsStationary(req.Data)
	if err != nil {
		writeFailure(w, "check stationarity", err)
		return
	}
	flag := 0
	if stationary {
		flag = 1
	}
	writeSuccess(w, "Success. Checked stationarity.", stationarityData{IsStationary: flag})
}

func handleDifferencing(w http.ResponseWriter, r *http.Request) {
	var req differencingRequest
	if !decodeRequest(w, r, &req, "difference series") {
		return
	}
	if len(req.Data) < 2 {
		writeFailure(w, "difference series", fmt.Errorf("need at least 2 observations"))
		return
	}
	diffed := series.Series{Times: req.Time, Values: req.Data}.Diff()
	writeSuccess(w, "Success. Differenced series.", differencingData{
		Data: diffed.Values,
		Time: diffed.Times,
	})
}

func handleCorrelation(w http.ResponseWriter, r *http.Request) {
	var req correlationRequest
	if !decodeRequest(w, r, &req, "correlate series") {
		return
	}
	cor, err := analysis.Correlate(req.Data, req.Lags)
	if err != nil {
		writeFailure(w, "correlate series", err)
		return
	}
	writeSuccess(w, fmt.Sprintf("Success. Correlated series with %d lags.", req.Lags), correlationData{
		Autocorrelation:        cor.ACF,
		PartialAutocorrelation: cor.PACF,
		Lag:                    cor.Lags,
		ConfidenceInterval:     cor.Confidence,
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, out any, op string) bool {
	if r.Method != http.MethodPost {
		writeFailure(w, op, fmt.Errorf("method %s is not allowed", r.Method))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeFailure(w, op, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeEnvelope(w, http.StatusOK, message, data)
}

func writeFailure(w http.ResponseWriter, op string, err error) {
	writeEnvelope(w, http.StatusBadRequest, fmt.Sprintf("Failure. Could not %s due to %v.", op, err), nil)
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		message = fmt.Sprintf("Failure. Could not encode response due to %v.", err)
		raw = nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Data: raw}); err != nil {
		// Best-effort response write.
		_ = err
	}
}
