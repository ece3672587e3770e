package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verte-zerg/tsdash/internal/series"
)

func TestIsFailureMessage(t *testing.T) {
	if !IsFailureMessage("Failure. Could not decompose series due to boom.") {
		t.Fatal("failure message not detected")
	}
	if IsFailureMessage("Success. Decomposed series with period 12.") {
		t.Fatal("success message detected as failure")
	}
}

func TestClientDecompose(t *testing.T) {
	var gotPath string
	var gotReq decomposeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeSuccess(w, "Success. Decomposed series with period 2.", decomposeData{
			Time:     gotReq.Time,
			Trend:    []float64{1, 2, 3, 4},
			Seasonal: []float64{0.1, -0.1, 0.1, -0.1},
			Residual: []float64{0, 0, 0, 0},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	s := series.Series{Times: []string{"t1", "t2", "t3", "t4"}, Values: []float64{1.1, 1.9, 3.1, 3.9}}
	dec, err := c.Decompose(context.Background(), s, "M", 2)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}

	if gotPath != "/decompose" {
		t.Fatalf("request path = %q, want /decompose", gotPath)
	}
	if gotReq.ModelType != "additive" {
		t.Fatalf("model_type = %q, want additive", gotReq.ModelType)
	}
	if gotReq.Freq != "M" || gotReq.Period != 2 {
		t.Fatalf("request freq/period = %q/%d, want M/2", gotReq.Freq, gotReq.Period)
	}
	if len(dec.Trend) != 4 || len(dec.Times) != 4 {
		t.Fatalf("decomposition lengths = %d/%d, want 4/4", len(dec.Trend), len(dec.Times))
	}
}

func TestClientFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "Failure. Could not check stationarity due to too few observations.", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	_, err := c.CheckStationarity(context.Background(), []float64{1, 2})
	if err == nil {
		t.Fatal("failure envelope produced no error")
	}
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("error type = %T, want *CallError", err)
	}
	if callErr.Message != "Failure. Could not check stationarity due to too few observations." {
		t.Fatalf("message = %q", callErr.Message)
	}
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		writeSuccess(w, "Success.", stationarityData{IsStationary: 1})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond)
	_, err := c.CheckStationarity(context.Background(), []float64{1, 2, 3})
	if err == nil {
		t.Fatal("timed-out call produced no error")
	}
	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("error type = %T, want *CallError", err)
	}
	if !IsFailureMessage(callErr.Message) {
		t.Fatalf("transport error message %q lacks the failure marker", callErr.Message)
	}
}

func TestClientDifference(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	s := series.Series{Times: []string{"t1", "t2", "t3"}, Values: []float64{5, 7, 6}}
	diffed, err := c.Difference(context.Background(), s, "M")
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if len(diffed.Values) != 2 || diffed.Values[0] != 2 || diffed.Values[1] != -1 {
		t.Fatalf("differenced values = %v, want [2 -1]", diffed.Values)
	}
	if len(diffed.Times) != 2 || diffed.Times[0] != "t2" {
		t.Fatalf("differenced times = %v, want [t2 t3]", diffed.Times)
	}
}
