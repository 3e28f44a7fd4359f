package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *APIClient {
	c := NewAPIClient(url)
	c.retryDelay = 10 * time.Millisecond
	return c
}

func TestUpdateWeightSuccess(t *testing.T) {
	var gotPath string
	var gotBody weightUpdateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(envelope{Success: true, Message: "ok"})
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).UpdateWeight(context.Background(), 7, 950.5); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if gotPath != "/devices/7/weight" {
		t.Errorf("expected path /devices/7/weight, got %q", gotPath)
	}
	if gotBody.NewWeight != 950.5 {
		t.Errorf("expected new_weight 950.5, got %v", gotBody.NewWeight)
	}
}

func TestUpdateWeightRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(envelope{Success: true, Message: "ok"})
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).UpdateWeight(context.Background(), 1, 100); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestUpdateWeightDoesNotRetryRejection(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(envelope{Success: false, Message: "Device not found"})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).UpdateWeight(context.Background(), 999, 100)
	if err == nil {
		t.Fatal("expected error for rejected reading")
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single attempt for an API rejection, got %d", calls.Load())
	}
}

func TestUpdateWeightGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.UpdateWeight(context.Background(), 1, 100); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != int32(c.maxRetries+1) {
		t.Errorf("expected %d attempts, got %d", c.maxRetries+1, got)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).Health(context.Background()); err != nil {
		t.Errorf("health check failed: %v", err)
	}
}
