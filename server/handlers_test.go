package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-feed-monitor/feed"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHandleFeedBeforeFirstRefresh(t *testing.T) {
	srv := New(0, feed.NewStore(), nil, nil)

	rec := httptest.NewRecorder()
	srv.handleFeed(rec, httptest.NewRequest("GET", "/api/feed", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		TripUpdates      []json.RawMessage `json:"tripUpdates"`
		VehiclePositions []json.RawMessage `json:"vehiclePositions"`
		FetchedAt        *string           `json:"fetchedAt"`
	}
	decodeBody(t, rec, &body)

	if body.TripUpdates == nil || len(body.TripUpdates) != 0 {
		t.Errorf("expected empty tripUpdates array, got %v", body.TripUpdates)
	}
	if body.VehiclePositions == nil || len(body.VehiclePositions) != 0 {
		t.Errorf("expected empty vehiclePositions array, got %v", body.VehiclePositions)
	}
	if body.FetchedAt != nil {
		t.Errorf("expected null fetchedAt, got %v", *body.FetchedAt)
	}

	// array form must survive encoding, not collapse to null
	if !strings.Contains(rec.Body.String(), `"tripUpdates":[]`) {
		t.Errorf("expected empty array encoding, got %s", rec.Body.String())
	}
}

func publishedStore() *feed.Store {
	store := feed.NewStore()
	store.Publish(feed.Snapshot{
		TripUpdates: []feed.TripUpdate{
			{ID: "e1", TripID: "T1", RouteID: "M15", VehicleID: "V1", StopTimeUpdates: []feed.StopTimeUpdate{}},
			{ID: "e2", TripID: "T2", RouteID: "B46", VehicleID: "V2", StopTimeUpdates: []feed.StopTimeUpdate{}},
		},
		VehiclePositions: []feed.VehiclePosition{{ID: "V1"}},
		FetchedAt:        time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
	})
	return store
}

func TestHandleFeedReturnsSnapshot(t *testing.T) {
	srv := New(0, publishedStore(), nil, nil)

	rec := httptest.NewRecorder()
	srv.handleFeed(rec, httptest.NewRequest("GET", "/api/feed", nil))

	var body struct {
		TripUpdates []feed.TripUpdate `json:"tripUpdates"`
		FetchedAt   *string           `json:"fetchedAt"`
	}
	decodeBody(t, rec, &body)

	if len(body.TripUpdates) != 2 {
		t.Errorf("expected 2 trip updates, got %d", len(body.TripUpdates))
	}
	if body.FetchedAt == nil || *body.FetchedAt != "2023-11-14T22:13:20Z" {
		t.Errorf("unexpected fetchedAt: %v", body.FetchedAt)
	}
}

func TestHandleFeedSearch(t *testing.T) {
	srv := New(0, publishedStore(), nil, nil)

	rec := httptest.NewRecorder()
	srv.handleFeed(rec, httptest.NewRequest("GET", "/api/feed?q=m15", nil))

	var body struct {
		TripUpdates []feed.TripUpdate `json:"tripUpdates"`
	}
	decodeBody(t, rec, &body)

	if len(body.TripUpdates) != 1 || body.TripUpdates[0].RouteID != "M15" {
		t.Errorf("expected only the M15 trip, got %+v", body.TripUpdates)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := New(0, publishedStore(), nil, nil)

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest("GET", "/api/health", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status    string  `json:"status"`
		FetchedAt *string `json:"fetchedAt"`
		LastError *string `json:"lastError"`
	}
	decodeBody(t, rec, &body)

	if body.Status != "ok" {
		t.Errorf("expected status ok, got %s", body.Status)
	}
	if body.FetchedAt == nil {
		t.Error("expected fetchedAt to be set")
	}
	if body.LastError != nil {
		t.Errorf("expected null lastError, got %v", *body.LastError)
	}
}
