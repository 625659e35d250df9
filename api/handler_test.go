package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"schedsim/config"
	"schedsim/internal/history"
	"schedsim/internal/responses"
)

func newTestApp(t *testing.T) (*fiber.App, history.Store) {
	t.Helper()

	cfg := &config.Config{
		Environment:           "test",
		Port:                  9095,
		RoundRobinTimeQuantum: 2,
		History:               config.HistoryConfig{Backend: history.BackendMemory, Limit: 10},
	}
	store := history.NewMemoryStore(cfg.History.Limit)
	handler := NewSchedulerHandlerImpl(cfg, store, zerolog.New(io.Discard))

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, store
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp
}

func decodeSchedule(t *testing.T, resp *http.Response) responses.ScheduleResponse {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var result responses.ScheduleResponse
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode response %q: %v", data, err)
	}
	return result
}

func TestScheduleEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"algorithm":"fcfs","processes":[
		{"id":"A","arrival_time":0,"burst_time":4},
		{"id":"B","arrival_time":1,"burst_time":3},
		{"id":"C","arrival_time":2,"burst_time":1}]}`
	resp := doRequest(t, app, "POST", "/api/v1/schedule", body, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	result := decodeSchedule(t, resp)
	if result.Algorithm != "fcfs" {
		t.Errorf("algorithm = %s, want fcfs", result.Algorithm)
	}
	if len(result.Details) != 3 || result.Details[0].ID != "A" || result.Details[2].ID != "C" {
		t.Errorf("unexpected details: %+v", result.Details)
	}
	if want := 8.0 / 3.0; math.Abs(result.AverageWaitingTime-want) > 1e-9 {
		t.Errorf("average_waiting_time = %v, want %v", result.AverageWaitingTime, want)
	}
	if len(result.Timeline) != 3 || result.Timeline[2].End != 8 {
		t.Errorf("unexpected timeline: %+v", result.Timeline)
	}
	if result.TimeQuantum != 0 {
		t.Errorf("time_quantum echoed on a non-rr run: %d", result.TimeQuantum)
	}
}

func TestAlgorithmEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"processes":[
		{"id":"A","arrival_time":0,"burst_time":3,"priority":2},
		{"id":"B","arrival_time":1,"burst_time":2,"priority":1}]}`

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/v1/fcfs", want: "fcfs"},
		{path: "/api/v1/sjf", want: "sjf"},
		{path: "/api/v1/priority", want: "priority"},
		{path: "/api/v1/rr", want: "rr"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			resp := doRequest(t, app, "POST", tt.path, body, nil)
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			result := decodeSchedule(t, resp)
			if result.Algorithm != tt.want {
				t.Errorf("algorithm = %s, want %s", result.Algorithm, tt.want)
			}
			if len(result.Details) != 2 {
				t.Errorf("len(details) = %d, want 2", len(result.Details))
			}
		})
	}
}

func TestScheduleRejectsBadRequests(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "unsupported algorithm", path: "/api/v1/schedule", body: `{"algorithm":"lottery","processes":[{"id":"A","arrival_time":0,"burst_time":1}]}`},
		{name: "empty processes", path: "/api/v1/fcfs", body: `{"processes":[]}`},
		{name: "missing priority", path: "/api/v1/priority", body: `{"processes":[{"id":"A","arrival_time":0,"burst_time":1}]}`},
		{name: "negative quantum", path: "/api/v1/rr", body: `{"time_quantum":-1,"processes":[{"id":"A","arrival_time":0,"burst_time":1}]}`},
		{name: "negative arrival", path: "/api/v1/fcfs", body: `{"processes":[{"id":"A","arrival_time":-4,"burst_time":1}]}`},
		{name: "malformed json", path: "/api/v1/schedule", body: `{"processes":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, "POST", tt.path, tt.body, nil)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRoundRobinDefaultQuantum(t *testing.T) {
	app, _ := newTestApp(t)

	// No quantum in the body: the configured default (2) applies.
	body := `{"processes":[
		{"id":"A","arrival_time":0,"burst_time":5},
		{"id":"B","arrival_time":1,"burst_time":3}]}`
	resp := doRequest(t, app, "POST", "/api/v1/rr", body, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	result := decodeSchedule(t, resp)
	if result.TimeQuantum != 2 {
		t.Errorf("time_quantum = %d, want 2", result.TimeQuantum)
	}
	if len(result.Timeline) != 5 {
		t.Fatalf("len(timeline) = %d, want 5", len(result.Timeline))
	}
	if result.Timeline[1].ProcessID != "B" || result.Timeline[1].Start != 2 || result.Timeline[1].End != 4 {
		t.Errorf("second block = %+v, want B [2,4)", result.Timeline[1])
	}
}

func TestAllAlgorithmsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"time_quantum":2,"processes":[
		{"id":"A","arrival_time":0,"burst_time":4,"priority":2},
		{"id":"B","arrival_time":1,"burst_time":3,"priority":1}]}`
	resp := doRequest(t, app, "POST", "/api/v1/all", body, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var comparison responses.ComparisonResponse
	if err := json.Unmarshal(data, &comparison); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	want := []string{"fcfs", "sjf", "priority", "rr"}
	if len(comparison.Results) != len(want) {
		t.Fatalf("len(results) = %d, want %d", len(comparison.Results), len(want))
	}
	for i, result := range comparison.Results {
		if result.Algorithm != want[i] {
			t.Errorf("results[%d].algorithm = %s, want %s", i, result.Algorithm, want[i])
		}
	}
}

func TestHistoryFlow(t *testing.T) {
	app, _ := newTestApp(t)
	session := map[string]string{SessionHeader: "session-1"}

	fcfsBody := `{"algorithm":"fcfs","processes":[{"id":"A","arrival_time":0,"burst_time":2}]}`
	sjfBody := `{"algorithm":"sjf","processes":[{"id":"A","arrival_time":0,"burst_time":2}]}`

	if resp := doRequest(t, app, "POST", "/api/v1/schedule", fcfsBody, session); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("schedule status = %d, want 200", resp.StatusCode)
	}
	if resp := doRequest(t, app, "POST", "/api/v1/schedule", sjfBody, session); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("schedule status = %d, want 200", resp.StatusCode)
	}

	resp := doRequest(t, app, "GET", "/api/v1/history", "", session)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("history status = %d, want 200", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var listing struct {
		History []history.Record `json:"history"`
		Count   int              `json:"count"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if listing.Count != 2 || len(listing.History) != 2 {
		t.Fatalf("count = %d, len = %d, want 2 and 2", listing.Count, len(listing.History))
	}
	if listing.History[0].Algorithm != "sjf" || listing.History[1].Algorithm != "fcfs" {
		t.Errorf("history not newest first: %s then %s", listing.History[0].Algorithm, listing.History[1].Algorithm)
	}

	if resp := doRequest(t, app, "DELETE", "/api/v1/history", "", session); resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", resp.StatusCode)
	}

	resp = doRequest(t, app, "GET", "/api/v1/history", "", session)
	data, err = io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if listing.Count != 0 {
		t.Errorf("count after clear = %d, want 0", listing.Count)
	}

	// Runs without a session header are never recorded, and history
	// routes require the header.
	if resp := doRequest(t, app, "POST", "/api/v1/schedule", fcfsBody, nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("schedule status = %d, want 200", resp.StatusCode)
	}
	if resp := doRequest(t, app, "GET", "/api/v1/history", "", nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("history without session = %d, want 400", resp.StatusCode)
	}
	if resp := doRequest(t, app, "DELETE", "/api/v1/history", "", nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("clear without session = %d, want 400", resp.StatusCode)
	}
}

func TestAlgorithmsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/api/v1/algorithms", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	var listing struct {
		Algorithms []string `json:"algorithms"`
	}
	if err := json.Unmarshal(data, &listing); err != nil {
		t.Fatalf("decode algorithms: %v", err)
	}
	want := []string{"fcfs", "sjf", "priority", "rr"}
	if len(listing.Algorithms) != len(want) {
		t.Fatalf("algorithms = %v, want %v", listing.Algorithms, want)
	}
	for i := range want {
		if listing.Algorithms[i] != want[i] {
			t.Errorf("algorithms[%d] = %s, want %s", i, listing.Algorithms[i], want[i])
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "GET", "/health", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
