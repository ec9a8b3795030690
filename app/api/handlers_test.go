package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyericho/backkeeper/app/cfg"
	"github.com/hyericho/backkeeper/app/config"
	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/pipeline"
)

type memoryRunRepo struct {
	runs []database.Run
}

func (r *memoryRunRepo) InsertRun(run database.Run) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *memoryRunRepo) ListRecent(limit int) ([]database.Run, error) {
	if limit > len(r.runs) {
		limit = len(r.runs)
	}
	return r.runs[:limit], nil
}

func (r *memoryRunRepo) GetRunCount() (int, error) {
	return len(r.runs), nil
}

func newTestServer(repo *memoryRunRepo) http.Handler {
	// An unconfigured runner exercises the config-error path without any
	// network access
	runner := pipeline.NewRunner(&cfg.Cfg{}, config.Default(), nil, nil, nil, nil)
	handler := NewHandler(runner, repo, "test")
	return NewServer(handler)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(&memoryRunRepo{})

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("GET %s returned %d", path, w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["status"] != "ok" {
			t.Errorf("GET %s status = %q, expected 'ok'", path, body["status"])
		}
	}
}

func TestCreateTaskEcho(t *testing.T) {
	server := newTestServer(&memoryRunRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tasks/create", strings.NewReader(`{"title": "재고 확인", "priority": 2}`))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	received, _ := body["received"].(map[string]interface{})
	if received["title"] != "재고 확인" {
		t.Errorf("Expected echoed title, got %v", received["title"])
	}
}

func TestCreateTaskUsageHint(t *testing.T) {
	server := newTestServer(&memoryRunRepo{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/create", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "POST") {
		t.Errorf("Expected usage hint mentioning POST, got %q", w.Body.String())
	}
}

func TestCreateTaskInvalidJSON(t *testing.T) {
	server := newTestServer(&memoryRunRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tasks/create", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	server.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestPipelineTriggerConfigError(t *testing.T) {
	repo := &memoryRunRepo{}
	server := newTestServer(repo)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/run_automation", nil))

	// Missing configuration is a soft failure: HTTP 200 with an error
	// summary, visible to the caller without a server error
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var summary pipeline.RunSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Status != pipeline.RunStatusError {
		t.Errorf("Expected status 'error', got %q", summary.Status)
	}
	if summary.Message == "" {
		t.Error("Expected a message naming the missing configuration")
	}

	// The run was still recorded
	if len(repo.runs) != 1 {
		t.Errorf("Expected 1 recorded run, got %d", len(repo.runs))
	}
}

func TestListRuns(t *testing.T) {
	repo := &memoryRunRepo{runs: []database.Run{
		{ID: "run-1", Pipeline: "summarize", Status: "ok"},
		{ID: "run-2", Pipeline: "daily_report", Status: "ok"},
	}}
	server := newTestServer(repo)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs?limit=1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Runs  []database.Run `json:"runs"`
		Total int            `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Total != 1 || len(body.Runs) != 1 {
		t.Errorf("Expected 1 run with limit=1, got %d", len(body.Runs))
	}
}

func TestRootInfo(t *testing.T) {
	server := newTestServer(&memoryRunRepo{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["service"] != "Backkeeper" {
		t.Errorf("Expected service name, got %v", body["service"])
	}
}
