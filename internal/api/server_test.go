package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/store"
)

const surveyCSV = "a,b,c\n1,1,1\n1,1,2\n2,2,2\n2,2,1\n"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(pipeline.NewRunner(nil, nil, nil), store.NewMemoryStore(), nil)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func postLearn(t *testing.T, srv *httptest.Server, query string) runView {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/learn"+query, "text/csv", strings.NewReader(surveyCSV))
	if err != nil {
		t.Fatalf("POST /api/learn error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /api/learn status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var view runView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return view
}

func TestLearnEndpoint(t *testing.T) {
	srv := newTestServer(t)

	view := postLearn(t, srv, "")
	if view.ID == "" {
		t.Error("response has empty run ID")
	}
	if view.Variables != 3 {
		t.Errorf("variables = %d, want 3", view.Variables)
	}
	if view.Edges != 1 {
		t.Errorf("edges = %d, want 1", view.Edges)
	}
	if view.Score >= 0 {
		t.Errorf("score = %v, want negative", view.Score)
	}
	if len(view.Network) == 0 {
		t.Error("response missing network document")
	}
}

func TestLearnEndpointBadInput(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
		body  string
	}{
		{"bad seed", "?seed=banana", surveyCSV},
		{"bad max_parents", "?max_parents=two", surveyCSV},
		{"bad ordering", "?ordering=0,1", surveyCSV},
		{"empty body", "", ""},
		{"ragged csv", "", "a,b\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/learn"+tt.query, "text/csv", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestRunEndpoints(t *testing.T) {
	srv := newTestServer(t)
	view := postLearn(t, srv, "")

	t.Run("get run", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/runs/" + view.ID)
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		var got runView
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != view.ID {
			t.Errorf("run ID = %q, want %q", got.ID, view.ID)
		}
	})

	t.Run("gph export", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/runs/" + view.ID + "/gph")
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if got := string(body); got != "a, b\n" {
			t.Errorf("gph body = %q, want %q", got, "a, b\n")
		}
	})

	t.Run("list runs", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/runs")
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()
		var body struct {
			Runs  []runView `json:"runs"`
			Count int       `json:"count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Count != 1 || len(body.Runs) != 1 {
			t.Fatalf("count = %d with %d runs, want 1", body.Count, len(body.Runs))
		}
		if len(body.Runs[0].Network) != 0 {
			t.Error("list response should omit network documents")
		}
	})

	t.Run("missing run", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/runs/does-not-exist")
		if err != nil {
			t.Fatalf("GET error = %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
		}
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
