package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/netlearn/pkg/bn"
	"github.com/matzehuels/netlearn/pkg/errors"
	netio "github.com/matzehuels/netlearn/pkg/io"
	"github.com/matzehuels/netlearn/pkg/metrics"
	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/render"
	"github.com/matzehuels/netlearn/pkg/store"
)

// maxDatasetBytes caps uploaded CSV size.
const maxDatasetBytes = 32 << 20

// runView is the JSON shape of a run in API responses. Network carries the
// serialized network document and is omitted in list responses.
type runView struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	DatasetHash string          `json:"dataset_hash"`
	Ordering    string          `json:"ordering"`
	Seed        uint64          `json:"seed"`
	MaxParents  int             `json:"max_parents,omitempty"`
	Score       float64         `json:"score"`
	Variables   int             `json:"variables"`
	Edges       int             `json:"edges"`
	Network     json.RawMessage `json:"network,omitempty"`
	CacheHit    bool            `json:"cache_hit,omitempty"`
}

func viewOf(run store.Run, withNetwork bool) runView {
	v := runView{
		ID:          run.ID,
		CreatedAt:   run.CreatedAt,
		DatasetHash: run.DatasetHash,
		Ordering:    run.Ordering,
		Seed:        run.Seed,
		MaxParents:  run.MaxParents,
		Score:       run.Score,
		Variables:   run.Variables,
		Edges:       run.Edges,
	}
	if withNetwork {
		v.Network = json.RawMessage(run.Network)
	}
	return v
}

// POST /api/learn accepts a CSV dataset as the request body and runs the
// structure search. Learn parameters come from query string: ordering, seed,
// max_parents, workers, refresh.
func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDatasetBytes))
	if err != nil {
		metrics.LearnRequests.WithLabelValues("error").Inc()
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "read request body: %v", err))
		return
	}

	opts := pipeline.Options{
		Data:     data,
		Ordering: r.URL.Query().Get("ordering"),
		Seed:     pipeline.DefaultSeed,
		Formats:  []string{pipeline.FormatJSON},
		Refresh:  r.URL.Query().Get("refresh") == "true",
	}
	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "bad seed %q", v))
			return
		}
		opts.Seed = seed
	}
	if v := q.Get("max_parents"); v != "" {
		mp, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "bad max_parents %q", v))
			return
		}
		opts.MaxParents = mp
	}
	if v := q.Get("workers"); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "bad workers %q", v))
			return
		}
		opts.Workers = workers
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		metrics.LearnRequests.WithLabelValues("error").Inc()
		writeError(w, statusForError(err), err)
		return
	}
	metrics.LearnRequests.WithLabelValues("ok").Inc()
	metrics.LearnDuration.Observe(time.Since(start).Seconds())
	metrics.NetworkEdges.Observe(float64(result.Stats.Edges))
	if result.CacheHit {
		metrics.CacheHits.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	run := store.Run{
		ID:          result.RunID,
		CreatedAt:   time.Now().UTC(),
		DatasetHash: result.DatasetHash,
		Ordering:    opts.Ordering,
		Seed:        opts.Seed,
		MaxParents:  opts.MaxParents,
		Score:       result.Score,
		Variables:   result.Stats.Variables,
		Edges:       result.Stats.Edges,
		Network:     result.Artifacts[pipeline.FormatJSON],
	}
	if err := s.runs.Put(r.Context(), run); err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "store run"))
		return
	}
	metrics.RunsStored.Inc()

	view := viewOf(run, true)
	view.CacheHit = result.CacheHit
	writeJSON(w, http.StatusCreated, view)
}

// GET /api/runs lists stored runs, newest first. The limit query parameter
// caps the result (default 50).
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "bad limit %q", v))
			return
		}
		limit = n
	}
	runs, err := s.runs.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "list runs"))
		return
	}
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, viewOf(run, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": views, "count": len(views)})
}

// GET /api/runs/{id} returns one run including its network document.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(run, true))
}

// GET /api/runs/{id}/gph returns the learned structure in gph edge-list form.
func (s *Server) handleRunGPH(w http.ResponseWriter, r *http.Request) {
	net, vars, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := netio.WriteGPH(net, vars, &buf); err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "encode gph"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// GET /api/runs/{id}/dot returns the Graphviz DOT rendering.
func (s *Server) handleRunDOT(w http.ResponseWriter, r *http.Request) {
	net, vars, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(render.ToDOT(net, vars, render.Options{})))
}

// GET /api/runs/{id}/svg renders the learned network as SVG.
func (s *Server) handleRunSVG(w http.ResponseWriter, r *http.Request) {
	net, vars, ok := s.lookupNetwork(w, r)
	if !ok {
		return
	}
	svg, err := render.RenderSVG(render.ToDOT(net, vars, render.Options{}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (store.Run, bool) {
	id := chi.URLParam(r, "id")
	run, err := s.runs.Get(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeRunNotFound, "run %s not found", id))
		} else {
			writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "load run"))
		}
		return store.Run{}, false
	}
	return run, true
}

func (s *Server) lookupNetwork(w http.ResponseWriter, r *http.Request) (*bn.Network, []bn.Variable, bool) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return nil, nil, false
	}
	net, vars, err := netio.ReadJSON(bytes.NewReader(run.Network))
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "decode stored network"))
		return nil, nil, false
	}
	return net, vars, true
}
