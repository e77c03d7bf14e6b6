package pipeline

import (
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/netlearn/pkg/bn"
	"github.com/matzehuels/netlearn/pkg/cache"
	"github.com/matzehuels/netlearn/pkg/errors"
	netio "github.com/matzehuels/netlearn/pkg/io"
	"github.com/matzehuels/netlearn/pkg/render"
	"github.com/matzehuels/netlearn/pkg/score"
	"github.com/matzehuels/netlearn/pkg/search"
)

// Runner executes the learning pipeline with caching support.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a Runner. Nil arguments fall back to a no-op cache,
// the default keyer, and the default logger.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: k, Logger: logger}
}

// Execute runs the full pipeline: load the dataset, learn the structure,
// and serialize the requested artifacts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: load.
	loadStart := time.Now()
	raw := opts.Data
	if raw == nil {
		var err error
		raw, err = os.ReadFile(opts.DatasetPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read dataset %s", opts.DatasetPath)
		}
	}
	ds, err := bn.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse dataset")
	}
	result.Dataset = ds
	result.DatasetHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Variables = ds.NumVariables()

	r.Logger.Debug("dataset loaded",
		"variables", ds.NumVariables(),
		"rows", ds.NumRows(),
		"duration", result.Stats.LoadTime)

	ordering, err := resolveOrdering(opts.Ordering, ds.NumVariables(), opts.Seed)
	if err != nil {
		return nil, err
	}
	result.Ordering = ordering

	// Stage 2: learn, consulting the cache first.
	learnStart := time.Now()
	key := r.Keyer.NetworkKey(result.DatasetHash, cache.NetworkKeyOpts{
		Ordering:   opts.Ordering,
		Seed:       opts.Seed,
		MaxParents: opts.MaxParents,
	})

	var net *bn.Network
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		} else if ok {
			cached, vars, err := netio.ReadJSON(bytes.NewReader(data))
			if err != nil || len(vars) != ds.NumVariables() {
				r.Logger.Warn("discarding unreadable cache entry", "key", key)
			} else {
				net = cached
				result.CacheHit = true
				r.Logger.Debug("cache hit", "key", key)
			}
		}
	}

	if net == nil {
		k2 := search.K2{
			Ordering:   ordering,
			MaxParents: opts.MaxParents,
			Workers:    opts.Workers,
			Progress:   opts.Progress,
		}
		net, err = k2.Fit(ctx, ds)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := netio.WriteJSON(net, ds.Variables, &buf); err == nil {
			if err := r.Cache.Set(ctx, key, buf.Bytes(), opts.CacheTTL); err != nil {
				r.Logger.Warn("cache store failed", "key", key, "error", err)
			}
		}
	}
	result.Network = net
	result.Stats.LearnTime = time.Since(learnStart)
	result.Stats.Edges = net.EdgeCount()

	result.Score, err = score.Evaluate(ds, net)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("structure learned",
		"variables", ds.NumVariables(),
		"edges", net.EdgeCount(),
		"score", result.Score,
		"cached", result.CacheHit,
		"duration", result.Stats.LearnTime)

	// Stage 3: export.
	exportStart := time.Now()
	for _, format := range opts.Formats {
		data, err := r.export(format, net, ds.Variables, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data
	}
	result.Stats.ExportTime = time.Since(exportStart)

	return result, nil
}

func (r *Runner) export(format string, net *bn.Network, vars []bn.Variable, opts Options) ([]byte, error) {
	renderOpts := render.Options{Detailed: opts.Detailed}
	switch format {
	case FormatGPH:
		var buf bytes.Buffer
		if err := netio.WriteGPH(net, vars, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return netio.MarshalJSON(net, vars)
	case FormatDOT:
		return []byte(render.ToDOT(net, vars, renderOpts)), nil
	case FormatSVG:
		return render.RenderSVG(render.ToDOT(net, vars, renderOpts))
	case FormatPNG:
		return render.RenderPNG(render.ToDOT(net, vars, renderOpts))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

// resolveOrdering turns an ordering spec into a permutation of variable
// indices. Specs are "identity", "random", or an explicit comma-separated
// list like "2,0,1".
func resolveOrdering(spec string, n int, seed uint64) ([]int, error) {
	switch spec {
	case "", OrderingIdentity:
		return search.Identity(n), nil
	case OrderingRandom:
		return search.Random(n, seed), nil
	}
	parts := strings.Split(spec, ",")
	ordering := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidOrdering, "bad ordering element %q", p)
		}
		ordering = append(ordering, v)
	}
	if err := search.ValidateOrdering(ordering, n); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOrdering, err, "ordering %q", spec)
	}
	return ordering, nil
}
