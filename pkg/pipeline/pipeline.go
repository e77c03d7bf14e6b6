// Package pipeline provides the core learning pipeline for netlearn.
//
// This package implements the complete load → learn → export flow shared by
// the CLI and the HTTP API. Centralizing it keeps option defaults, caching,
// and artifact generation identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse the CSV dataset and infer variable cardinalities
//  2. Learn: run the K2 structure search over the requested ordering
//  3. Export: serialize the learned network (gph, JSON, DOT, SVG, PNG)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetPath: "data.csv",
//	    Ordering:    "random",
//	    Seed:        42,
//	    Formats:     []string{"gph"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gph := result.Artifacts["gph"]
package pipeline

import (
	"time"

	"github.com/matzehuels/netlearn/pkg/bn"
	"github.com/matzehuels/netlearn/pkg/errors"
	"github.com/matzehuels/netlearn/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for ordering generation.
	// A fixed default keeps runs reproducible unless the caller opts out.
	DefaultSeed = uint64(42)

	// DefaultOrdering is the default ordering spec.
	DefaultOrdering = OrderingIdentity

	// DefaultCacheTTL is how long learned networks stay cached.
	DefaultCacheTTL = 24 * time.Hour
)

// Ordering specs understood by the pipeline. Anything else is parsed as a
// comma-separated list of variable indices.
const (
	OrderingIdentity = "identity"
	OrderingRandom   = "random"
)

// Format constants for output artifacts.
const (
	FormatGPH  = "gph"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatGPH:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options configures a pipeline execution.
type Options struct {
	// DatasetPath is the CSV file to learn from. Ignored when Data is set.
	DatasetPath string

	// Data is the raw CSV content. Takes precedence over DatasetPath; the
	// API uses this for uploaded datasets.
	Data []byte

	// Ordering is the ordering spec: "identity", "random", or an explicit
	// comma-separated permutation like "2,0,1".
	Ordering string

	// Seed drives the "random" ordering. Ignored for other specs.
	Seed uint64

	// MaxParents caps parents per variable (0 = no cap).
	MaxParents int

	// Workers sets candidate-scan parallelism (values below 2 = sequential).
	Workers int

	// Formats lists the artifacts to produce. Defaults to just gph.
	Formats []string

	// Detailed includes cardinality annotations in DOT output.
	Detailed bool

	// Refresh bypasses the cache lookup (the result is still stored).
	Refresh bool

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration

	// Progress, when set, receives search updates.
	Progress func(search.Update)
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.DatasetPath == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no dataset provided")
	}
	if o.Ordering == "" {
		o.Ordering = DefaultOrdering
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatGPH}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
		}
	}
	if o.MaxParents < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max parents must be non-negative")
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Stats captures per-stage timing and result size.
type Stats struct {
	LoadTime   time.Duration
	LearnTime  time.Duration
	ExportTime time.Duration
	Variables  int
	Edges      int
}

// Result is the outcome of a pipeline execution.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Network is the learned structure.
	Network *bn.Network

	// Dataset is the parsed input the network was learned against.
	Dataset *bn.Dataset

	// Score is the total Bayesian score of Network given Dataset.
	Score float64

	// DatasetHash is the SHA-256 of the raw dataset bytes.
	DatasetHash string

	// Ordering is the resolved permutation the search respected.
	Ordering []int

	// Artifacts maps format name to serialized output.
	Artifacts map[string][]byte

	// CacheHit reports whether the network came from the cache.
	CacheHit bool

	// Stats holds stage timings.
	Stats Stats
}
