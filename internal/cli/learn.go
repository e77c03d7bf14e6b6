package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netlearn/pkg/pipeline"
)

// learnOpts holds the command-line flags for the learn command.
type learnOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: gph, json, dot, svg, png
	ordering   string   // ordering spec: identity, random, or explicit list
	seed       uint64   // seed for the random ordering
	maxParents int      // parent cap per variable (0 = unlimited)
	workers    int      // candidate-scan parallelism
	detailed   bool     // annotate DOT/SVG nodes with cardinalities
	noCache    bool     // disable the result cache
	refresh    bool     // bypass cache lookup, recompute and re-store
	tui        bool     // show live search progress
}

// learnCommand creates the learn command for structure search.
//
// Default settings come from the config file where present:
//   - ordering: identity (use "random" with --seed for a shuffled order)
//   - formats: gph
//   - cache: file-backed under the XDG cache directory
func (c *CLI) learnCommand() *cobra.Command {
	var formatsStr string
	opts := learnOpts{
		ordering:   pipeline.DefaultOrdering,
		seed:       c.Config.Seed,
		maxParents: c.Config.MaxParents,
		workers:    c.Config.Workers,
	}

	cmd := &cobra.Command{
		Use:   "learn [dataset.csv]",
		Short: "Learn a network structure from a CSV dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runLearn(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): gph (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.ordering, "ordering", opts.ordering, "variable ordering: identity (default), random, or explicit like 2,0,1")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "seed for the random ordering")
	cmd.Flags().IntVar(&opts.maxParents, "max-parents", opts.maxParents, "maximum parents per variable (0 = unlimited)")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "parallel candidate scoring workers (0 = sequential)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate rendered nodes with cardinality and parent count")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show live search progress")

	return cmd
}

// runLearn executes the pipeline for the learn command and writes the
// requested artifacts next to the input (or under --output).
func (c *CLI) runLearn(cmd *cobra.Command, input string, opts *learnOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	pipeOpts := pipeline.Options{
		DatasetPath: input,
		Ordering:    opts.ordering,
		Seed:        opts.seed,
		MaxParents:  opts.maxParents,
		Workers:     opts.workers,
		Formats:     opts.formats,
		Detailed:    opts.detailed,
		Refresh:     opts.refresh,
	}

	prog := newProgress(loggerFromContext(cmd.Context()))

	var result *pipeline.Result
	if opts.tui {
		result, err = runLearnTUI(cmd.Context(), runner, pipeOpts)
	} else {
		spinner := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Learning structure from %s", input))
		spinner.Start()
		result, err = runner.Execute(cmd.Context(), pipeOpts)
		if err != nil {
			spinner.StopWithError("Learning failed")
			return err
		}
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Learned %d edges from %s", result.Stats.Edges, input))
	printStats(result.Stats.Variables, result.Stats.Edges, result.Score, result.CacheHit)
	if opts.ordering == pipeline.OrderingRandom {
		printDetail("ordering: random (seed %d)", opts.seed)
	} else {
		printDetail("ordering: %s", opts.ordering)
	}
	for _, format := range opts.formats {
		path := base + "." + format
		if opts.output != "" && len(opts.formats) == 1 {
			path = opts.output
		}
		printFile(path)
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output itself
// carries a known format extension, that extension is stripped so the format
// suffix is not doubled.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
