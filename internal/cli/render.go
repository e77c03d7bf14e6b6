package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netlearn/pkg/bn"
	netio "github.com/matzehuels/netlearn/pkg/io"
	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path
	format   string // dot, svg, or png
	dataset  string // CSV providing variables for gph inputs
	detailed bool   // annotate nodes with cardinality and parent count
}

// renderCommand creates the render command for visualizing a learned
// network. JSON network files are self-contained; gph files need --dataset
// to resolve variable names.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [network.json|network.gph]",
		Short: "Render a learned network to DOT, SVG, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "", "CSV dataset supplying variables (required for gph input)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate nodes with cardinality and parent count")

	return cmd
}

func (c *CLI) runRender(input string, opts *renderOpts) error {
	net, vars, err := loadNetworkFile(input, opts.dataset)
	if err != nil {
		return err
	}

	dot := render.ToDOT(net, vars, render.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case pipeline.FormatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = render.RenderSVG(dot)
	case pipeline.FormatPNG:
		data, err = render.RenderPNG(dot)
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", opts.format)
	}
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := writeArtifact(path, data); err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printFile(path)
	return nil
}

// loadNetworkFile reads a network together with its variable list. JSON
// files are self-contained; gph files take their variables from the dataset.
func loadNetworkFile(path, datasetPath string) (*bn.Network, []bn.Variable, error) {
	if filepath.Ext(path) == ".json" {
		return netio.ImportJSON(path)
	}
	if datasetPath == "" {
		return nil, nil, fmt.Errorf("gph input needs --dataset to resolve variable names")
	}
	ds, err := bn.ReadCSVFile(datasetPath)
	if err != nil {
		return nil, nil, err
	}
	net, err := netio.ImportGPH(path, ds.Variables)
	if err != nil {
		return nil, nil, err
	}
	return net, ds.Variables, nil
}
