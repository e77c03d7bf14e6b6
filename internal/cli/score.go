package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netlearn/pkg/bn"
	netio "github.com/matzehuels/netlearn/pkg/io"
	"github.com/matzehuels/netlearn/pkg/score"
)

// scoreCommand creates the score command, which evaluates an existing
// network structure against a dataset.
func (c *CLI) scoreCommand() *cobra.Command {
	var perVariable bool

	cmd := &cobra.Command{
		Use:   "score [dataset.csv] [network.gph|network.json]",
		Short: "Compute the Bayesian score of a network against a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScore(cmd, args[0], args[1], perVariable)
		},
	}

	cmd.Flags().BoolVar(&perVariable, "per-variable", false, "also print each variable's family score")

	return cmd
}

func (c *CLI) runScore(cmd *cobra.Command, datasetPath, networkPath string, perVariable bool) error {
	logger := loggerFromContext(cmd.Context())

	ds, err := bn.ReadCSVFile(datasetPath)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded", "variables", ds.NumVariables(), "rows", ds.NumRows())

	net, err := loadNetwork(networkPath, ds.Variables)
	if err != nil {
		return err
	}
	logger.Debug("network loaded", "edges", net.EdgeCount())

	total, err := score.Evaluate(ds, net)
	if err != nil {
		return err
	}

	printSuccess("Scored %s against %s", filepath.Base(networkPath), filepath.Base(datasetPath))
	printKeyValue("score", fmt.Sprintf("%.6f", total))
	printKeyValue("edges", fmt.Sprintf("%d", net.EdgeCount()))

	if perVariable {
		for i, v := range ds.Variables {
			y, err := score.Family(ds, net, i)
			if err != nil {
				return err
			}
			printDetail("%-20s %.6f (%d parents)", v.Name, y, len(net.Parents(i)))
		}
	}
	return nil
}

// loadNetwork reads a network file, dispatching on extension. JSON files
// carry their own variable list, which must line up with the dataset's
// variables; gph files are resolved against the dataset directly.
func loadNetwork(path string, vars []bn.Variable) (*bn.Network, error) {
	switch filepath.Ext(path) {
	case ".json":
		net, fileVars, err := netio.ImportJSON(path)
		if err != nil {
			return nil, err
		}
		if len(fileVars) != len(vars) {
			return nil, fmt.Errorf("network has %d variables, dataset has %d", len(fileVars), len(vars))
		}
		for i := range fileVars {
			if fileVars[i].Name != vars[i].Name {
				return nil, fmt.Errorf("variable %d is %q in network but %q in dataset", i, fileVars[i].Name, vars[i].Name)
			}
		}
		return net, nil
	default:
		return netio.ImportGPH(path, vars)
	}
}
