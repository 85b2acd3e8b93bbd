// Package commands implements the constel CLI subcommands.
package commands

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ludex/constel/pkg/config"
	"github.com/ludex/constel/pkg/engine"
	"github.com/ludex/constel/pkg/scene"
)

// ConfigPath is the configuration file location, bound to the root
// command's --config flag.
var ConfigPath string

// addDatasetFlags registers the flags shared by every command that
// needs a constellation to work on.
func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().String("script", "", "Scene script file describing the constellation")
	cmd.Flags().Int("count", 0, "Number of nodes to generate (0 uses the configured default)")
	cmd.Flags().Int64("seed", 0, "Generator seed (0 seeds from the clock)")
}

// loadDataset resolves a node collection from the command's flags:
// a scene script when --script is given, otherwise the default
// generator driven by --count/--seed layered over the configuration.
func loadDataset(cmd *cobra.Command, cfg *config.Config) (scene.Collection, error) {
	script, _ := cmd.Flags().GetString("script")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")

	if script != "" {
		source, err := os.ReadFile(script)
		if err != nil {
			return nil, errors.Wrapf(err, "reading script %s", script)
		}

		nodes, evalErrs, err := engine.NewEngine().Evaluate(string(source))
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating %s", script)
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				color.Red("%s: %s", script, e.Error())
			}
			return nil, errors.Newf("%s: %d script error(s)", script, len(evalErrs))
		}
		return nodes, nil
	}

	if count <= 0 {
		count = cfg.Generator.Count
	}
	if seed == 0 {
		seed = cfg.Generator.Seed
	}
	if seed == 0 {
		return scene.Generate(count), nil
	}
	return scene.GenerateSeeded(count, seed), nil
}

// loadConfig reads the TOML configuration named by --config, falling
// back to defaults when the file does not exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", ConfigPath)
	}
	return cfg, nil
}

// typeCounts tallies a collection by node type for summary output.
func typeCounts(nodes scene.Collection) (games, creators, developers int) {
	for _, n := range nodes {
		switch n.Type {
		case scene.NodeGame:
			games++
		case scene.NodeCreator:
			creators++
		case scene.NodeDeveloper:
			developers++
		}
	}
	return games, creators, developers
}
