package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// GenCmd generates a constellation dataset and writes it as JSON.
var GenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a constellation dataset as JSON",
	Long: `Generate a constellation and write it as a JSON node array. With a
non-zero --seed the output is reproducible; otherwise each run differs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		nodes, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding dataset")
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" || out == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", out)
		}

		games, creators, developers := typeCounts(nodes)
		color.Green("wrote %d nodes to %s", len(nodes), out)
		fmt.Printf("  games: %d  creators: %d  developers: %d\n", games, creators, developers)
		return nil
	},
}

func init() {
	addDatasetFlags(GenCmd)
	GenCmd.Flags().StringP("out", "o", "-", "Output file (- for stdout)")
}
