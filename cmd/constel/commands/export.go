package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ludex/constel/pkg/kernel/sdfx"
	"github.com/ludex/constel/pkg/tessellate"
)

// ExportCmd converts a constellation into triangle meshes.
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a constellation as triangle meshes",
	Long: `Export the constellation as a JSON array of triangle meshes: one
sphere marker per node and one strut per link. The mesh format is flat
vertex/normal/index arrays, suitable for loading into external 3D tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		nodes, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		meshes, err := tessellate.Tessellate(nodes, sdfx.New())
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(meshes, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding meshes")
		}

		out, _ := cmd.Flags().GetString("out")
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", out)
		}

		var triangles int
		for _, m := range meshes {
			triangles += m.TriangleCount()
		}
		color.Green("wrote %d meshes to %s", len(meshes), out)
		fmt.Printf("  nodes: %d  triangles: %d\n", len(nodes), triangles)
		return nil
	},
}

func init() {
	addDatasetFlags(ExportCmd)
	ExportCmd.Flags().StringP("out", "o", "meshes.json", "Output file")
}
