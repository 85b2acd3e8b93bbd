package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ludex/constel/pkg/logger"
	"github.com/ludex/constel/pkg/render/ebitengine"
	"github.com/ludex/constel/pkg/scene"
	"github.com/ludex/constel/pkg/session"
)

// ViewCmd opens the interactive constellation viewer.
var ViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive constellation viewer",
	Long: `Open a window showing the constellation. Drag to orbit, scroll to
zoom, click a node to focus the camera on it. The view rotates on its
own after a few seconds without input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		nodes, err := loadDataset(cmd, cfg)
		if err != nil {
			return err
		}

		sess := session.New(session.Options{
			Nodes:  nodes,
			Config: cfg,
			Logger: logger.Logger,
			OnNodeClick: func(n scene.Node) {
				color.Cyan("%s %s", n.Type, n.ID)
			},
		})

		viewer, err := ebitengine.New(sess, cfg.Viewer, logger.Logger)
		if err != nil {
			return err
		}
		return viewer.Run()
	},
}

func init() {
	addDatasetFlags(ViewCmd)
}
