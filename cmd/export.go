package cmd

import (
	"fmt"

	"netviz/core/logger"
	"netviz/feature/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the export command
	exportOutput string
	exportTitle  string
)

// exportCmd renders a snapshot file as a standalone chart page.
var exportCmd = &cobra.Command{
	Use:   "export <snapshot.json>",
	Short: "Render a snapshot as an HTML chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(&logger.Config{Level: "info", Format: "console"})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		snap, err := readSnapshot(args[0])
		if err != nil {
			return err
		}
		opts := export.DefaultOptions()
		if exportTitle != "" {
			opts.Title = exportTitle
		}
		path, err := export.RenderToFile(exportOutput, snap, opts)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		l.Info("Chart written",
			zap.String("path", path),
			zap.Int("nodes", snap.Nodes.Len()),
			zap.Int("edges", snap.Edges.Len()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "network.html", "Output file")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "Chart title")
	RootCmd.AddCommand(exportCmd)
}
