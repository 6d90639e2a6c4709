package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"lvestimate/collections"
	"lvestimate/config"
	"lvestimate/services"
	"lvestimate/storage"
)

// newExportCommand returns the "export" command, which renders the persisted
// estimate without starting the server.
func newExportCommand(app *pocketbase.PocketBase, cfg config.Config) *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved estimate as an Excel workbook or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := services.ExportFormat(format)
			if !slices.Contains(services.ExportFormats, f) {
				return fmt.Errorf("%w: %q (want excel, proposal or itemized)", services.ErrUnknownFormat, format)
			}

			if !app.IsBootstrapped() {
				if err := app.Bootstrap(); err != nil {
					return fmt.Errorf("bootstrap app: %w", err)
				}
			}
			collections.Setup(app)

			ws := services.NewWorkspace(storage.NewRecordKV(app), app.Logger(), cfg.Settings())
			path, err := exportEstimate(ws, f, outDir)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(services.ExportFormatProposal), "export format: excel, proposal or itemized")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to write the file to")
	return cmd
}

// exportEstimate renders the workspace's estimate and writes it to outDir
// under its download filename, returning the written path.
func exportEstimate(ws *services.Workspace, format services.ExportFormat, outDir string) (string, error) {
	file, err := services.RenderExport(ws.ExportData(), format)
	if err != nil {
		return "", fmt.Errorf("render %s export: %w", format, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(outDir, file.Filename)
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
