package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/cursor-export/internal"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <input> <output-dir>",
	Short: "Export chat history to markdown, HTML, and JSON",
	Long: `Export chat history to markdown, HTML, and JSON documents.

The input is either a JSON file containing an array of workspace records, or
a workspaceStorage directory tree. Output is written below <output-dir> as
markdown/{workspace}/, html/{workspace}/, and json/{workspace}.json.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reporter := newReporter()

		workspaces, err := loadInput(args[0], reporter)
		if err != nil {
			return err
		}
		if len(workspaces) == 0 {
			return fmt.Errorf("no chat history data found to export")
		}

		outputDir := args[1]
		exporter := internal.NewExporter(outputDir, reporter)
		exporter.HTMLTitle = cfg.HTMLTitle

		results, err := exporter.ExportAll(workspaces)
		if err != nil {
			return err
		}

		processed := 0
		for _, result := range results {
			if result != nil {
				processed++
			}
		}

		reporter.Successf("Export complete! Processed %d workspace(s).", processed)
		reporter.Infof("Files saved to: %s", outputDir)
		return nil
	},
}

// loadInput dispatches on the input path: a file is a pre-assembled chat
// history JSON array, a directory is a workspace-storage tree.
func loadInput(inputPath string, reporter internal.Reporter) ([]internal.WorkspaceRecord, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input path %q not found", inputPath)
		}
		return nil, fmt.Errorf("failed to inspect input path: %w", err)
	}

	loader := internal.NewLoader(reporter)
	loader.SkipDirs = cfg.SkipDirs

	if info.IsDir() {
		reporter.Infof("Loading chat history from workspace storage directory...")
		return loader.LoadWorkspaceStorage(inputPath)
	}

	reporter.Infof("Loading chat history from JSON file...")
	return loader.LoadHistoryFile(inputPath)
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
