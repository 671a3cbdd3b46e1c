package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/cursor-export/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *internal.Config

	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-export",
	Short: "Convert Cursor chat history to markdown, HTML, and JSON",
	Long: `A CLI tool to convert Cursor's persisted chat history into readable documents.

It reads either a pre-assembled chat history JSON file or a workspaceStorage
directory tree, and writes three parallel renditions per workspace:

  • Markdown documents, one per chat or editing session
  • Self-contained HTML documents with syntax-highlighted code blocks
  • A consolidated JSON summary per workspace

Quick Start:
  cursor-export export ~/.config/Cursor/User/workspaceStorage ./out
  cursor-export export chat_history.json ./out
  cursor-export list chat_history.json       # preview without writing

For detailed usage, see: https://github.com/iksnae/cursor-export`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := internal.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = internal.LoadDefaultConfig()
		}
		if cfg.Verbose {
			verbose = true
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: "+internal.DefaultConfigName+")")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// newReporter builds the console reporter used by all commands.
func newReporter() internal.Reporter {
	return internal.NewConsoleReporter(verbose)
}
