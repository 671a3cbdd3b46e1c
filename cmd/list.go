package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/cursor-export/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <input>",
	Short: "List workspaces found in a chat history source",
	Long: `List the workspaces a chat history source would export, without writing
any output. Shows each workspace's name, session counts, and last-modified
time. Accepts the same inputs as export.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reporter := newReporter()

		workspaces, err := loadInput(args[0], reporter)
		if err != nil {
			return err
		}
		if len(workspaces) == 0 {
			return fmt.Errorf("no chat history data found")
		}

		printWorkspaceTable(workspaces)
		return nil
	},
}

func printWorkspaceTable(workspaces []internal.WorkspaceRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("WORKSPACE"),
		headerStyle.Render("CHATS"),
		headerStyle.Render("EDITS"),
		headerStyle.Render("LAST MODIFIED"))

	total := 0
	for i := range workspaces {
		ws := &workspaces[i]
		lastModified := internal.FormatTimestamp(ws.WorkspaceInfo.LastModified)
		if lastModified == "" {
			lastModified = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			ws.WorkspaceInfo.Name(),
			len(ws.ChatSessions),
			len(ws.EditingSessions),
			lastModified)
		total += len(ws.ChatSessions) + len(ws.EditingSessions)
	}
	_ = w.Flush()

	fmt.Printf("\n%s workspace(s), %s session(s)\n",
		countStyle.Render(fmt.Sprintf("%d", len(workspaces))),
		countStyle.Render(fmt.Sprintf("%d", total)))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
