package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Output format subdirectories under the export root.
const (
	markdownDir = "markdown"
	htmlDir     = "html"
	jsonDir     = "json"
)

// Exporter writes one workspace's sessions as markdown, HTML, and a JSON
// summary under a fixed output layout. Re-running over identical input
// overwrites prior output byte-for-byte.
type Exporter struct {
	OutputDir string
	HTMLTitle string
	Reporter  Reporter
}

// NewExporter creates an Exporter writing below outputDir.
func NewExporter(outputDir string, reporter Reporter) *Exporter {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Exporter{OutputDir: outputDir, Reporter: reporter}
}

// ExportAll exports every workspace and returns one summary per input
// workspace, nil for workspaces that produced no output. A workspace whose
// export fails is reported and yields nil; the run continues.
func (e *Exporter) ExportAll(workspaces []WorkspaceRecord) ([]*WorkspaceSummary, error) {
	for _, sub := range []string{markdownDir, htmlDir, jsonDir} {
		if err := os.MkdirAll(filepath.Join(e.OutputDir, sub), 0755); err != nil {
			return nil, &StorageError{Path: filepath.Join(e.OutputDir, sub), Op: "mkdir", Err: err}
		}
	}

	results := make([]*WorkspaceSummary, 0, len(workspaces))
	for i := range workspaces {
		summary, err := e.ExportWorkspace(&workspaces[i])
		if err != nil {
			e.Reporter.Errorf("Failed to export workspace %s: %v", workspaces[i].WorkspaceInfo.Name(), err)
			results = append(results, nil)
			continue
		}
		results = append(results, summary)
	}
	return results, nil
}

// ExportWorkspace exports one workspace. It returns nil when the workspace
// has no sessions at all, or when none of its sessions had exportable
// content; in both cases no files are written for it.
func (e *Exporter) ExportWorkspace(workspace *WorkspaceRecord) (*WorkspaceSummary, error) {
	name := workspace.WorkspaceInfo.Name()

	if len(workspace.ChatSessions) == 0 && len(workspace.EditingSessions) == 0 {
		e.Reporter.Infof("  - Skipping empty workspace: %s", name)
		return nil, nil
	}

	e.Reporter.Infof("Processing workspace: %s", name)

	for _, sub := range []string{markdownDir, htmlDir} {
		dir := filepath.Join(e.OutputDir, sub, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StorageError{Path: dir, Op: "mkdir", Err: err}
		}
	}

	summary := NewWorkspaceSummary(name, workspace.WorkspaceInfo)

	if len(workspace.ChatSessions) > 0 {
		e.Reporter.Infof("  - Exporting %d chat session(s)", len(workspace.ChatSessions))
		for i := range workspace.ChatSessions {
			e.exportChatSession(&workspace.ChatSessions[i], workspace.WorkspaceInfo, name, summary)
		}
	}

	if len(workspace.EditingSessions) > 0 {
		e.Reporter.Infof("  - Exporting %d editing session(s)", len(workspace.EditingSessions))
		for i := range workspace.EditingSessions {
			e.exportEditingSession(&workspace.EditingSessions[i], workspace.WorkspaceInfo, name, summary)
		}
	}

	if !summary.HasContent() {
		return nil, nil
	}

	if err := e.writeSummary(name, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (e *Exporter) exportChatSession(session *ChatSession, info WorkspaceInfo, workspaceName string, summary *WorkspaceSummary) {
	if !session.HasContent() {
		e.Reporter.Debugf("skipping chat session %s: no content", session.SessionID)
		return
	}

	filename := SafeFileName(session.CreationDate.Value(), session.Title())
	markdown := RenderChatSession(session, info)

	if !e.writeDocuments(workspaceName, filename, markdown, session.SessionID) {
		return
	}
	summary.AddChat(session)
}

func (e *Exporter) exportEditingSession(session *EditingSession, info WorkspaceInfo, workspaceName string, summary *WorkspaceSummary) {
	if len(session.LinearHistory) == 0 {
		e.Reporter.Debugf("skipping editing session %s: empty history", session.SessionID)
		return
	}

	filename := fmt.Sprintf("editing-session-%s", session.SessionID)
	markdown := RenderEditingSession(session, info)

	if !e.writeDocuments(workspaceName, filename, markdown, session.SessionID) {
		return
	}
	summary.AddEditingSession(session)
}

// writeDocuments writes the markdown and HTML renditions of one session.
// Failures are reported and the session is dropped from the summary, but the
// run continues.
func (e *Exporter) writeDocuments(workspaceName, filename, markdown, sessionID string) bool {
	mdPath := filepath.Join(e.OutputDir, markdownDir, workspaceName, filename+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0644); err != nil {
		e.Reporter.Warnf("Failed to write markdown for session %s: %v", sessionID, &ExportError{Format: "markdown", Path: mdPath, Err: err})
		return false
	}

	htmlDoc, err := RenderHTMLDocument(markdown, e.HTMLTitle)
	if err != nil {
		e.Reporter.Warnf("Failed to render HTML for session %s: %v", sessionID, err)
		return false
	}
	htmlPath := filepath.Join(e.OutputDir, htmlDir, workspaceName, filename+".html")
	if err := os.WriteFile(htmlPath, []byte(htmlDoc), 0644); err != nil {
		e.Reporter.Warnf("Failed to write HTML for session %s: %v", sessionID, &ExportError{Format: "html", Path: htmlPath, Err: err})
		return false
	}
	return true
}

func (e *Exporter) writeSummary(workspaceName string, summary *WorkspaceSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return &ExportError{Format: "json", Path: workspaceName, Err: err}
	}

	dir := filepath.Join(e.OutputDir, jsonDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &StorageError{Path: dir, Op: "mkdir", Err: err}
	}

	path := filepath.Join(dir, workspaceName+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &ExportError{Format: "json", Path: path, Err: err}
	}
	return nil
}
