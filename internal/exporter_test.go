package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/cursor-export/testutil"
)

func TestExportWorkspaceRoundTrip(t *testing.T) {
	outDir := testutil.CreateTempDir(t)

	session := ChatSession{
		SessionID:    "s1",
		CustomTitle:  "Greeting",
		CreationDate: NewFlexTime("2024-01-15T10:10:00Z"),
		Requests: []Request{
			{
				Message:  &RequestMessage{Text: "Hi"},
				Response: []ResponseFragment{{Value: "Hello"}},
			},
		},
	}
	workspace := WorkspaceRecord{
		WorkspaceInfo: WorkspaceInfo{ID: "ws1", Folder: "file:///home/user/myproject"},
		ChatSessions:  []ChatSession{session},
	}

	exporter := NewExporter(outDir, NopReporter{})
	summary, err := exporter.ExportWorkspace(&workspace)
	if err != nil {
		t.Fatalf("ExportWorkspace() error = %v", err)
	}
	if summary == nil {
		t.Fatal("ExportWorkspace() returned nil summary for exportable workspace")
	}

	filename := SafeFileName(session.CreationDate.Value(), session.Title())

	mdData := testutil.ReadFile(t, filepath.Join(outDir, "markdown", "myproject", filename+".md"))
	md := string(mdData)
	if !strings.Contains(md, "Hi") || !strings.Contains(md, "Hello") {
		t.Errorf("markdown missing conversation text:\n%s", md)
	}
	if strings.Index(md, "Hi") > strings.Index(md, "Hello") {
		t.Errorf("markdown must contain user text before assistant text")
	}

	htmlData := testutil.ReadFile(t, filepath.Join(outDir, "html", "myproject", filename+".html"))
	if !strings.Contains(string(htmlData), "Hi") || !strings.Contains(string(htmlData), "Hello") {
		t.Errorf("html missing conversation text")
	}

	jsonData := testutil.ReadFile(t, filepath.Join(outDir, "json", "myproject.json"))
	var decoded WorkspaceSummary
	if err := json.Unmarshal(jsonData, &decoded); err != nil {
		t.Fatalf("summary JSON did not parse: %v", err)
	}
	if decoded.Workspace != "myproject" {
		t.Errorf("summary workspace = %q, want %q", decoded.Workspace, "myproject")
	}
	if len(decoded.Chats) != 1 {
		t.Fatalf("summary has %d chats, want 1", len(decoded.Chats))
	}
	conv := decoded.Chats[0].Conversation
	if len(conv) != 2 {
		t.Fatalf("conversation has %d turns, want 2", len(conv))
	}
	if conv[0].Role != RoleUser || conv[0].Text != "Hi" {
		t.Errorf("turn[0] = {%s, %q}, want {User, Hi}", conv[0].Role, conv[0].Text)
	}
	if conv[1].Role != RoleAssistant || conv[1].Text != "Hello" {
		t.Errorf("turn[1] = {%s, %q}, want {Assistant, Hello}", conv[1].Role, conv[1].Text)
	}
}

func TestExportWorkspaceEmpty(t *testing.T) {
	outDir := testutil.CreateTempDir(t)
	workspace := WorkspaceRecord{WorkspaceInfo: WorkspaceInfo{ID: "ws1"}}

	exporter := NewExporter(outDir, NopReporter{})
	summary, err := exporter.ExportWorkspace(&workspace)
	if err != nil {
		t.Fatalf("ExportWorkspace() error = %v", err)
	}
	if summary != nil {
		t.Errorf("ExportWorkspace() = %+v, want nil for empty workspace", summary)
	}

	if _, err := os.Stat(filepath.Join(outDir, "json", "ws1.json")); !os.IsNotExist(err) {
		t.Errorf("empty workspace must not produce a JSON summary file")
	}
	if _, err := os.Stat(filepath.Join(outDir, "markdown", "ws1")); !os.IsNotExist(err) {
		t.Errorf("empty workspace must not create output directories")
	}
}

func TestExportWorkspaceSkipsContentlessSessions(t *testing.T) {
	outDir := testutil.CreateTempDir(t)
	workspace := WorkspaceRecord{
		WorkspaceInfo: WorkspaceInfo{ID: "ws1"},
		ChatSessions: []ChatSession{
			{SessionID: "empty", Requests: []Request{{}}},
		},
		EditingSessions: []EditingSession{
			{SessionID: "no-history"},
		},
	}

	exporter := NewExporter(outDir, NopReporter{})
	summary, err := exporter.ExportWorkspace(&workspace)
	if err != nil {
		t.Fatalf("ExportWorkspace() error = %v", err)
	}
	if summary != nil {
		t.Errorf("ExportWorkspace() = %+v, want nil when nothing qualified", summary)
	}

	entries, err := os.ReadDir(filepath.Join(outDir, "markdown", "ws1"))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("contentless sessions wrote %d markdown files, want 0", len(entries))
	}
	if _, err := os.Stat(filepath.Join(outDir, "json", "ws1.json")); !os.IsNotExist(err) {
		t.Errorf("contentless workspace must not produce a JSON summary")
	}
}

func TestExportWorkspaceEditingSession(t *testing.T) {
	outDir := testutil.CreateTempDir(t)
	workspace := WorkspaceRecord{
		WorkspaceInfo:   WorkspaceInfo{ID: "ws1"},
		EditingSessions: []EditingSession{*CreateTestEditingSession("edit-1", 2)},
	}

	exporter := NewExporter(outDir, NopReporter{})
	summary, err := exporter.ExportWorkspace(&workspace)
	if err != nil {
		t.Fatalf("ExportWorkspace() error = %v", err)
	}
	if summary == nil {
		t.Fatal("ExportWorkspace() returned nil for workspace with editing history")
	}

	mdPath := filepath.Join(outDir, "markdown", "ws1", "editing-session-edit-1.md")
	if _, err := os.Stat(mdPath); err != nil {
		t.Errorf("missing editing session markdown at %s: %v", mdPath, err)
	}
	htmlPath := filepath.Join(outDir, "html", "ws1", "editing-session-edit-1.html")
	if _, err := os.Stat(htmlPath); err != nil {
		t.Errorf("missing editing session html at %s: %v", htmlPath, err)
	}

	if len(summary.EditingSessions) != 1 || summary.EditingSessions[0].EditCount != 2 {
		t.Errorf("summary editing records = %+v, want one with EditCount 2", summary.EditingSessions)
	}
}

func TestExportAll(t *testing.T) {
	outDir := testutil.CreateTempDir(t)
	workspaces := []WorkspaceRecord{
		*CreateTestWorkspace("alpha"),
		{WorkspaceInfo: WorkspaceInfo{ID: "empty"}},
	}

	exporter := NewExporter(outDir, NopReporter{})
	results, err := exporter.ExportAll(workspaces)
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("ExportAll() returned %d results, want one per workspace", len(results))
	}
	if results[0] == nil {
		t.Error("results[0] = nil, want summary for populated workspace")
	}
	if results[1] != nil {
		t.Error("results[1] != nil, want nil for empty workspace")
	}

	for _, sub := range []string{"markdown", "html", "json"} {
		if _, err := os.Stat(filepath.Join(outDir, sub)); err != nil {
			t.Errorf("base output directory %s not created: %v", sub, err)
		}
	}
}

func TestExportWorkspaceCreatesJSONDirOnDemand(t *testing.T) {
	// ExportWorkspace must stand on its own: the json/ directory does not
	// exist until the first summary is written.
	outDir := testutil.CreateTempDir(t)
	workspace := CreateTestWorkspace("alpha")

	exporter := NewExporter(outDir, NopReporter{})
	summary, err := exporter.ExportWorkspace(workspace)
	if err != nil {
		t.Fatalf("ExportWorkspace() error = %v", err)
	}
	if summary == nil {
		t.Fatal("ExportWorkspace() returned nil summary")
	}

	if _, err := os.Stat(filepath.Join(outDir, "json", "alpha.json")); err != nil {
		t.Errorf("summary file not written without a prior ExportAll: %v", err)
	}
}

func TestExportWorkspaceRerunsAreIdentical(t *testing.T) {
	outDir := testutil.CreateTempDir(t)
	workspace := CreateTestWorkspace("alpha")
	exporter := NewExporter(outDir, NopReporter{})

	if _, err := exporter.ExportWorkspace(workspace); err != nil {
		t.Fatalf("first export error = %v", err)
	}
	jsonPath := filepath.Join(outDir, "json", "alpha.json")
	first := testutil.ReadFile(t, jsonPath)

	if _, err := exporter.ExportWorkspace(workspace); err != nil {
		t.Fatalf("second export error = %v", err)
	}
	second := testutil.ReadFile(t, jsonPath)

	if string(first) != string(second) {
		t.Error("re-export produced different summary bytes")
	}
}
