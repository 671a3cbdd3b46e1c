package internal

import (
	"strings"
	"testing"
)

func TestRenderChatSession(t *testing.T) {
	session := &ChatSession{
		SessionID:    "s1",
		CustomTitle:  "Greetings",
		CreationDate: NewFlexTime("2024-01-15T10:10:00Z"),
		Requests: []Request{
			{
				Message:  &RequestMessage{Text: "Hi"},
				Response: []ResponseFragment{{Value: "Hello"}, {Value: "there"}},
			},
		},
	}
	info := WorkspaceInfo{Folder: "file:///home/user/myproject"}

	got := RenderChatSession(session, info)

	want := []string{
		"# Workspace: /home/user/myproject",
		"Created: 2024-01-15 10:10:00",
		"## Greetings",
		"**User**:\n\nHi",
		"**Assistant**:\n\nHello\nthere",
		"---",
	}
	for _, substr := range want {
		if !strings.Contains(got, substr) {
			t.Errorf("RenderChatSession() missing %q in:\n%s", substr, got)
		}
	}

	if strings.Index(got, "Hi") > strings.Index(got, "Hello") {
		t.Errorf("RenderChatSession() user text must precede assistant text")
	}
}

func TestRenderChatSessionHeaderFallbacks(t *testing.T) {
	session := &ChatSession{SessionID: "s1"}

	tests := []struct {
		name string
		info WorkspaceInfo
		want string
	}{
		{"id when no folder", WorkspaceInfo{ID: "abc123"}, "# Workspace: abc123"},
		{"unknown when empty", WorkspaceInfo{}, "# Workspace: Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderChatSession(session, tt.info)
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderChatSession() missing %q in:\n%s", tt.want, got)
			}
		})
	}
}

func TestRenderChatSessionEmptyRequests(t *testing.T) {
	// Requests with no usable text contribute no blocks and no separator.
	session := &ChatSession{
		SessionID: "s1",
		Requests: []Request{
			{},
			{Response: []ResponseFragment{{Value: ""}}},
		},
	}

	got := RenderChatSession(session, WorkspaceInfo{ID: "ws"})

	if strings.Contains(got, "**User**") || strings.Contains(got, "**Assistant**") {
		t.Errorf("RenderChatSession() emitted turn blocks for empty requests:\n%s", got)
	}
	if strings.Contains(got, "---") {
		t.Errorf("RenderChatSession() emitted a separator for empty requests:\n%s", got)
	}
	if !strings.Contains(got, "## Chat Session s1") {
		t.Errorf("RenderChatSession() must still emit the title line:\n%s", got)
	}
}

func TestRenderChatSessionNoCreationDate(t *testing.T) {
	session := &ChatSession{SessionID: "s1"}
	got := RenderChatSession(session, WorkspaceInfo{ID: "ws"})

	if strings.Contains(got, "Created:") {
		t.Errorf("RenderChatSession() emitted a Created line without a creation date:\n%s", got)
	}
}

func TestRenderEditingSession(t *testing.T) {
	session := &EditingSession{
		SessionID: "edit-1",
		LinearHistory: []EditEntry{
			{
				Stops: []EditStop{
					{Entries: []StopEntry{
						{Resource: "file:///src/main.go"},
						{Resource: "file:///src/util.go"},
					}},
				},
				PostEdit: []PostEditEntry{
					{
						Resource: "file:///src/main.go",
						OriginalToCurrentEdit: []EditChange{
							{Text: "func main() {}"},
						},
					},
				},
			},
			{
				Stops: []EditStop{
					{Entries: []StopEntry{{Resource: "file:///src/other.go"}}},
				},
			},
		},
	}

	got := RenderEditingSession(session, WorkspaceInfo{Folder: "file:///home/user/proj"})

	want := []string{
		"## Chat Editing Session: edit-1",
		"### Edit 1",
		"### Edit 2",
		"**Modified File**: `/src/main.go`",
		"**Modified File**: `/src/util.go`",
		"**Changes Made**:",
		"- Modified: `/src/main.go`",
		"  - Edits:",
		"    - Added: `func main() {}...`",
	}
	for _, substr := range want {
		if !strings.Contains(got, substr) {
			t.Errorf("RenderEditingSession() missing %q in:\n%s", substr, got)
		}
	}
}

func TestRenderEditingSessionChangeLimit(t *testing.T) {
	var changes []EditChange
	for i := 0; i < 8; i++ {
		changes = append(changes, EditChange{Text: "change"})
	}
	session := &EditingSession{
		SessionID: "edit-1",
		LinearHistory: []EditEntry{
			{PostEdit: []PostEditEntry{{Resource: "file:///a.go", OriginalToCurrentEdit: changes}}},
		},
	}

	got := RenderEditingSession(session, WorkspaceInfo{ID: "ws"})

	if n := strings.Count(got, "- Added:"); n != maxRenderedChanges {
		t.Errorf("RenderEditingSession() rendered %d change lines, want %d", n, maxRenderedChanges)
	}
}

func TestRenderEditingSessionChangeTruncation(t *testing.T) {
	long := strings.Repeat("x", 250)
	session := &EditingSession{
		SessionID: "edit-1",
		LinearHistory: []EditEntry{
			{PostEdit: []PostEditEntry{{
				Resource:              "file:///a.go",
				OriginalToCurrentEdit: []EditChange{{Text: long}},
			}}},
		},
	}

	got := RenderEditingSession(session, WorkspaceInfo{ID: "ws"})

	wantFragment := strings.Repeat("x", maxChangePreviewRunes) + "..."
	if !strings.Contains(got, wantFragment) {
		t.Errorf("RenderEditingSession() did not truncate change text to %d runes", maxChangePreviewRunes)
	}
	if strings.Contains(got, strings.Repeat("x", maxChangePreviewRunes+1)) {
		t.Errorf("RenderEditingSession() rendered more than %d runes of change text", maxChangePreviewRunes)
	}
}
