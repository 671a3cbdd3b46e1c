package internal

import (
	"fmt"
	"strings"
)

const maxRenderedChanges = 5
const maxChangePreviewRunes = 100

// RenderChatSession converts a chat session to a markdown document:
// workspace header, optional creation date, title, then one User/Assistant
// block pair per request. Requests with no content contribute nothing, not
// even a separator.
func RenderChatSession(session *ChatSession, info WorkspaceInfo) string {
	var b strings.Builder
	writeWorkspaceHeader(&b, info)

	if !session.CreationDate.IsZero() {
		fmt.Fprintf(&b, "Created: %s\n\n", FormatTimestamp(session.CreationDate))
	}

	fmt.Fprintf(&b, "## %s\n\n", session.Title())

	for i := range session.Requests {
		req := &session.Requests[i]
		wrote := false

		if text := req.UserText(); text != "" {
			fmt.Fprintf(&b, "**User**:\n\n%s\n\n", text)
			wrote = true
		}

		if response := req.ResponseText(); response != "" {
			fmt.Fprintf(&b, "**Assistant**:\n\n%s\n\n", response)
			wrote = true
		}

		if wrote {
			b.WriteString("---\n\n")
		}
	}

	return b.String()
}

// RenderEditingSession converts an editing session to a markdown document:
// workspace header, a title naming the session id, then one "Edit N" section
// per linear-history entry listing the touched files and applied changes.
func RenderEditingSession(session *EditingSession, info WorkspaceInfo) string {
	var b strings.Builder
	writeWorkspaceHeader(&b, info)

	id := session.SessionID
	if id == "" {
		id = "Unknown"
	}
	fmt.Fprintf(&b, "## Chat Editing Session: %s\n\n", id)

	for i, entry := range session.LinearHistory {
		fmt.Fprintf(&b, "### Edit %d\n\n", i+1)

		for _, stop := range entry.Stops {
			for _, file := range stop.Entries {
				if file.Resource == "" {
					continue
				}
				fmt.Fprintf(&b, "**Modified File**: `%s`\n\n", CleanResourcePath(file.Resource))
			}
		}

		if len(entry.PostEdit) > 0 {
			b.WriteString("**Changes Made**:\n\n")
			for _, edit := range entry.PostEdit {
				if edit.Resource == "" {
					continue
				}
				fmt.Fprintf(&b, "- Modified: `%s`\n", CleanResourcePath(edit.Resource))

				if len(edit.OriginalToCurrentEdit) > 0 {
					b.WriteString("  - Edits:\n")
					changes := edit.OriginalToCurrentEdit
					if len(changes) > maxRenderedChanges {
						changes = changes[:maxRenderedChanges]
					}
					for _, change := range changes {
						if change.Text == "" {
							continue
						}
						fmt.Fprintf(&b, "    - Added: `%s...`\n", truncateRunes(change.Text, maxChangePreviewRunes))
					}
				}
			}
			b.WriteString("\n")
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

func writeWorkspaceHeader(b *strings.Builder, info WorkspaceInfo) {
	switch {
	case info.Folder != "":
		fmt.Fprintf(b, "# Workspace: %s\n\n", CleanResourcePath(info.Folder))
	case info.ID != "":
		fmt.Fprintf(b, "# Workspace: %s\n\n", info.ID)
	default:
		b.WriteString("# Workspace: Unknown\n\n")
	}
}
