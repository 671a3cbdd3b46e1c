package internal

import "fmt"

// Conversation roles in the JSON summary.
const (
	RoleUser      = "User"
	RoleAssistant = "Assistant"
)

// WorkspaceSummary accumulates the normalized records for one workspace and
// is serialized once, after all of its sessions were exported.
type WorkspaceSummary struct {
	Workspace       string          `json:"workspace"`
	WorkspaceInfo   WorkspaceInfo   `json:"workspaceInfo"`
	Chats           []ChatRecord    `json:"chats"`
	EditingSessions []EditingRecord `json:"editingSessions"`
}

// ChatRecord is the normalized form of one chat session.
type ChatRecord struct {
	Title        string             `json:"title"`
	SessionID    string             `json:"sessionId"`
	Timestamp    FlexTime           `json:"timestamp"`
	Conversation []ConversationTurn `json:"conversation"`
}

// ConversationTurn is one user or assistant turn.
type ConversationTurn struct {
	Role      string   `json:"role"`
	Text      string   `json:"text"`
	Timestamp FlexTime `json:"timestamp"`
}

// EditingRecord is the normalized form of one editing session.
type EditingRecord struct {
	Title     string `json:"title"`
	SessionID string `json:"sessionId"`
	Version   int    `json:"version"`
	EditCount int    `json:"editCount"`
}

// NewWorkspaceSummary creates an empty summary. The record slices are
// initialized so empty ones serialize as [] rather than null.
func NewWorkspaceSummary(name string, info WorkspaceInfo) *WorkspaceSummary {
	return &WorkspaceSummary{
		Workspace:       name,
		WorkspaceInfo:   info,
		Chats:           []ChatRecord{},
		EditingSessions: []EditingRecord{},
	}
}

// AddChat appends a normalized chat record in source order.
func (s *WorkspaceSummary) AddChat(session *ChatSession) {
	s.Chats = append(s.Chats, ChatRecord{
		Title:        session.Title(),
		SessionID:    session.SessionID,
		Timestamp:    session.CreationDate,
		Conversation: buildConversation(session),
	})
}

// AddEditingSession appends a normalized editing-session record.
func (s *WorkspaceSummary) AddEditingSession(session *EditingSession) {
	s.EditingSessions = append(s.EditingSessions, EditingRecord{
		Title:     fmt.Sprintf("Chat Editing Session %s", session.SessionID),
		SessionID: session.SessionID,
		Version:   session.Version,
		EditCount: len(session.LinearHistory),
	})
}

// HasContent reports whether anything was exported into the summary.
func (s *WorkspaceSummary) HasContent() bool {
	return len(s.Chats) > 0 || len(s.EditingSessions) > 0
}

// buildConversation flattens a session's requests into ordered turns,
// omitting turns with no text.
func buildConversation(session *ChatSession) []ConversationTurn {
	turns := []ConversationTurn{}
	for i := range session.Requests {
		req := &session.Requests[i]

		if text := req.UserText(); text != "" {
			turns = append(turns, ConversationTurn{
				Role:      RoleUser,
				Text:      text,
				Timestamp: req.Timestamp,
			})
		}

		if response := req.ResponseText(); response != "" {
			turns = append(turns, ConversationTurn{
				Role:      RoleAssistant,
				Text:      response,
				Timestamp: req.Timestamp,
			})
		}
	}
	return turns
}
