package internal

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// FlexTime holds a timestamp as it appeared in the source JSON: either a
// numeric epoch value or an ISO-8601 string. The raw value is preserved so
// summaries echo it back unchanged and unparseable values degrade to their
// literal form instead of failing a render.
type FlexTime struct {
	value interface{}
	set   bool
}

// NewFlexTime wraps a raw timestamp value (float64, int, or string).
func NewFlexTime(value interface{}) FlexTime {
	return FlexTime{value: value, set: value != nil}
}

// UnmarshalJSON accepts any JSON scalar and keeps it as-is.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	t.value = v
	t.set = v != nil
	return nil
}

// MarshalJSON writes the original value back, or an empty string when the
// field was absent.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if !t.set {
		return []byte(`""`), nil
	}
	return json.Marshal(t.value)
}

// IsZero reports whether the timestamp was absent from the source.
func (t FlexTime) IsZero() bool {
	return !t.set
}

// Value returns the raw timestamp value, or nil when absent.
func (t FlexTime) Value() interface{} {
	if !t.set {
		return nil
	}
	return t.value
}

// WorkspaceRecord is one workspace's worth of exportable history.
type WorkspaceRecord struct {
	WorkspaceInfo   WorkspaceInfo    `json:"workspaceInfo"`
	ChatSessions    []ChatSession    `json:"chatSessions,omitempty"`
	EditingSessions []EditingSession `json:"editingSessions,omitempty"`
}

// WorkspaceInfo is the workspace.json metadata record.
type WorkspaceInfo struct {
	ID           string   `json:"id,omitempty"`
	Folder       string   `json:"folder,omitempty"`
	LastModified FlexTime `json:"lastModified,omitempty"`
}

// Name derives the display name for a workspace: the last segment of the
// folder path, the workspace id, or "Unknown", in that order.
func (w WorkspaceInfo) Name() string {
	if w.Folder != "" {
		return path.Base(CleanResourcePath(w.Folder))
	}
	if w.ID != "" {
		return w.ID
	}
	return "Unknown"
}

// ChatSession is a linear conversation of request/response turns.
type ChatSession struct {
	SessionID    string    `json:"sessionId,omitempty"`
	CustomTitle  string    `json:"customTitle,omitempty"`
	CreationDate FlexTime  `json:"creationDate,omitempty"`
	Requests     []Request `json:"requests,omitempty"`
}

// Title returns the custom title, or a generated one naming the session id.
func (s *ChatSession) Title() string {
	if s.CustomTitle != "" {
		return s.CustomTitle
	}
	id := s.SessionID
	if id == "" {
		id = "Unknown"
	}
	return fmt.Sprintf("Chat Session %s", id)
}

// HasContent reports whether any request carries user text or a non-empty
// response fragment. Sessions without content are skipped everywhere.
func (s *ChatSession) HasContent() bool {
	for i := range s.Requests {
		if s.Requests[i].UserText() != "" || s.Requests[i].ResponseText() != "" {
			return true
		}
	}
	return false
}

// Request is one user turn and its streamed response fragments.
type Request struct {
	Message   *RequestMessage    `json:"message,omitempty"`
	Response  []ResponseFragment `json:"response,omitempty"`
	Timestamp FlexTime           `json:"timestamp,omitempty"`
}

// RequestMessage is the user side of a request.
type RequestMessage struct {
	Text string `json:"text,omitempty"`
}

// ResponseFragment is one streamed piece of the assistant turn.
type ResponseFragment struct {
	Value string `json:"value,omitempty"`
}

// UserText returns the user message text, or "" when absent.
func (r *Request) UserText() string {
	if r.Message == nil {
		return ""
	}
	return r.Message.Text
}

// ResponseText joins all non-empty response fragments with newlines.
func (r *Request) ResponseText() string {
	var parts []string
	for _, frag := range r.Response {
		if frag.Value != "" {
			parts = append(parts, frag.Value)
		}
	}
	return strings.Join(parts, "\n")
}

// EditingSession is a chat editing session's linear history of file edits.
type EditingSession struct {
	SessionID     string      `json:"sessionId,omitempty"`
	Version       int         `json:"version,omitempty"`
	LinearHistory []EditEntry `json:"linearHistory,omitempty"`
}

// EditEntry is one step of an editing session.
type EditEntry struct {
	Stops    []EditStop      `json:"stops,omitempty"`
	PostEdit []PostEditEntry `json:"postEdit,omitempty"`
}

// EditStop groups the files touched at one stop point.
type EditStop struct {
	Entries []StopEntry `json:"entries,omitempty"`
}

// StopEntry names a single touched file.
type StopEntry struct {
	Resource string `json:"resource,omitempty"`
}

// PostEditEntry records the applied changes for one file.
type PostEditEntry struct {
	Resource              string       `json:"resource,omitempty"`
	OriginalToCurrentEdit []EditChange `json:"originalToCurrentEdit,omitempty"`
}

// EditChange is one inserted text fragment.
type EditChange struct {
	Text string `json:"txt,omitempty"`
}

// CleanResourcePath strips the file:// scheme prefix from a resource URI.
func CleanResourcePath(resource string) string {
	return strings.TrimPrefix(resource, "file://")
}
