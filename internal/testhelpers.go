package internal

import "fmt"

// CreateTestWorkspace creates a workspace record with sample data
func CreateTestWorkspace(id string) *WorkspaceRecord {
	return &WorkspaceRecord{
		WorkspaceInfo: WorkspaceInfo{
			ID:           id,
			Folder:       "file:///home/user/projects/" + id,
			LastModified: NewFlexTime(float64(1705313400000)),
		},
		ChatSessions: []ChatSession{
			*CreateTestChatSession(id + "-chat"),
		},
	}
}

// CreateTestChatSession creates a chat session with one request/response turn
func CreateTestChatSession(id string) *ChatSession {
	return &ChatSession{
		SessionID:    id,
		CustomTitle:  "Test Conversation",
		CreationDate: NewFlexTime(float64(1705313400000)),
		Requests: []Request{
			{
				Message: &RequestMessage{Text: "Hello, how are you?"},
				Response: []ResponseFragment{
					{Value: "I'm doing well, thank you!"},
				},
			},
		},
	}
}

// CreateTestEditingSession creates an editing session with the given number
// of history entries
func CreateTestEditingSession(id string, edits int) *EditingSession {
	session := &EditingSession{
		SessionID: id,
		Version:   1,
	}
	for i := 0; i < edits; i++ {
		session.LinearHistory = append(session.LinearHistory, EditEntry{
			Stops: []EditStop{
				{Entries: []StopEntry{{Resource: fmt.Sprintf("file:///src/file%d.go", i)}}},
			},
			PostEdit: []PostEditEntry{
				{
					Resource: fmt.Sprintf("file:///src/file%d.go", i),
					OriginalToCurrentEdit: []EditChange{
						{Text: fmt.Sprintf("func Change%d() {}", i)},
					},
				},
			},
		})
	}
	return session
}

// RecordingReporter captures reported events for assertions
type RecordingReporter struct {
	Infos     []string
	Debugs    []string
	Warnings  []string
	Errors    []string
	Successes []string
}

func (r *RecordingReporter) Infof(format string, args ...interface{}) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) Debugf(format string, args ...interface{}) {
	r.Debugs = append(r.Debugs, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) Warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) Errorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *RecordingReporter) Successf(format string, args ...interface{}) {
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}
