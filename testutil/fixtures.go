package testutil

import (
	"path/filepath"
	"testing"
)

// StorageWorkspace describes one synthetic workspace directory to write into
// a workspace-storage tree. Session values are marshaled as-is, so tests can
// use loosely-shaped maps to exercise tolerant parsing.
type StorageWorkspace struct {
	Hash            string
	Info            map[string]interface{}
	ChatSessions    map[string]interface{} // filename (without .json) -> session
	EditingSessions map[string]interface{} // session dir name -> state
}

// BuildWorkspaceStorage writes a synthetic workspace-storage tree under root.
func BuildWorkspaceStorage(t *testing.T, root string, workspaces []StorageWorkspace) {
	t.Helper()
	for _, ws := range workspaces {
		dir := filepath.Join(root, ws.Hash)

		if ws.Info != nil {
			WriteJSON(t, filepath.Join(dir, "workspace.json"), ws.Info)
		}

		for name, session := range ws.ChatSessions {
			WriteJSON(t, filepath.Join(dir, "chatSessions", name+".json"), session)
		}

		for name, state := range ws.EditingSessions {
			WriteJSON(t, filepath.Join(dir, "chatEditingSessions", name, "state.json"), state)
		}
	}
}

// ChatSessionFixture returns a minimal chat session document with one
// user/assistant turn.
func ChatSessionFixture(id, userText, responseText string) map[string]interface{} {
	return map[string]interface{}{
		"sessionId":    id,
		"creationDate": 1705313400000,
		"requests": []map[string]interface{}{
			{
				"message":  map[string]interface{}{"text": userText},
				"response": []map[string]interface{}{{"value": responseText}},
			},
		},
	}
}

// EditingSessionFixture returns a minimal editing session document with one
// history entry touching one file.
func EditingSessionFixture(id, resource string) map[string]interface{} {
	return map[string]interface{}{
		"sessionId": id,
		"version":   1,
		"linearHistory": []map[string]interface{}{
			{
				"stops": []map[string]interface{}{
					{"entries": []map[string]interface{}{{"resource": resource}}},
				},
			},
		},
	}
}
