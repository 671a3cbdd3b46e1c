package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// reservedStorageDirs are workspace-storage subdirectories that never hold
// workspace data.
var reservedStorageDirs = []string{"images"}

const (
	chatSessionsDir    = "chatSessions"
	editingSessionsDir = "chatEditingSessions"
	workspaceMetaFile  = "workspace.json"
	editingStateFile   = "state.json"
)

// Loader discovers and loads raw workspace history, either from a single
// pre-assembled JSON file or from a workspace-storage directory tree.
type Loader struct {
	Reporter Reporter

	// SkipDirs are extra storage subdirectory names to ignore, on top of
	// the reserved ones.
	SkipDirs []string
}

// NewLoader creates a Loader reporting through the given Reporter.
func NewLoader(reporter Reporter) *Loader {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Loader{Reporter: reporter}
}

// LoadHistoryFile loads a JSON file containing an array of workspace records.
func (l *Loader) LoadHistoryFile(path string) ([]WorkspaceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &StorageError{Path: path, Op: "read", Err: err}
	}

	var workspaces []WorkspaceRecord
	if err := json.Unmarshal(data, &workspaces); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return workspaces, nil
}

// LoadWorkspaceStorage walks a workspace-storage root and loads every
// workspace subdirectory with usable data. Workspaces that fail to load or
// hold nothing exportable are reported and excluded; only a missing or
// non-directory root is fatal.
func (l *Loader) LoadWorkspaceStorage(root string) ([]WorkspaceRecord, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: root}
		}
		return nil, &StorageError{Path: root, Op: "stat", Err: err}
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: root}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &StorageError{Path: root, Op: "read", Err: err}
	}

	var workspaces []WorkspaceRecord
	for _, entry := range entries {
		if !entry.IsDir() || l.skipDir(entry.Name()) {
			continue
		}

		l.Reporter.Infof("Processing workspace directory: %s", entry.Name())
		workspace := l.loadWorkspace(filepath.Join(root, entry.Name()))
		if workspace == nil {
			l.Reporter.Infof("  - Skipping %s (no valid data)", entry.Name())
			continue
		}
		workspaces = append(workspaces, *workspace)
	}

	return workspaces, nil
}

func (l *Loader) skipDir(name string) bool {
	for _, reserved := range reservedStorageDirs {
		if name == reserved {
			return true
		}
	}
	for _, skip := range l.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

// loadWorkspace loads one workspace directory. It returns nil when the
// directory has no workspace.json or no qualifying sessions.
func (l *Loader) loadWorkspace(dir string) *WorkspaceRecord {
	metaPath := filepath.Join(dir, workspaceMetaFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if !os.IsNotExist(err) {
			l.Reporter.Warnf("Could not read %s: %v", metaPath, err)
		}
		return nil
	}

	var info WorkspaceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		l.Reporter.Warnf("Could not parse %s: %v", metaPath, &ParseError{Path: metaPath, Err: err})
		return nil
	}

	chatSessions := l.loadChatSessions(dir)
	editingSessions := l.loadEditingSessions(dir)

	if len(chatSessions) == 0 && len(editingSessions) == 0 {
		return nil
	}

	return &WorkspaceRecord{
		WorkspaceInfo:   info,
		ChatSessions:    chatSessions,
		EditingSessions: editingSessions,
	}
}

// loadChatSessions reads every *.json file under chatSessions/, keeping only
// sessions with at least one request. When no loose session files exist but
// the workspace keeps its history in a state.vscdb database, that is read
// instead.
func (l *Loader) loadChatSessions(dir string) []ChatSession {
	var sessions []ChatSession

	sessionsDir := filepath.Join(dir, chatSessionsDir)
	entries, err := os.ReadDir(sessionsDir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}

			path := filepath.Join(sessionsDir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				l.Reporter.Warnf("Could not load chat session %s: %v", entry.Name(), err)
				continue
			}

			var session ChatSession
			if err := json.Unmarshal(data, &session); err != nil {
				l.Reporter.Warnf("Could not load chat session %s: %v", entry.Name(), &ParseError{Path: path, Err: err})
				continue
			}
			if len(session.Requests) == 0 {
				continue
			}
			sessions = append(sessions, session)
		}
	}

	if len(sessions) == 0 {
		sessions = l.loadChatSessionsFromStateDB(dir)
	}

	if len(sessions) > 0 {
		l.Reporter.Infof("  - Loaded %d chat session(s)", len(sessions))
	}
	return sessions
}

// loadChatSessionsFromStateDB is the state.vscdb fallback. Any failure here
// is tolerated; the workspace simply has no chat sessions.
func (l *Loader) loadChatSessionsFromStateDB(dir string) []ChatSession {
	dbPath := filepath.Join(dir, stateDatabaseName)
	if _, err := os.Stat(dbPath); err != nil {
		return nil
	}

	db, err := OpenStateDatabase(dbPath)
	if err != nil {
		l.Reporter.Warnf("Could not open %s: %v", dbPath, err)
		return nil
	}
	defer func() { _ = db.Close() }()

	sessions, err := LoadSessionsFromStateDB(db)
	if err != nil {
		l.Reporter.Warnf("Could not load sessions from %s: %v", dbPath, err)
		return nil
	}
	if len(sessions) > 0 {
		l.Reporter.Debugf("loaded %d session(s) from %s", len(sessions), dbPath)
	}
	return sessions
}

// loadEditingSessions reads chatEditingSessions/{id}/state.json files,
// keeping only sessions with a non-empty linear history.
func (l *Loader) loadEditingSessions(dir string) []EditingSession {
	sessionsDir := filepath.Join(dir, editingSessionsDir)
	entries, err := os.ReadDir(sessionsDir)
	if err != nil {
		return nil
	}

	var sessions []EditingSession
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(sessionsDir, entry.Name(), editingStateFile)
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				l.Reporter.Warnf("Could not load editing session %s: %v", entry.Name(), err)
			}
			continue
		}

		var session EditingSession
		if err := json.Unmarshal(data, &session); err != nil {
			l.Reporter.Warnf("Could not load editing session %s: %v", entry.Name(), &ParseError{Path: path, Err: err})
			continue
		}
		if len(session.LinearHistory) == 0 {
			continue
		}
		sessions = append(sessions, session)
	}

	if len(sessions) > 0 {
		l.Reporter.Infof("  - Loaded %d editing session(s)", len(sessions))
	}
	return sessions
}
