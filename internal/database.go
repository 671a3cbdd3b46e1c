package internal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// stateDatabaseName is the key-value database some editor versions keep per
// workspace instead of loose chatSessions/*.json files.
const stateDatabaseName = "state.vscdb"

// interactiveSessionsKey is the ItemTable key holding the chat session array.
const interactiveSessionsKey = "interactive.sessions"

// OpenStateDatabase opens a workspace state database in read-only mode.
func OpenStateDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// LoadSessionsFromStateDB reads the chat sessions stored under the
// interactive.sessions key. A missing key or table means no sessions, not an
// error; sessions without requests are dropped.
func LoadSessionsFromStateDB(db *sql.DB) ([]ChatSession, error) {
	var value string
	row := db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", interactiveSessionsKey)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query failed: %w", err)
	}

	var sessions []ChatSession
	if err := json.Unmarshal([]byte(value), &sessions); err != nil {
		return nil, &ParseError{Path: interactiveSessionsKey, Err: err}
	}

	kept := sessions[:0]
	for _, session := range sessions {
		if len(session.Requests) > 0 {
			kept = append(kept, session)
		}
	}
	return kept, nil
}
