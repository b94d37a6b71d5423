// Package memory persists per-session conversation context for the
// persona agents.
package memory

import (
	"database/sql"

	_ "github.com/glebarez/go-sqlite"
	"github.com/tmc/langchaingo/llms"
)

type Store struct {
	DB *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	query := `CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		persona TEXT,
		role TEXT,
		content TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(query); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) AddMessage(sessionID, persona, role, content string) error {
	query := `INSERT INTO messages (session_id, persona, role, content) VALUES (?, ?, ?, ?)`
	_, err := s.DB.Exec(query, sessionID, persona, role, content)
	return err
}

// GetHistory returns the most recent messages for a session and
// persona in chronological order, ready to prepend to an LLM call.
func (s *Store) GetHistory(sessionID, persona string, limit int) ([]llms.MessageContent, error) {
	query := `SELECT role, content FROM messages
		WHERE session_id = ? AND persona = ?
		ORDER BY id DESC LIMIT ?`
	rows, err := s.DB.Query(query, sessionID, persona, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []llms.MessageContent
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, err
		}

		var msgRole llms.ChatMessageType
		switch role {
		case "human":
			msgRole = llms.ChatMessageTypeHuman
		case "ai":
			msgRole = llms.ChatMessageTypeAI
		case "system":
			msgRole = llms.ChatMessageTypeSystem
		default:
			msgRole = llms.ChatMessageTypeHuman
		}

		history = append(history, llms.MessageContent{
			Role: msgRole,
			Parts: []llms.ContentPart{
				llms.TextPart(content),
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to get chronological order
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return history, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
