// Package sqlite archives terminal interview sessions to SQLite for offline
// debugging and cost analysis. Archiving is an audit side channel: the
// interview path never depends on it succeeding.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hirevox/interview-engine/internal/domain"
)

// Archive persists completed and cancelled sessions with their LLM call logs.
type Archive struct {
	db *sql.DB
}

// New opens (or creates) the archive database at dbPath and initializes the
// schema. Use a "file:x?mode=memory&cache=shared" DSN for tests.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	a := &Archive{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return a, nil
}

func (a *Archive) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			candidate_name TEXT,
			candidate_email TEXT,
			job_title TEXT,
			company_name TEXT,
			state TEXT NOT NULL,
			questions_asked INTEGER NOT NULL,
			started_at TIMESTAMP,
			ended_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			archived_at TIMESTAMP NOT NULL,
			session_json TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS llm_calls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			call_type TEXT NOT NULL,
			model TEXT,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			called_at TIMESTAMP NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_state ON sessions(state)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_calls_session ON llm_calls(session_id)`,
	}

	for _, stmt := range statements {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// ArchiveSession stores a terminal session and its call log. Re-archiving the
// same session id replaces the previous row.
func (a *Archive) ArchiveSession(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions
			(id, candidate_name, candidate_email, job_title, company_name, state,
			 questions_asked, started_at, ended_at, created_at, archived_at, session_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Resume.Name,
		session.Resume.Email,
		session.Job.Title,
		session.Job.CompanyName,
		string(session.State),
		session.QuestionsAsked,
		session.StartedAt,
		session.EndedAt,
		session.CreatedAt,
		time.Now().UTC(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM llm_calls WHERE session_id = ?`, session.ID); err != nil {
		return fmt.Errorf("clear call log: %w", err)
	}

	for _, call := range session.CallLogs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO llm_calls
				(session_id, call_type, model, input_tokens, output_tokens, total_tokens, latency_ms, called_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID,
			call.CallType,
			call.Model,
			call.InputTokens,
			call.OutputTokens,
			call.TotalTokens,
			call.LatencyMS,
			call.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert call log: %w", err)
		}
	}

	return tx.Commit()
}

// GetArchivedSession reloads an archived session from its JSON payload.
func (a *Archive) GetArchivedSession(ctx context.Context, id string) (*domain.Session, error) {
	var payload string
	err := a.db.QueryRowContext(ctx, `SELECT session_json FROM sessions WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// UsageSummary aggregates token usage across a session's archived calls.
type UsageSummary struct {
	TotalCalls   int
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	LatencyMS    int64
}

// SessionUsage sums the archived call log for one session.
func (a *Archive) SessionUsage(ctx context.Context, id string) (UsageSummary, error) {
	var s UsageSummary
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(total_tokens), 0),
			COALESCE(SUM(latency_ms), 0)
		 FROM llm_calls WHERE session_id = ?`, id).
		Scan(&s.TotalCalls, &s.InputTokens, &s.OutputTokens, &s.TotalTokens, &s.LatencyMS)
	if err != nil {
		return UsageSummary{}, fmt.Errorf("query usage: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
