package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"trackup/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers and keeps per-connection pragmas.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS members (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			team TEXT NOT NULL REFERENCES teams(name) ON DELETE CASCADE,
			name TEXT NOT NULL,
			UNIQUE(team, name)
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			assignee TEXT NOT NULL,
			deadline TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_id ON tasks(id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee COLLATE NOCASE);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Teams(ctx context.Context) (model.Roster, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name, m.name
		FROM teams t
		LEFT JOIN members m ON m.team = t.name
		ORDER BY t.seq, m.seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := model.Roster{}
	for rows.Next() {
		var team string
		var member sql.NullString
		if err := rows.Scan(&team, &member); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].Name != team {
			out = append(out, model.Team{Name: team, Members: []string{}})
		}
		if member.Valid {
			last := &out[len(out)-1]
			last.Members = append(last.Members, member.String)
		}
	}
	return out, rows.Err()
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func teamExists(ctx context.Context, q rowQuerier, name string) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM teams WHERE name = ?`, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) CreateTeam(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO teams(name) VALUES(?)`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTeamExists
	}
	return nil
}

func (s *SQLiteStore) DeleteTeam(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (s *SQLiteStore) AddMember(ctx context.Context, team, member string) error {
	member, err := cleanName(member)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := teamExists(ctx, tx, team)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTeamNotFound
	}
	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO members(team, name) VALUES(?, ?)`, team, member)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberExists
	}
	return tx.Commit()
}

func (s *SQLiteStore) RemoveMember(ctx context.Context, team, member string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := teamExists(ctx, tx, team)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTeamNotFound
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE team = ? AND name = ?`, team, member)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMemberNotFound
	}
	return tx.Commit()
}

func (s *SQLiteStore) AddTask(ctx context.Context, t model.Task) (model.Task, error) {
	t, err := normalizeTask(t)
	if err != nil {
		return model.Task{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks(title, status, assignee, deadline) VALUES(?, ?, ?, ?)`,
		t.Title, string(t.Status), t.Assignee, t.Deadline)
	if err != nil {
		return model.Task{}, err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	t.ID = taskID(seq)
	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET id = ? WHERE seq = ?`, t.ID, seq); err != nil {
		return model.Task{}, err
	}
	return t, tx.Commit()
}

func (s *SQLiteStore) Tasks(ctx context.Context, assignee string) ([]model.Task, error) {
	q := `SELECT id, title, status, assignee, deadline FROM tasks`
	var args []any
	if assignee != "" {
		q += ` WHERE assignee = ? COLLATE NOCASE`
		args = append(args, assignee)
	}
	q += ` ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		var t model.Task
		var status string
		if err := rows.Scan(&t.ID, &t.Title, &status, &t.Assignee, &t.Deadline); err != nil {
			return nil, err
		}
		t.Status = model.TaskStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
