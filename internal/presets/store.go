// Package presets persists named parameter presets and the recent-file
// history in a local SQLite database.
package presets

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

const dbFileName = "numex.db"

var (
	ErrStoreClosed    = errors.New("preset store is closed")
	ErrAlreadyOpen    = errors.New("preset store is already open")
	ErrPresetNotFound = errors.New("preset not found")
)

// Preset is a saved snapshot of a view's parameters.
type Preset struct {
	ID        string
	Name      string
	Mode      string
	Params    map[string]interface{}
	CreatedAt time.Time
}

// RecentFile is one entry of the recently-opened history.
type RecentFile struct {
	Path       string
	LastOpened time.Time
	Opens      int
}

// Store wraps the SQLite database holding presets and history.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	open bool
}

// NewStore returns an unopened store; call Open before use.
func NewStore() *Store {
	return &Store{}
}

// Open creates dataDir if needed, opens the database file inside it and
// applies the schema. Opening an already-open store is an error.
func (s *Store) Open(dataDir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}

	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = db
	s.open = true
	return nil
}

// Close releases the database. Closing a closed store is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	s.open = false
	err := s.db.Close()
	s.db = nil
	return err
}

// SavePreset stores a named snapshot, replacing any preset with the same
// name. The returned preset carries the assigned id and timestamp.
func (s *Store) SavePreset(name, mode string, values map[string]interface{}) (Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return Preset{}, ErrStoreClosed
	}
	if name == "" {
		return Preset{}, fmt.Errorf("preset name must not be empty")
	}

	encoded, err := json.Marshal(values)
	if err != nil {
		return Preset{}, fmt.Errorf("encode params: %w", err)
	}

	p := Preset{
		ID:        uuid.NewString(),
		Name:      name,
		Mode:      mode,
		Params:    values,
		CreatedAt: time.Now().UTC(),
	}

	// The update path keeps the row's original id; RETURNING reports
	// whichever id the row ends up with.
	err = s.db.QueryRow(`
		INSERT INTO presets (id, name, mode, params, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			mode = excluded.mode,
			params = excluded.params,
			created_at = excluded.created_at
		RETURNING id`,
		p.ID, p.Name, p.Mode, string(encoded), p.CreatedAt.Format(time.RFC3339)).Scan(&p.ID)
	if err != nil {
		return Preset{}, fmt.Errorf("save preset %q: %w", name, err)
	}
	return p, nil
}

// GetPreset loads one preset by name.
func (s *Store) GetPreset(name string) (Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return Preset{}, ErrStoreClosed
	}

	row := s.db.QueryRow(
		`SELECT id, name, mode, params, created_at FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrPresetNotFound
	}
	return p, err
}

// ListPresets returns all presets ordered by name.
func (s *Store) ListPresets() ([]Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(
		`SELECT id, name, mode, params, created_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePreset removes a preset by name.
func (s *Store) DeletePreset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrStoreClosed
	}

	res, err := s.db.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPresetNotFound
	}
	return nil
}

// TouchRecent records that a file was opened, bumping its open count.
func (s *Store) TouchRecent(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO recent_files (path, last_opened, opens)
		VALUES (?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			last_opened = excluded.last_opened,
			opens = opens + 1`,
		path, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("record recent file: %w", err)
	}
	return nil
}

// ListRecent returns the most recently opened files, newest first.
func (s *Store) ListRecent(limit int) ([]RecentFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT path, last_opened, opens FROM recent_files
		ORDER BY last_opened DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent files: %w", err)
	}
	defer rows.Close()

	var out []RecentFile
	for rows.Next() {
		var rf RecentFile
		var opened int64
		if err := rows.Scan(&rf.Path, &opened, &rf.Opens); err != nil {
			return nil, err
		}
		rf.LastOpened = time.Unix(0, opened)
		out = append(out, rf)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPreset(row rowScanner) (Preset, error) {
	var p Preset
	var encoded, created string
	if err := row.Scan(&p.ID, &p.Name, &p.Mode, &encoded, &created); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal([]byte(encoded), &p.Params); err != nil {
		return Preset{}, fmt.Errorf("decode params for %q: %w", p.Name, err)
	}
	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return Preset{}, fmt.Errorf("parse timestamp %q: %w", created, err)
	}
	return p, nil
}
