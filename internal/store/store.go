// Package store persists named deep-zoom locations in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no bookmark with the requested name exists.
var ErrNotFound = errors.New("store: bookmark not found")

// Bookmark is a saved camera position.
type Bookmark struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	X       float64 `db:"x"`
	Y       float64 `db:"y"`
	Zoom    float64 `db:"zoom"`
	Created int64   `db:"created_at"` // unix seconds
}

// DB wraps a SQLite connection for bookmark persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the bookmark database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		x REAL NOT NULL,
		y REAL NOT NULL,
		zoom REAL NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_created ON bookmarks(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Add saves a camera position under a name, replacing any existing
// bookmark with the same name.
func (db *DB) Add(name string, x, y, zoom float64) (*Bookmark, error) {
	b := &Bookmark{
		ID:      uuid.NewString(),
		Name:    name,
		X:       x,
		Y:       y,
		Zoom:    zoom,
		Created: time.Now().Unix(),
	}
	_, err := db.conn.Exec(`INSERT INTO bookmarks (id, name, x, y, zoom, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET x=excluded.x, y=excluded.y,
			zoom=excluded.zoom, created_at=excluded.created_at`,
		b.ID, b.Name, b.X, b.Y, b.Zoom, b.Created)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark %q: %w", name, err)
	}
	slog.Debug("bookmark saved", "name", name, "x", x, "y", y, "zoom", zoom)
	return b, nil
}

// Get returns the bookmark with the given name.
func (db *DB) Get(name string) (*Bookmark, error) {
	var b Bookmark
	err := db.conn.Get(&b, `SELECT id, name, x, y, zoom, created_at
		FROM bookmarks WHERE name = ?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all bookmarks, newest first.
func (db *DB) List() ([]Bookmark, error) {
	var out []Bookmark
	err := db.conn.Select(&out, `SELECT id, name, x, y, zoom, created_at
		FROM bookmarks ORDER BY created_at DESC, name`)
	return out, err
}

// Remove deletes the bookmark with the given name.
func (db *DB) Remove(name string) error {
	res, err := db.conn.Exec(`DELETE FROM bookmarks WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
