package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/content"
)

// Store wraps a SQLite database holding the work catalog, the biography and
// the contact block.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while an import is writing; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) name() string { return "sqlite:" + s.path }

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS work_items (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    year TEXT NOT NULL DEFAULT '',
    type TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    image_url TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL DEFAULT '',
    gallery_images TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_work_items_position ON work_items(position);
CREATE TABLE IF NOT EXISTS about (
    singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    bio TEXT NOT NULL,
    email TEXT NOT NULL,
    location TEXT NOT NULL,
    skills TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS contact (
    singleton INTEGER PRIMARY KEY CHECK (singleton = 1),
    email TEXT NOT NULL,
    location TEXT NOT NULL
);
`)
	return err
}

func encodeList(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	b, err := json.Marshal(vals)
	return string(b), err
}

func decodeList(raw string) ([]string, error) {
	var vals []string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return vals, nil
}

// ListWorkItems returns every work item ordered by position. Rows that fail
// to decode or validate fail the whole call.
func (s *Store) ListWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	items, err := s.listWorkItems(ctx)
	if err != nil {
		return nil, content.NewSourceError(opFetchWork, s.name(), err)
	}
	return checkWorkItems(s.name(), items)
}

func (s *Store) listWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, category, description, year, type, tags, image_url, video_url, gallery_images FROM work_items ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []content.WorkItem
	for rows.Next() {
		var it content.WorkItem
		var kind, tags, gallery string
		if err := rows.Scan(&it.ID, &it.Title, &it.Category, &it.Description, &it.Year, &kind, &tags, &it.ImageURL, &it.VideoURL, &gallery); err != nil {
			return nil, err
		}
		it.Type = content.Kind(kind)
		if it.Tags, err = decodeList(tags); err != nil {
			return nil, fmt.Errorf("work item %q: tags: %w", it.ID, err)
		}
		if it.Tags == nil {
			it.Tags = []string{}
		}
		if it.GalleryImages, err = decodeList(gallery); err != nil {
			return nil, fmt.Errorf("work item %q: gallery images: %w", it.ID, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveWorkItem validates and upserts an item at the given display position.
func (s *Store) SaveWorkItem(ctx context.Context, it content.WorkItem, position int) error {
	if err := content.Validate(it, position); err != nil {
		return err
	}
	return saveWorkItem(ctx, s.db, it, position)
}

func saveWorkItem(ctx context.Context, db execer, it content.WorkItem, position int) error {
	tags, err := encodeList(it.Tags)
	if err != nil {
		return err
	}
	gallery, err := encodeList(it.GalleryImages)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO work_items (id, position, title, category, description, year, type, tags, image_url, video_url, gallery_images) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, position, it.Title, it.Category, it.Description, it.Year, string(it.Type), tags, it.ImageURL, it.VideoURL, gallery)
	return err
}

// DeleteWorkItem removes an item by id.
func (s *Store) DeleteWorkItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	return err
}

// GetAbout returns the stored biography.
func (s *Store) GetAbout(ctx context.Context) (content.About, error) {
	var a content.About
	var skills string
	err := s.db.QueryRowContext(ctx, `SELECT id, name, role, bio, email, location, skills FROM about WHERE singleton = 1`).
		Scan(&a.ID, &a.Name, &a.Role, &a.Bio, &a.Email, &a.Location, &skills)
	if errors.Is(err, sql.ErrNoRows) {
		return content.About{}, content.NewSourceError(opFetchAbout, s.name(), errors.New("about content unavailable"))
	}
	if err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, s.name(), err)
	}
	if a.Skills, err = decodeList(skills); err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, s.name(), fmt.Errorf("skills: %w", err))
	}
	return checkAbout(s.name(), a)
}

// SaveAbout replaces the stored biography.
func (s *Store) SaveAbout(ctx context.Context, a content.About) error {
	if err := content.ValidateAbout(a); err != nil {
		return err
	}
	return saveAbout(ctx, s.db, a)
}

func saveAbout(ctx context.Context, db execer, a content.About) error {
	skills, err := encodeList(a.Skills)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO about (singleton, id, name, role, bio, email, location, skills) VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Role, a.Bio, a.Email, a.Location, skills)
	return err
}

// GetContact returns the stored contact block.
func (s *Store) GetContact(ctx context.Context) (content.Contact, error) {
	var c content.Contact
	err := s.db.QueryRowContext(ctx, `SELECT email, location FROM contact WHERE singleton = 1`).Scan(&c.Email, &c.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Contact{}, content.NewSourceError(opFetchContact, s.name(), errors.New("contact details unavailable"))
	}
	if err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, s.name(), err)
	}
	return checkContact(s.name(), c)
}

// SaveContact replaces the stored contact block.
func (s *Store) SaveContact(ctx context.Context, c content.Contact) error {
	if err := content.ValidateContact(c); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO contact (singleton, email, location) VALUES (1, ?, ?)`, c.Email, c.Location)
	return err
}

// Import validates a catalog and replaces the stored work items with it in
// one transaction. About and contact are replaced only when present.
func (s *Store) Import(ctx context.Context, c content.Catalog) error {
	if err := content.ValidateCatalog(c); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_items`); err != nil {
		return err
	}
	for i, it := range c.Works {
		if err := saveWorkItem(ctx, tx, it, i); err != nil {
			return fmt.Errorf("work item %q: %w", it.ID, err)
		}
	}
	if c.About != nil {
		if err := saveAbout(ctx, tx, *c.About); err != nil {
			return fmt.Errorf("about: %w", err)
		}
	}
	if c.Contact != nil {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO contact (singleton, email, location) VALUES (1, ?, ?)`, c.Contact.Email, c.Contact.Location); err != nil {
			return fmt.Errorf("contact: %w", err)
		}
	}
	return tx.Commit()
}

// Set exposes the store through all three ports.
func (s *Store) Set() Set {
	return Set{
		Work:    WorkItemFunc(s.ListWorkItems),
		About:   AboutFunc(s.GetAbout),
		Contact: ContactFunc(s.GetContact),
	}
}
