package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/content"
)

// DefaultPattern selects work item files inside a content directory.
const DefaultPattern = "work/**/*.{yaml,yml}"

// Dir reads a content directory: one YAML document per work item matched by
// Pattern, plus about.yaml and contact.yaml at the root. Items are returned
// in path order, so a numeric prefix ("01-brand.yaml") fixes the display
// order.
type Dir struct {
	FS      fs.FS
	Pattern string
	label   string
}

// NewDir returns a Dir rooted at path on the local filesystem.
func NewDir(path, pattern string) *Dir {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &Dir{FS: os.DirFS(path), Pattern: pattern, label: "dir:" + path}
}

func (d *Dir) name() string {
	if d.label == "" {
		return "dir"
	}
	return d.label
}

func (d *Dir) decode(path string, v any) error {
	data, err := fs.ReadFile(d.FS, path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ListWorkItems returns the validated work catalog.
func (d *Dir) ListWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	pattern := d.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(d.FS, pattern)
	if err != nil {
		return nil, content.NewSourceError(opFetchWork, d.name(), err)
	}
	sort.Strings(matches)
	items := make([]content.WorkItem, 0, len(matches))
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return nil, content.NewSourceError(opFetchWork, d.name(), err)
		}
		var it content.WorkItem
		if err := d.decode(path, &it); err != nil {
			return nil, content.NewSourceError(opFetchWork, d.name(), err)
		}
		items = append(items, it)
	}
	return checkWorkItems(d.name(), items)
}

// GetAbout reads about.yaml.
func (d *Dir) GetAbout(ctx context.Context) (content.About, error) {
	var a content.About
	if err := d.readSingleton(ctx, "about.yaml", &a); err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, d.name(), err)
	}
	return checkAbout(d.name(), a)
}

// GetContact reads contact.yaml.
func (d *Dir) GetContact(ctx context.Context) (content.Contact, error) {
	var c content.Contact
	if err := d.readSingleton(ctx, "contact.yaml", &c); err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, d.name(), err)
	}
	return checkContact(d.name(), c)
}

func (d *Dir) readSingleton(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := d.decode(path, v)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s is missing", path)
	}
	return err
}

// Set exposes the directory through all three ports.
func (d *Dir) Set() Set {
	return Set{
		Work:    WorkItemFunc(d.ListWorkItems),
		About:   AboutFunc(d.GetAbout),
		Contact: ContactFunc(d.GetContact),
	}
}
