package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/content"
)

// File reads a catalog document (YAML, or JSON as a YAML subset) from disk on
// every fetch.
type File struct {
	Path string
}

// NewFile returns a File source for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) name() string { return "file:" + f.Path }

// DecodeCatalog parses a catalog document. It does not validate.
func DecodeCatalog(r io.Reader) (content.Catalog, error) {
	var c content.Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return content.Catalog{}, nil
		}
		return content.Catalog{}, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// ReadCatalog opens and parses the catalog at path.
func ReadCatalog(path string) (content.Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return content.Catalog{}, err
	}
	defer fh.Close()
	return DecodeCatalog(fh)
}

func (f *File) read(ctx context.Context) (content.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return content.Catalog{}, err
	}
	return ReadCatalog(f.Path)
}

// ListWorkItems returns the validated work catalog.
func (f *File) ListWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	c, err := f.read(ctx)
	if err != nil {
		return nil, content.NewSourceError(opFetchWork, f.name(), err)
	}
	return checkWorkItems(f.name(), c.Works)
}

// GetAbout returns the biography block.
func (f *File) GetAbout(ctx context.Context) (content.About, error) {
	c, err := f.read(ctx)
	if err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, f.name(), err)
	}
	if c.About == nil {
		return content.About{}, content.NewSourceError(opFetchAbout, f.name(), errors.New("about content unavailable"))
	}
	return checkAbout(f.name(), *c.About)
}

// GetContact returns the contact block.
func (f *File) GetContact(ctx context.Context) (content.Contact, error) {
	c, err := f.read(ctx)
	if err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, f.name(), err)
	}
	if c.Contact == nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, f.name(), errors.New("contact details unavailable"))
	}
	return checkContact(f.name(), *c.Contact)
}

// Set exposes the file through all three ports.
func (f *File) Set() Set {
	return Set{
		Work:    WorkItemFunc(f.ListWorkItems),
		About:   AboutFunc(f.GetAbout),
		Contact: ContactFunc(f.GetContact),
	}
}
