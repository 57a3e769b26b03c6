package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eringen/folio/content"
)

// Blob keys read from the store.
const (
	BlobItemsKey   = "items.json"
	BlobAboutKey   = "about.json"
	BlobContactKey = "contact.json"
)

// DefaultBlobStore is the store name used when none is configured.
const DefaultBlobStore = "work-items"

// maxBlobSize bounds a single blob read.
const maxBlobSize = 8 << 20

var errBlobNotFound = errors.New("blob not found")

// Blob reads JSON documents from an HTTP blob store laid out as
// {BaseURL}/{Store}/{key}, authenticating with a bearer token.
type Blob struct {
	BaseURL string
	Store   string
	Token   string
	Client  *http.Client
	Logger  zerolog.Logger
}

// NewBlob returns a Blob source. An empty store selects DefaultBlobStore.
func NewBlob(baseURL, store, token string) *Blob {
	if store == "" {
		store = DefaultBlobStore
	}
	return &Blob{BaseURL: baseURL, Store: store, Token: token, Client: http.DefaultClient, Logger: zerolog.Nop()}
}

func (b *Blob) name() string { return "blob:" + b.Store }

func (b *Blob) get(ctx context.Context, key string) ([]byte, error) {
	u, err := url.JoinPath(b.BaseURL, b.Store, key)
	if err != nil {
		return nil, fmt.Errorf("build blob url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if b.Token != "" {
		req.Header.Set("Authorization", "Bearer "+b.Token)
	}
	req.Header.Set("Accept", "application/json")
	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errBlobNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("blob store rejected credentials (%d); check the blob access token", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("blob store returned %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBlobSize))
}

// ListWorkItems reads items.json. A missing blob yields an empty catalog; a
// body that is not a JSON array fails.
func (b *Blob) ListWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	data, err := b.get(ctx, BlobItemsKey)
	if errors.Is(err, errBlobNotFound) {
		b.Logger.Warn().Str("store", b.Store).Str("key", BlobItemsKey).Msg("no work items in blob store, serving an empty catalog")
		return []content.WorkItem{}, nil
	}
	if err != nil {
		return nil, content.NewSourceError(opFetchWork, b.name(), err)
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		b.Logger.Warn().Str("store", b.Store).Str("key", BlobItemsKey).Msg("work items blob is empty, serving an empty catalog")
		return []content.WorkItem{}, nil
	}
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return nil, content.NewSourceError(opFetchWork, b.name(), errors.New("invalid data structure: expected an array of work items"))
	}
	var items []content.WorkItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, content.NewSourceError(opFetchWork, b.name(), fmt.Errorf("decode %s: %w", BlobItemsKey, err))
	}
	return checkWorkItems(b.name(), items)
}

func (b *Blob) getObject(ctx context.Context, key string, v any) error {
	data, err := b.get(ctx, key)
	if errors.Is(err, errBlobNotFound) {
		return fmt.Errorf("%s not found in store %q", key, b.Store)
	}
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(bytes.TrimSpace(data)), "{") {
		return fmt.Errorf("invalid data structure in %s: expected an object", key)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// GetAbout reads about.json.
func (b *Blob) GetAbout(ctx context.Context) (content.About, error) {
	var a content.About
	if err := b.getObject(ctx, BlobAboutKey, &a); err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, b.name(), err)
	}
	return checkAbout(b.name(), a)
}

// GetContact reads contact.json.
func (b *Blob) GetContact(ctx context.Context) (content.Contact, error) {
	var c content.Contact
	if err := b.getObject(ctx, BlobContactKey, &c); err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, b.name(), err)
	}
	return checkContact(b.name(), c)
}

// Set exposes the blob store through all three ports.
func (b *Blob) Set() Set {
	return Set{
		Work:    WorkItemFunc(b.ListWorkItems),
		About:   AboutFunc(b.GetAbout),
		Contact: ContactFunc(b.GetContact),
	}
}
