// Package vfs maintains the server's view of open documents: a
// concurrency-safe registry mapping document URIs to versioned in-memory
// buffers. While a file is open the registry is authoritative over its
// on-disk content.
package vfs

import (
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/teranos/fmtls/errors"
)

// VFS owns the URI → Document mapping. Many readers may proceed together;
// writers get exclusive access. No lock is ever held across file I/O.
type VFS struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	readFile func(string) ([]byte, error)
}

// New creates an empty registry backed by the real filesystem.
func New() *VFS {
	return &VFS{
		docs:     make(map[string]*Document),
		readFile: os.ReadFile,
	}
}

// CreateDocument inserts a new document at version 0, unconditionally
// replacing any existing entry for the URI.
func (v *VFS) CreateDocument(uri, contents string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.docs[uri] = &Document{
		uri:     uri,
		version: 0,
		text:    contents,
	}
}

// WithDocument runs fn with read-only access to the document, reporting
// whether the URI is open. fn is not called when the document is absent.
func (v *VFS) WithDocument(uri string, fn func(*Document)) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	doc, ok := v.docs[uri]
	if !ok {
		return false
	}
	fn(doc)
	return true
}

// ModifyDocument runs fn with exclusive access to the document. A no-op
// when the URI is not open; callers needing absence-awareness check first
// via WithDocument.
func (v *VFS) ModifyDocument(uri string, fn func(*Document)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if doc, ok := v.docs[uri]; ok {
		fn(doc)
	}
}

// EvictDocument removes the entry if present. Never fails.
func (v *VFS) EvictDocument(uri string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.docs, uri)
}

// DocumentContents returns the in-memory text when the URI is open,
// otherwise the on-disk contents. The registry lock is released before
// touching the filesystem.
func (v *VFS) DocumentContents(uri string) (string, error) {
	var contents string
	if v.WithDocument(uri, func(d *Document) { contents = d.text }) {
		return contents, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", err
	}
	data, err := v.readFile(path)
	if err != nil {
		// Not open and not readable from disk either.
		return "", errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrNotOpen)
	}
	return string(data), nil
}

// uriToPath resolves a file:// URI to a filesystem path.
func uriToPath(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", errors.Wrapf(err, "invalid document URI %q", uri)
	}
	if parsed.Scheme != "file" {
		return "", errors.Newf("unsupported URI scheme %q", parsed.Scheme)
	}
	return filepath.FromSlash(parsed.Path), nil
}
