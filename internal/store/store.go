// Package store persists the whole application as one JSON document with a
// fixed set of top-level collections. Every write replaces the full document;
// there is no partial-record update.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	applog "gestorpro/internal/log"
)

// FileName is the document's name inside the data directory.
const FileName = "database.json"

// Collection names one top-level array of the document.
type Collection string

const (
	Products Collection = "products"
	Sales    Collection = "sales"
	Users    Collection = "users"
	Quotes   Collection = "quotes"
)

// Collections is the scaffold order.
var Collections = []Collection{Products, Sales, Users, Quotes}

// Document maps top-level keys to their raw JSON values. Keys the app does
// not know about are carried through untouched.
type Document map[string]json.RawMessage

var emptyArray = json.RawMessage("[]")

// Scaffold returns a document with every collection empty.
func Scaffold() Document {
	d := Document{}
	for _, c := range Collections {
		d[string(c)] = emptyArray
	}
	return d
}

// Records decodes one collection into raw records. Missing or malformed
// collections read as empty.
func (d Document) Records(name Collection) []json.RawMessage {
	raw, ok := d[string(name)]
	if !ok {
		return []json.RawMessage{}
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []json.RawMessage{}
	}
	return out
}

// Set encodes records as the named collection. A nil slice is stored as [].
func (d Document) Set(name Collection, records any) error {
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if bytes.Equal(b, []byte("null")) {
		b = emptyArray
	}
	d[string(name)] = b
	return nil
}

// Tables is the narrow persistence contract the repositories use. A
// per-record implementation could satisfy it without touching callers.
type Tables interface {
	Collection(name Collection) []json.RawMessage
	ReplaceCollection(name Collection, records any) bool
	Update(fn func(doc Document) error) bool
}

type Store struct {
	dir  string
	path string
}

func New(dir string) *Store {
	return &Store{dir: dir, path: filepath.Join(dir, FileName)}
}

func (s *Store) Path() string { return s.path }

// Initialize creates the data directory and scaffold, or adds collections
// missing from an existing document. Failures are logged, never returned.
func (s *Store) Initialize() {
	if err := s.initialize(); err != nil {
		applog.Error(nil, "store.init.fail", err, map[string]any{"path": s.path})
	}
}

func (s *Store) initialize() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", s.dir, err)
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		applog.Info(nil, "store.init.scaffold", map[string]any{"path": s.path})
		return s.write(Scaffold())
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	doc := Document{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	var added []string
	for _, c := range Collections {
		if _, ok := doc[string(c)]; !ok {
			doc[string(c)] = emptyArray
			added = append(added, string(c))
		}
	}
	if len(added) == 0 {
		return nil
	}
	applog.Info(nil, "store.init.migrate", map[string]any{"added": added})
	return s.write(doc)
}

// ReadAll returns the whole document, or the empty scaffold if it cannot be
// read or parsed.
func (s *Store) ReadAll() Document {
	doc, err := s.read()
	if err != nil {
		applog.Warn(nil, "store.read.fail", err, map[string]any{"path": s.path})
		return Scaffold()
	}
	return doc
}

func (s *Store) read() (Document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	doc := Document{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Store) Collection(name Collection) []json.RawMessage {
	return s.ReadAll().Records(name)
}

// ReplaceCollection overwrites one collection and writes the whole document.
func (s *Store) ReplaceCollection(name Collection, records any) bool {
	return s.Update(func(doc Document) error {
		return doc.Set(name, records)
	})
}

// Update runs fn against a freshly read document and persists the result in
// a single write. Nothing is written if fn fails.
func (s *Store) Update(fn func(doc Document) error) bool {
	doc := s.ReadAll()
	if err := fn(doc); err != nil {
		applog.Error(nil, "store.update.fail", err, map[string]any{"path": s.path})
		return false
	}
	if err := s.write(doc); err != nil {
		applog.Error(nil, "store.write.fail", err, map[string]any{"path": s.path})
		return false
	}
	return true
}

// write replaces the document via a temp file + rename so a crash mid-write
// leaves the previous version intact.
func (s *Store) write(doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Load decodes a collection into typed records, skipping records that do
// not decode.
func Load[T any](t Tables, name Collection) []T {
	raws := t.Collection(name)
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			applog.Warn(nil, "store.record.skip", err, map[string]any{"collection": string(name), "index": i})
			continue
		}
		out = append(out, v)
	}
	return out
}

// Decode is Load over an already-read document.
func Decode[T any](doc Document, name Collection) ([]T, error) {
	var out []T
	raws := doc.Records(name)
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		out = append(out, v)
	}
	return out, nil
}
