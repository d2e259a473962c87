// Package storage persists named JSON documents ("users", "items", "outfits").
//
// Every repository call is a whole-document round trip: Load, mutate the decoded
// Document in memory, Save it back. Backends serialize their own Load and Save calls
// per document, but nothing locks across the round trip, so two concurrent writers
// can still lose an update.
package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"wardrobe/internal/metrics"
)

// Backend loads and saves whole documents.
type Backend interface {
	// Load returns the named document. A document that has never been saved is empty.
	Load(name string) (Document, error)
	// Save replaces the named document wholesale.
	Save(name string, doc Document) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend      string // json (default), memory, bolt, sqlite, postgres
	Dir          string
	DSN          string
	AtomicWrites bool
}

// New creates a Backend.
//
// Supported backends:
//
//	"json"     - one JSON file per document in Dir (default)
//	"memory"   - in-memory, for tests
//	"bolt"     - BoltDB file at Dir/wardrobe.bolt, one bucket per document
//	"sqlite"   - SQLite via GORM, DSN or Dir/wardrobe.db
//	"postgres" - PostgreSQL via GORM, DSN required
func New(opts Options) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch opts.Backend {
	case "json", "":
		b, err = NewFileBackend(opts.Dir, opts.AtomicWrites)
	case "memory":
		b = NewMemoryBackend()
	case "bolt":
		b, err = NewBoltBackend(filepath.Join(opts.Dir, "wardrobe.bolt"))
	case "sqlite", "postgres":
		dsn := opts.DSN
		if dsn == "" && opts.Backend == "sqlite" {
			dsn = filepath.Join(opts.Dir, "wardrobe.db")
		}
		b, err = OpenGormBackend(opts.Backend, dsn)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, memory, bolt, sqlite, postgres)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return &observed{Backend: b}, nil
}

// observed records load/save metrics around any backend.
type observed struct {
	Backend
}

func (o *observed) Load(name string) (Document, error) {
	defer metrics.ObserveStore(name, "load", time.Now())
	return o.Backend.Load(name)
}

func (o *observed) Save(name string, doc Document) error {
	defer metrics.ObserveStore(name, "save", time.Now())
	return o.Backend.Save(name, doc)
}

// documentLocks hands out one mutex per document name.
type documentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *documentLocks) get(name string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	return m
}
