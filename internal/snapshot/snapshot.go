// Package snapshot caches decode metadata on disk so repeated runs over
// unchanged inputs can be told apart cheaply. The payload is a summary, not
// the decoded module itself: owned modules are cheap to rebuild from their
// source, and the summary is what the CLI actually reports.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"irlift/internal/ir"
)

// Increment when the Payload format changes.
const schemaVersion uint16 = 1

// Digest is a SHA-256 content hash.
type Digest [sha256.Size]byte

// DigestBytes hashes raw input content.
func DigestBytes(data []byte) Digest { return sha256.Sum256(data) }

// IsZero reports whether the digest is unset.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// String returns the hex form.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// FuncSummary is the cached shape of one decoded function.
type FuncSummary struct {
	Name       string
	Params     int
	Blocks     int
	Instrs     int
	Signature  string
	ReturnType string
}

// Payload is the cached metadata for one decoded module.
type Payload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Name           string
	SourceFilename string
	TargetTriple   string

	Funcs   []FuncSummary
	Globals int

	// Input is the digest of the source content the module was decoded
	// from; it doubles as the cache key.
	Input Digest

	DecodedAt time.Time
}

// FromModule summarizes a decoded module for caching.
func FromModule(m *ir.Module, input Digest) *Payload {
	p := &Payload{
		Schema:         schemaVersion,
		Name:           m.Name,
		SourceFilename: m.SourceFilename,
		TargetTriple:   m.TargetTriple,
		Globals:        len(m.Globals),
		Input:          input,
		DecodedAt:      time.Now().UTC(),
	}
	p.Funcs = make([]FuncSummary, len(m.Funcs))
	for i, f := range m.Funcs {
		instrs := 0
		for bi := range f.Blocks {
			instrs += len(f.Blocks[bi].Instrs) + 1 // terminator counts
		}
		p.Funcs[i] = FuncSummary{
			Name:       f.Name,
			Params:     len(f.Params),
			Blocks:     len(f.Blocks),
			Instrs:     instrs,
			Signature:  f.TypeOf().String(),
			ReturnType: f.Return.String(),
		}
	}
	return p
}

// Store is a disk-backed snapshot cache. Thread-safe for concurrent access.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a store at the standard cache location for the app.
func Open(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// OpenDir initializes a store at an explicit directory, mainly for tests.
func OpenDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(key Digest) string {
	return filepath.Join(s.dir, "mods", key.String()+".mp")
}

// Put serializes and writes a payload; the write is atomic via rename.
func (s *Store) Put(key Digest, payload *Payload) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; a missing entry or a schema mismatch is a miss, not
// an error.
func (s *Store) Get(key Digest, out *Payload) (bool, error) {
	if s == nil {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (s *Store) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
