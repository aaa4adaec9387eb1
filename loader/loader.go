// Package loader owns the per-slot file pipeline: read bytes, digest,
// decode, and keep either the resulting record or the failure that
// produced it.  A slot is single-owner state driven from one update
// loop; it does no locking of its own.
package loader

import (
	"bytes"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mpk-tools/mpk/debug"
	"github.com/mpk-tools/mpk/decode"
	"github.com/mpk-tools/mpk/digest"
	"github.com/mpk-tools/mpk/ir"
)

type State int

const (
	Empty State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "<unknown state>"
}

// File is one loaded record: the chosen path, the raw on-disk bytes,
// their digest, and the decoded tree.  A File exclusively owns Data
// and Root; slots never share them.
type File struct {
	Path   string
	Data   []byte
	Digest digest.Digest
	Root   *ir.Value
}

type cacheEntry struct {
	digest digest.Digest
	data   []byte
	root   *ir.Value
}

// Slot is one file binding (e.g. side A or B of a comparison) moving
// through Empty -> Loading -> Loaded | Failed.
//
// Every load carries the generation current when it started and
// commits only if the slot has not been re-targeted since, so a
// superseded load can never clobber a newer binding.  Loads are
// synchronous today; the guard is what makes an asynchronous port
// safe.
type Slot struct {
	name  string
	state State
	path  string
	file  *File
	err   error
	gen   uint64
	cache *lru.Cache[string, *cacheEntry]
}

const cacheSize = 8

func NewSlot(name string) *Slot {
	cache, err := lru.New[string, *cacheEntry](cacheSize)
	if err != nil {
		// only fails for non-positive sizes
		panic(err)
	}
	return &Slot{name: name, cache: cache}
}

func (s *Slot) Name() string { return s.name }
func (s *Slot) State() State { return s.state }
func (s *Slot) Path() string { return s.path }
func (s *Slot) Err() error   { return s.err }
func (s *Slot) File() *File  { return s.file }

// SetPath binds path to the slot and loads it.
func (s *Slot) SetPath(path string) {
	s.gen++
	s.path = path
	s.state = Loading
	s.load(path, s.gen)
}

// Reload re-reads the bound path from disk.  Bytes are never reused
// from the previous record, so a file changed on disk is observed.
func (s *Slot) Reload() error {
	if s.path == "" {
		return ErrNoPath
	}
	s.gen++
	s.state = Loading
	s.load(s.path, s.gen)
	return nil
}

// Unload resets the slot to Empty, dropping the bound path, any
// record, and any retained failure.
func (s *Slot) Unload() {
	s.gen++
	s.state = Empty
	s.path = ""
	s.file = nil
	s.err = nil
}

// Sync re-targets the slot when the externally bound path no longer
// matches what the current record was loaded from.  It is the hook for
// a path changed outside SetPath (a new selection for the same slot).
func (s *Slot) Sync(path string) {
	if path == "" {
		if s.state != Empty {
			s.Unload()
		}
		return
	}
	if path == s.path && (s.file == nil || s.file.Path == path) {
		return
	}
	s.SetPath(path)
}

func (s *Slot) load(path string, gen uint64) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.fail(gen, fmt.Errorf("read %s: %w", path, err))
		return
	}
	dg := digest.Sum(data)
	if ent, ok := s.cache.Get(path); ok &&
		ent.digest == dg && bytes.Equal(ent.data, data) {
		if debug.Load() {
			debug.Logf("loader[%s]: %s unchanged (%s), reusing decode\n",
				s.name, path, dg)
		}
		s.commit(gen, &File{Path: path, Data: data, Digest: dg, Root: ent.root})
		return
	}
	payload, err := Expand(data)
	if err != nil {
		s.fail(gen, fmt.Errorf("expand %s: %w", path, err))
		return
	}
	root, err := decode.Decode(payload)
	if err != nil {
		s.fail(gen, fmt.Errorf("decode %s: %w", path, err))
		return
	}
	if err := root.Check(); err != nil {
		// decoder defect, surfaced instead of crashing
		s.fail(gen, fmt.Errorf("decode %s: %w", path, err))
		return
	}
	s.cache.Add(path, &cacheEntry{digest: dg, data: data, root: root})
	s.commit(gen, &File{Path: path, Data: data, Digest: dg, Root: root})
}

func (s *Slot) commit(gen uint64, f *File) {
	if gen != s.gen {
		if debug.Load() {
			debug.Logf("loader[%s]: dropping superseded load of %s\n", s.name, f.Path)
		}
		return
	}
	s.state = Loaded
	s.file = f
	s.err = nil
}

func (s *Slot) fail(gen uint64, err error) {
	if gen != s.gen {
		if debug.Load() {
			debug.Logf("loader[%s]: dropping superseded failure: %v\n", s.name, err)
		}
		return
	}
	s.state = Failed
	s.file = nil
	s.err = err
}
