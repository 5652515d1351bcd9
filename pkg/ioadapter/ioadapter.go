// Package ioadapter concretizes the "file-like I/O capability" spec.md
// §4.1 describes as a consumed interface: open/read/write/seek/size/
// close/exists on a named resource. segtable and handle depend on this
// interface, never on *os.File directly, so the core can be exercised
// against an in-memory fake (see the iotest subpackage) instead of real
// files.
//
// Grounded on the teacher's direct os.OpenFile/file.Seek usage in
// internal/storage/storage.go and the Exists/CreateFile helpers in
// pkg/filesys/filesys.go, pulled behind an interface boundary.
package ioadapter

import "io"

// Mode selects how Open should access the named resource.
type Mode int

const (
	// ModeRead opens an existing resource read-only.
	ModeRead Mode = iota
	// ModeWrite opens (creating if necessary) a resource for writing,
	// appending to any existing content.
	ModeWrite
	// ModeReadWrite opens (creating if necessary) a resource for both
	// reading and writing.
	ModeReadWrite
	// ModeTruncate opens a resource for writing, discarding any existing
	// content.
	ModeTruncate
)

// File is a single opened resource. Read may return a short read; Write
// must not return a short write (spec.md §4.1: "short writes treated as
// errors").
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Size returns the resource's current size in bytes.
	Size() (uint64, error)
}

// FileIO is the capability the core is parameterised over.
type FileIO interface {
	// Open opens name under the given mode and returns a File handle.
	Open(name string, mode Mode) (File, error)

	// Exists reports whether name exists, returning (false, nil) rather
	// than an error when it simply does not — spec.md §4.1: "no error on
	// 'not found'".
	Exists(name string) (bool, error)
}
