// Package iotest provides an in-memory ioadapter.FileIO fake so segtable
// and handle tests can exercise multi-segment reads/writes without
// touching the real filesystem.
package iotest

import (
	"io"
	"sync"

	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/smerr"
)

// FS is an in-memory filesystem keyed by name.
type FS struct {
	mu    sync.Mutex
	files map[string][]byte
}

// New returns an empty in-memory filesystem.
func New() *FS {
	return &FS{files: make(map[string][]byte)}
}

// Seed pre-populates name with contents, as if it had been written
// out-of-band before the test began.
func (fs *FS) Seed(name string, contents []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	buf := make([]byte, len(contents))
	copy(buf, contents)
	fs.files[name] = buf
}

// Contents returns a copy of name's current bytes.
func (fs *FS) Contents(name string) []byte {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	buf := fs.files[name]
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

var _ ioadapter.FileIO = (*FS)(nil)

// Open implements ioadapter.FileIO.
func (fs *FS) Open(name string, mode ioadapter.Mode) (ioadapter.File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	switch mode {
	case ioadapter.ModeRead:
		buf, ok := fs.files[name]
		if !ok {
			return nil, smerr.New(smerr.NotFound, "no such file").WithDetail("path", name)
		}
		return &memFile{fs: fs, name: name, data: buf}, nil
	case ioadapter.ModeTruncate:
		fs.files[name] = nil
		return &memFile{fs: fs, name: name}, nil
	default: // ModeWrite, ModeReadWrite
		buf := fs.files[name]
		return &memFile{fs: fs, name: name, data: buf, pos: int64(len(buf))}, nil
	}
}

// Exists implements ioadapter.FileIO.
func (fs *FS) Exists(name string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.files[name]
	return ok, nil
}

// memFile is a per-open view over FS's backing slice for one name. It
// keeps its own cursor; writes are flushed back to FS.files immediately.
type memFile struct {
	fs   *FS
	name string
	data []byte
	pos  int64
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	m.fs.mu.Lock()
	defer m.fs.mu.Unlock()

	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	n := copy(m.data[m.pos:end], p)
	m.pos += int64(n)
	m.fs.files[m.name] = m.data
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.data))
	}
	next := base + offset
	if next < 0 {
		return m.pos, smerr.New(smerr.InvalidArgument, "negative seek result")
	}
	m.pos = next
	return m.pos, nil
}

func (m *memFile) Size() (uint64, error) {
	m.fs.mu.Lock()
	defer m.fs.mu.Unlock()
	return uint64(len(m.fs.files[m.name])), nil
}

func (m *memFile) Close() error {
	return nil
}
