// Package handle is the top-level object from spec.md §3: it assembles
// the filename globber, segment table, lazy file-handle pool, and
// information file into one lifecycle-managed object with read/write/
// seek orchestration.
//
// Assembled the way the teacher's internal/engine.Engine assembles
// index+storage+compaction from a Config struct, with internal/storage's
// open/rotate logic generalized into the write path and
// internal/engine's atomic.Bool close-idempotence pattern carried
// through as the state machine below.
package handle

import (
	"context"
	"sync/atomic"

	"github.com/smraw-go/smraw/pkg/codepage"
	"github.com/smraw-go/smraw/pkg/infofile"
	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/options"
	"github.com/smraw-go/smraw/pkg/seglist"
	"github.com/smraw-go/smraw/pkg/segtable"
	"github.com/smraw-go/smraw/pkg/slogger"
	"github.com/smraw-go/smraw/pkg/smerr"
	"go.uber.org/zap"
)

// Mode selects how Open accesses the image's segments.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
	ModeReadWrite
)

// State is one node of the lifecycle state machine spec.md §4.4 diagrams.
type State int32

const (
	StateNew State = iota
	StateConfigured
	StateOpen
	StateOpenError
	StateAborted
	StateClosed
)

// Handle is the segment-aware virtual-offset I/O engine's top-level
// object: mode, segment table, information file, logical cursor, media
// size, and the abort flag, per spec.md §3.
type Handle struct {
	state State32

	mode   Mode
	opener ioadapter.FileIO
	log    *zap.SugaredLogger

	basename string
	table    *segtable.Table
	pool     *segtable.Pool

	info     *infofile.File
	infoPath string

	cursor         uint64
	mediaSize      uint64
	maxSegmentSize uint64
	codepage       codepage.ID
	infoSuffix     string
	poolCapacity   int

	abort      atomic.Bool
	firstWrite atomic.Bool
}

// State32 is a small atomic wrapper around State, named separately so
// Handle's zero value is immediately usable as StateNew without extra
// initialization.
type State32 struct {
	v atomic.Int32
}

func (s *State32) Load() State    { return State(s.v.Load()) }
func (s *State32) Store(st State) { s.v.Store(int32(st)) }
func (s *State32) CAS(old, next State) bool {
	return s.v.CompareAndSwap(int32(old), int32(next))
}

// New creates a Handle in StateConfigured, with opts applied immediately
// (spec.md §3's "created empty, configured" collapsed into construction,
// since this implementation takes configuration as functional options
// rather than a separate mutation phase).
func New(opts ...options.OptionFunc) *Handle {
	cfg := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Handle{
		opener:         ioadapter.OSFileIO{},
		log:            slogger.New("smraw.handle"),
		maxSegmentSize: cfg.MaximumSegmentSize,
		codepage:       cfg.Codepage,
		infoSuffix:     cfg.InfoFileSuffix,
		poolCapacity:   cfg.PoolCapacity,
	}
	h.state.Store(StateConfigured)
	return h
}

// WithFileIO overrides the file-like I/O capability, used by tests to
// substitute pkg/ioadapter/iotest's in-memory fake for the real
// filesystem.
func (h *Handle) WithFileIO(fio ioadapter.FileIO) *Handle {
	h.opener = fio
	return h
}

func (h *Handle) requireState(want State) error {
	if h.state.Load() != want {
		return smerr.New(smerr.InvalidState, "operation not valid in current state").
			WithDetail("state", h.state.Load())
	}
	return nil
}

// SetCodepage selects the code page used to decode non-UTF filename
// input. Only legal before Open.
func (h *Handle) SetCodepage(id codepage.ID) error {
	if err := h.requireState(StateConfigured); err != nil {
		return err
	}
	if _, err := codepage.Lookup(id); err != nil {
		return err
	}
	h.codepage = id
	return nil
}

// SetMaximumSegmentSize sets the per-segment cap. 0 means unbounded.
// Only legal before the first write, per spec.md's Open Questions
// resolution (unlike the original library, a call after the first write
// is a hard error, never a silent no-op).
func (h *Handle) SetMaximumSegmentSize(size uint64) error {
	if h.firstWrite.Load() {
		return smerr.New(smerr.InvalidState, "cannot change segment size after first write")
	}
	h.maxSegmentSize = size
	return nil
}

// SetMediaSize declares the expected total logical size ahead of
// writing. Only legal before the first write.
func (h *Handle) SetMediaSize(size uint64) error {
	if h.firstWrite.Load() {
		return smerr.New(smerr.InvalidState, "cannot change media size after first write")
	}
	h.mediaSize = size
	return nil
}

// SetInformationFilePath overrides where Close flushes the information
// file. Defaults to filenames[0] as passed to Open (the first segment in
// read modes, the basename in write mode) plus the configured suffix.
func (h *Handle) SetInformationFilePath(path string) error {
	if err := requireNotOpenYet(h.state.Load()); err != nil {
		return err
	}
	h.infoPath = path
	return nil
}

func requireNotOpenYet(s State) error {
	if s != StateConfigured {
		return smerr.New(smerr.InvalidState, "operation only valid before open")
	}
	return nil
}

// Information returns the in-memory information file, creating an empty
// one on first call. Entries may be mutated only between Open and Close
// per spec.md §3.
func (h *Handle) Information() *infofile.File {
	if h.info == nil {
		h.info = infofile.New()
	}
	return h.info
}

// Open opens the handle against filenames under mode. In read and
// read-write modes filenames[0] is the first segment and the remainder
// of the set is discovered via the globber; in write mode filenames[0]
// is the basename new segments are synthesised from.
func (h *Handle) Open(ctx context.Context, filenames []string, mode Mode) error {
	if err := h.requireState(StateConfigured); err != nil {
		return err
	}
	if len(filenames) == 0 {
		h.state.Store(StateOpenError)
		return smerr.New(smerr.InvalidArgument, "at least one filename is required")
	}

	h.mode = mode
	ioMode := ioModeFor(mode)
	h.pool = segtable.NewPool(h.poolCapacity, h.opener, ioMode)

	var err error
	switch mode {
	case ModeRead, ModeReadWrite:
		err = h.openExisting(filenames[0])
	case ModeWrite:
		err = h.openForWrite(filenames[0])
	default:
		err = smerr.New(smerr.InvalidArgument, "unrecognised mode")
	}

	if err != nil {
		h.state.Store(StateOpenError)
		return err
	}

	if h.infoPath == "" {
		h.infoPath = h.basename + h.infoSuffix
	}

	h.state.Store(StateOpen)
	h.log.Infow("handle opened", "mode", mode, "segments", h.table.Len(), "totalSize", h.table.TotalSize())
	return nil
}

// OpenEncoded is the Open variant for callers whose filenames arrive as
// raw, possibly non-UTF-8 bytes (e.g. a binding surfacing a C caller's
// native filesystem encoding). Each name is transcoded through the
// handle's configured code page before delegating to Open.
func (h *Handle) OpenEncoded(ctx context.Context, rawFilenames [][]byte, mode Mode) error {
	decoded := make([]string, len(rawFilenames))
	for i, raw := range rawFilenames {
		name, err := codepage.Decode(h.codepage, raw)
		if err != nil {
			h.state.Store(StateOpenError)
			return err
		}
		decoded[i] = name
	}
	return h.Open(ctx, decoded, mode)
}

func ioModeFor(mode Mode) ioadapter.Mode {
	switch mode {
	case ModeWrite:
		return ioadapter.ModeWrite
	case ModeReadWrite:
		return ioadapter.ModeReadWrite
	default:
		return ioadapter.ModeRead
	}
}

func (h *Handle) openExisting(first string) error {
	names, err := seglist.Glob(first, func(name string) (bool, error) {
		return h.opener.Exists(name)
	})
	if err != nil {
		return err
	}

	tbl, err := segtable.BuildFromNames(names, h.opener, h.maxSegmentSize)
	if err != nil {
		return err
	}

	h.basename = first
	h.table = tbl
	for _, d := range tbl.Segments() {
		h.pool.Register(d.Index, d.Name)
	}
	h.mediaSize = tbl.TotalSize()
	return nil
}

func (h *Handle) openForWrite(basename string) error {
	h.basename = basename
	h.table = segtable.New()

	name := seglist.GenerateWrite(basename, h.initialSegmentCountEstimate(), 0)
	h.pool.Register(0, name)

	if err := h.checkNotExistingNonEmpty(name); err != nil {
		return err
	}

	f, err := h.opener.Open(name, ioadapter.ModeTruncate)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	h.table.AppendSegment(name, 0)
	return nil
}

// initialSegmentCountEstimate picks the segment-count argument to
// seglist.GenerateWrite for segment 0. When no cap is configured the
// image is always single-segment, so the bare basename is used. When a
// cap is set, spec.md §8 Scenarios C/D require the first segment to
// already carry the ".001" numbering scheme, since a second segment may
// follow; the declared media size, if known, refines the estimate so the
// zero-padded width is right from the start instead of only growing on
// rollover.
func (h *Handle) initialSegmentCountEstimate() int {
	if h.maxSegmentSize == 0 {
		return 1
	}
	count := 2
	if h.mediaSize > 0 {
		estimate := int((h.mediaSize + h.maxSegmentSize - 1) / h.maxSegmentSize)
		if estimate > count {
			count = estimate
		}
	}
	return count
}

// checkNotExistingNonEmpty returns smerr.AlreadyExists when name already
// exists and is non-empty, so a write-open never silently destroys a
// pre-existing image.
func (h *Handle) checkNotExistingNonEmpty(name string) error {
	exists, err := h.opener.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	f, err := h.opener.Open(name, ioadapter.ModeRead)
	if err != nil {
		return err
	}
	size, sizeErr := f.Size()
	closeErr := f.Close()
	if sizeErr != nil {
		return sizeErr
	}
	if closeErr != nil {
		return closeErr
	}
	if size > 0 {
		return smerr.New(smerr.AlreadyExists, "write-open would overwrite existing non-empty segment").
			WithDetail("path", name)
	}
	return nil
}

// Offset returns the current logical cursor position.
func (h *Handle) Offset() uint64 {
	return h.cursor
}

// MediaSize returns the image's current total logical size.
func (h *Handle) MediaSize() uint64 {
	if h.table == nil {
		return h.mediaSize
	}
	return h.table.TotalSize()
}

// SignalAbort sets the abort flag. It is the sole cancellation
// mechanism (spec.md §5) and, once set, stays set until Close.
func (h *Handle) SignalAbort() {
	h.abort.Store(true)
}

func (h *Handle) checkAbort() error {
	if h.abort.Load() {
		return smerr.New(smerr.Cancelled, "operation aborted")
	}
	return nil
}

// Close idempotently tears down the handle: closes every pooled
// segment file handle and, on a write-capable mode, flushes the
// information file.
func (h *Handle) Close() error {
	for {
		cur := h.state.Load()
		if cur == StateClosed {
			return nil
		}
		if cur != StateOpen && cur != StateAborted && cur != StateOpenError {
			return smerr.New(smerr.InvalidState, "cannot close handle in current state")
		}
		if h.state.CAS(cur, StateClosed) {
			break
		}
	}

	var firstErr error
	if h.pool != nil {
		if err := h.pool.CloseAll(); err != nil {
			firstErr = err
		}
	}

	if (h.mode == ModeWrite || h.mode == ModeReadWrite) && h.info != nil {
		if err := h.flushInformationFile(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (h *Handle) flushInformationFile() error {
	renamer, canRename := h.opener.(ioadapter.Renamer)
	target := h.infoPath
	if canRename {
		target += ".tmp"
	}

	f, err := h.opener.Open(target, ioadapter.ModeTruncate)
	if err != nil {
		return err
	}
	if err := h.info.Emit(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if canRename {
		return renamer.Rename(target, h.infoPath)
	}
	return nil
}
