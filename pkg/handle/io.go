package handle

import (
	"io"

	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/seglist"
	"github.com/smraw-go/smraw/pkg/smerr"
)

// Seek updates the logical cursor. Negative results fail with
// InvalidArgument; seeking past the end of the medium is permitted in
// every mode, per spec.md §4.4.
func (h *Handle) Seek(offset int64, whence int) (uint64, error) {
	if err := h.requireState(StateOpen); err != nil {
		return 0, err
	}

	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = int64(h.cursor)
	case io.SeekEnd:
		base = int64(h.table.TotalSize())
	default:
		return 0, smerr.New(smerr.InvalidArgument, "unrecognised whence")
	}

	next := base + offset
	if next < 0 {
		return 0, smerr.New(smerr.InvalidArgument, "negative seek result")
	}

	h.cursor = uint64(next)
	return h.cursor, nil
}

// Read reads up to len(buf) bytes starting at the current cursor,
// crossing segment boundaries transparently, and advances the cursor by
// the number of bytes actually read. A short return indicates
// end-of-medium, not an error; reading at or past the total size
// returns (0, nil).
func (h *Handle) Read(buf []byte) (int, error) {
	if err := h.requireState(StateOpen); err != nil {
		return 0, err
	}
	n, err := h.readAt(buf, h.cursor)
	h.cursor += uint64(n)
	return n, err
}

// ReadAt is the positional variant of Read; it never perturbs the
// cursor.
func (h *Handle) ReadAt(buf []byte, offset uint64) (int, error) {
	if err := h.requireState(StateOpen); err != nil {
		return 0, err
	}
	return h.readAt(buf, offset)
}

func (h *Handle) readAt(buf []byte, offset uint64) (int, error) {
	total := 0
	for total < len(buf) {
		if err := h.checkAbort(); err != nil {
			return total, err
		}

		idx, intra, err := h.table.Locate(offset + uint64(total))
		if err != nil {
			if smerr.Is(err, smerr.NotFound) {
				return total, nil // end of medium: short read, not an error
			}
			return total, err
		}

		seg := h.table.Segments()[idx]
		f, err := h.pool.Get(idx)
		if err != nil {
			return total, err
		}
		if _, err := f.Seek(int64(intra), io.SeekStart); err != nil {
			return total, err
		}

		want := len(buf) - total
		if avail := int(seg.End - seg.Start - intra); want > avail {
			want = avail
		}

		n, rerr := f.Read(buf[total : total+want])
		total += n
		if rerr != nil && rerr != io.EOF {
			return total, rerr
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

// Write writes buf at the current cursor, rolling to a new segment
// whenever the active segment would exceed the configured per-segment
// cap. A partial OS-level write is retried once; if bytes are still
// unwritten after the retry the call fails with ShortWrite, and an OS
// write error is returned as is.
func (h *Handle) Write(buf []byte) (int, error) {
	if err := h.requireState(StateOpen); err != nil {
		return 0, err
	}
	if h.mode != ModeWrite && h.mode != ModeReadWrite {
		return 0, smerr.New(smerr.InvalidState, "handle not open for writing")
	}

	h.firstWrite.Store(true)

	total := 0
	for total < len(buf) {
		if err := h.checkAbort(); err != nil {
			return total, err
		}

		last := h.table.Last()
		remaining := len(buf) - total
		if h.maxSegmentSize > 0 {
			room := int(h.maxSegmentSize - last.Size)
			if room <= 0 {
				if err := h.rollSegment(); err != nil {
					return total, err
				}
				continue
			}
			if remaining > room {
				remaining = room
			}
		}

		f, err := h.pool.Get(last.Index)
		if err != nil {
			return total, err
		}
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			return total, err
		}

		n, err := writeFull(f.Write, buf[total:total+remaining])
		if err != nil {
			return total, err
		}

		h.table.GrowLast(uint64(n))
		total += n
		h.cursor += uint64(n)
	}

	return total, nil
}

// writeFull invokes write once, retrying a single time on a short write
// before surfacing ShortWrite, per spec.md §4.4.
func writeFull(write func([]byte) (int, error), p []byte) (int, error) {
	n, err := write(p)
	if err != nil {
		return n, err
	}
	if n == len(p) {
		return n, nil
	}

	n2, err := write(p[n:])
	if err != nil {
		return n + n2, err
	}
	if n+n2 != len(p) {
		return n + n2, smerr.New(smerr.ShortWrite, "write could not make progress").
			WithDetail("wanted", len(p)).
			WithDetail("wrote", n+n2)
	}
	return n + n2, nil
}

func (h *Handle) rollSegment() error {
	index := h.table.Len()
	count := index + 1
	if est := h.initialSegmentCountEstimate(); est > count {
		count = est
	}
	name := seglist.GenerateWrite(h.basename, count, index)
	h.pool.Register(index, name)

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

// WriteAt is the positional variant of Write for random-access
// overwrites. It is only legal in read-write mode and only within the
// image's existing logical range; extending the medium this way is an
// error.
func (h *Handle) WriteAt(buf []byte, offset uint64) (int, error) {
	if err := h.requireState(StateOpen); err != nil {
		return 0, err
	}
	if h.mode != ModeReadWrite {
		return 0, smerr.New(smerr.InvalidState, "write_at requires read-write mode")
	}
	if offset+uint64(len(buf)) > h.table.TotalSize() {
		return 0, smerr.New(smerr.Unsupported, "write_at cannot extend the logical range").
			WithDetail("offset", offset).
			WithDetail("length", len(buf)).
			WithDetail("totalSize", h.table.TotalSize())
	}

	total := 0
	for total < len(buf) {
		if err := h.checkAbort(); err != nil {
			return total, err
		}

		idx, intra, err := h.table.Locate(offset + uint64(total))
		if err != nil {
			return total, err
		}
		seg := h.table.Segments()[idx]

		f, err := h.pool.Get(idx)
		if err != nil {
			return total, err
		}
		if _, err := f.Seek(int64(intra), io.SeekStart); err != nil {
			return total, err
		}

		want := len(buf) - total
		if avail := int(seg.End - seg.Start - intra); want > avail {
			want = avail
		}

		n, err := writeFull(f.Write, buf[total:total+want])
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
