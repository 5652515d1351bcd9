// Package segtable is the segment table and cumulative-offset mapper,
// generalizing the teacher's internal/storage from "one active append-only
// segment" into the ordered table spec.md §4.3 describes: a list of
// segments each covering a contiguous logical [start, end) range, located
// by binary search in O(log N).
package segtable

import (
	"sort"

	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/smerr"
)

// Descriptor describes one segment: its position in the table, its
// on-disk name, its size, and the logical byte range it covers. Handles
// never hold a segment's file open directly; lookups always go through
// a Pool (spec.md §3's ownership rule).
type Descriptor struct {
	Index int
	Name  string
	Size  uint64
	Start uint64
	End   uint64
}

// Table is the ordered set of segment descriptors for one open image.
type Table struct {
	segments []Descriptor
}

// BuildFromNames opens every name read-only through opener, in order,
// measuring each one's size to construct the segment table. It enforces
// spec.md §4.4's corrupt condition: only the last segment may be smaller
// than the segmentCap; an earlier segment under segmentCap followed by another segment
// means the image's size accounting cannot be trusted.
func BuildFromNames(names []string, opener ioadapter.FileIO, segmentCap uint64) (*Table, error) {
	t := &Table{}
	var offset uint64

	for i, name := range names {
		f, err := opener.Open(name, ioadapter.ModeRead)
		if err != nil {
			return nil, err
		}
		size, err := f.Size()
		closeErr := f.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}

		if segmentCap > 0 && size < segmentCap && i != len(names)-1 {
			return nil, smerr.New(smerr.Corrupt, "segment smaller than segmentCap is not the last segment").
				WithDetail("name", name).
				WithDetail("size", size).
				WithDetail("segmentCap", segmentCap)
		}
		if segmentCap > 0 && size > segmentCap {
			return nil, smerr.New(smerr.Corrupt, "segment exceeds declared maximum size").
				WithDetail("name", name).
				WithDetail("size", size).
				WithDetail("segmentCap", segmentCap)
		}

		d := Descriptor{Index: i, Name: name, Size: size, Start: offset, End: offset + size}
		t.segments = append(t.segments, d)
		offset = d.End
	}

	return t, nil
}

// New returns an empty table, used by the write path which appends
// segments as they're created rather than discovering them up front.
func New() *Table {
	return &Table{}
}

// AppendSegment extends the table with a new segment of the given size,
// maintaining the contiguity invariant end(i) == start(i+1).
func (t *Table) AppendSegment(name string, size uint64) Descriptor {
	var start uint64
	if n := len(t.segments); n > 0 {
		start = t.segments[n-1].End
	}
	d := Descriptor{Index: len(t.segments), Name: name, Size: size, Start: start, End: start + size}
	t.segments = append(t.segments, d)
	return d
}

// GrowLast extends the currently-last segment's recorded size and end
// offset by delta bytes, used after a successful append write so Locate
// immediately reflects newly written bytes without a re-scan.
func (t *Table) GrowLast(delta uint64) {
	if len(t.segments) == 0 {
		return
	}
	last := &t.segments[len(t.segments)-1]
	last.Size += delta
	last.End += delta
}

// Segments returns the table's descriptors in order. Callers must treat
// the returned slice as read-only.
func (t *Table) Segments() []Descriptor {
	return t.segments
}

// Len returns the number of segments currently in the table.
func (t *Table) Len() int {
	return len(t.segments)
}

// TotalSize returns the sum of every segment's size, i.e. the logical
// size of the full image.
func (t *Table) TotalSize() uint64 {
	if len(t.segments) == 0 {
		return 0
	}
	return t.segments[len(t.segments)-1].End
}

// Last returns the table's final descriptor. It panics if the table is
// empty; callers are expected to have checked Len() first.
func (t *Table) Last() Descriptor {
	return t.segments[len(t.segments)-1]
}

// Locate maps a logical offset to a segment index and the intra-segment
// offset within it, via binary search over the cumulative segment
// boundaries (spec.md Testable Property 1: O(log N) locate).
//
// An offset at or past the image's total size is reported as NotFound
// tagged "end of medium"; callers translate this into a short/zero-byte
// read rather than propagating it as a hard failure (spec.md §4.4).
func (t *Table) Locate(offset uint64) (segmentIndex int, intraOffset uint64, err error) {
	if len(t.segments) == 0 || offset >= t.TotalSize() {
		return 0, 0, smerr.New(smerr.NotFound, "end of medium").WithDetail("offset", offset)
	}

	idx := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].End > offset
	})
	if idx == len(t.segments) {
		return 0, 0, smerr.New(smerr.NotFound, "end of medium").WithDetail("offset", offset)
	}

	return idx, offset - t.segments[idx].Start, nil
}
