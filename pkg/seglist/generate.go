package seglist

import "fmt"

// GenerateWrite computes the name of segment segmentIndex (zero-based) out
// of segmentCount total segments for a new image being written under
// basename, per spec.md §4.2's write-mode contract and
// original_source/libsmraw/libsmraw_filename.h's
// libsmraw_filename_create(basename, number_of_segments, segment_index).
//
// A single-segment image keeps basename unchanged. A multi-segment image
// uses the zero-padded decimal scheme (<base>.NNN), with the minimum width
// needed to hold segmentCount without truncation, so renaming never
// collides as a write run's segment count grows mid-acquisition.
func GenerateWrite(basename string, segmentCount, segmentIndex int) string {
	if segmentCount <= 1 {
		return basename
	}

	width := len(fmt.Sprintf("%d", segmentCount))
	if width < 3 {
		width = 3
	}
	return fmt.Sprintf("%s.%0*d", basename, width, segmentIndex+1)
}
