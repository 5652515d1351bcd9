// Package options provides the functional-options configuration surface
// for a Handle: per-segment size cap, code page, information-file suffix,
// and the lazy file-handle pool's capacity. It follows the same
// OptionFunc / WithDefaultOptions / With* pattern as the teacher's own
// configuration package, generalized from a Bitcask store's
// directory/compaction knobs to the spec's handle-level configuration.
package options

import "github.com/smraw-go/smraw/pkg/codepage"

// Options holds every tunable a Handle accepts before Open.
type Options struct {
	// MaximumSegmentSize is the per-segment cap in bytes. Zero means
	// unbounded: all data lands in a single segment. Non-zero values must
	// fall within [MinSegmentSize, MaxSegmentSize].
	MaximumSegmentSize uint64

	// Codepage selects the code page used to decode non-UTF filename
	// input. Defaults to codepage.ASCII.
	Codepage codepage.ID

	// InfoFileSuffix is appended to the name the handle is opened with
	// to derive the sidecar information-file name.
	InfoFileSuffix string

	// PoolCapacity bounds the number of simultaneously open segment file
	// handles the lazy LRU pool retains.
	PoolCapacity int
}

// OptionFunc mutates an Options value.
type OptionFunc func(*Options)

// WithDefaultOptions applies the baseline configuration.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		defaults := NewDefaultOptions()
		o.MaximumSegmentSize = defaults.MaximumSegmentSize
		o.InfoFileSuffix = defaults.InfoFileSuffix
		o.PoolCapacity = defaults.PoolCapacity
		o.Codepage = codepage.ASCII
	}
}

// WithMaximumSegmentSize sets the per-segment cap. Zero always means
// unbounded; any other value must satisfy MinSegmentSize <= size <=
// MaxSegmentSize or the option is silently ignored, matching the
// teacher's guard-rail pattern for WithSegmentSize.
func WithMaximumSegmentSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size == 0 {
			o.MaximumSegmentSize = 0
			return
		}
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.MaximumSegmentSize = size
		}
	}
}

// WithCodepage sets the code page used to decode non-UTF filename input.
func WithCodepage(id codepage.ID) OptionFunc {
	return func(o *Options) {
		o.Codepage = id
	}
}

// WithInfoFileSuffix overrides the sidecar information-file suffix.
func WithInfoFileSuffix(suffix string) OptionFunc {
	return func(o *Options) {
		if suffix != "" {
			o.InfoFileSuffix = suffix
		}
	}
}

// WithPoolCapacity overrides the lazy file-handle pool's capacity.
func WithPoolCapacity(capacity int) OptionFunc {
	return func(o *Options) {
		if capacity > 0 {
			o.PoolCapacity = capacity
		}
	}
}
