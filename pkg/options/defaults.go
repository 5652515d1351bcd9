package options

import "github.com/smraw-go/smraw/pkg/codepage"

const (
	// DefaultInfoFileSuffix is appended to the name the handle is opened
	// with to derive the sidecar information-file name, per spec.md §6.
	DefaultInfoFileSuffix = ".raw.info"

	// MinSegmentSize is the smallest non-zero per-segment cap accepted by
	// WithMaximumSegmentSize. Zero is always legal and means "unbounded",
	// independent of this floor.
	MinSegmentSize uint64 = 512 * 1024

	// MaxSegmentSize is the largest per-segment cap accepted by
	// WithMaximumSegmentSize.
	MaxSegmentSize uint64 = 4 * 1024 * 1024 * 1024 * 1024 // 4TB, comfortably above any real segment

	// DefaultPoolCapacity is the default number of simultaneously open
	// segment file handles the lazy LRU pool retains (spec.md §4.3).
	DefaultPoolCapacity = 16
)

// defaultOptions holds the baseline configuration applied by
// WithDefaultOptions.
var defaultOptions = Options{
	MaximumSegmentSize: 0,
	Codepage:           codepage.ASCII,
	InfoFileSuffix:     DefaultInfoFileSuffix,
	PoolCapacity:       DefaultPoolCapacity,
}

// NewDefaultOptions returns a copy of the baseline configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
