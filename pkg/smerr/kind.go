package smerr

// Kind categorizes a failure into one of the taxonomy buckets the core
// surfaces at its API boundary. Callers should branch on Kind rather than
// on message text or on the wrapped cause.
type Kind string

const (
	// InvalidArgument covers NULL-like inputs, negative sizes,
	// out-of-range offsets, and unrecognised code-page IDs.
	InvalidArgument Kind = "INVALID_ARGUMENT"

	// InvalidState is returned when an operation is not legal in the
	// handle's current lifecycle state.
	InvalidState Kind = "INVALID_STATE"

	// NotFound covers a missing expected segment or information file.
	NotFound Kind = "NOT_FOUND"

	// AlreadyExists is returned when a write-open would overwrite an
	// existing non-empty segment.
	AlreadyExists Kind = "ALREADY_EXISTS"

	// Corrupt indicates the segment chain's integrity is violated: a
	// missing middle segment, or a size mismatch against the declared cap.
	Corrupt Kind = "CORRUPT"

	// IoError wraps an OS read/write/seek/close failure.
	IoError Kind = "IO_ERROR"

	// ShortWrite is returned when the OS reports fewer bytes written than
	// requested and a single retry makes no further progress.
	ShortWrite Kind = "SHORT_WRITE"

	// Cancelled is returned once the abort flag has been observed.
	Cancelled Kind = "CANCELLED"

	// Malformed covers information-file syntax violations. The specific
	// violation is recorded in the error's Detail map under "subKind".
	Malformed Kind = "MALFORMED"

	// Unsupported covers operations the core refuses outright, such as a
	// write_at that would extend the logical medium.
	Unsupported Kind = "UNSUPPORTED"
)

// Malformed sub-kinds, stored under the "subKind" detail key.
const (
	MalformedSection       = "MalformedSection"
	MalformedKey           = "MalformedKey"
	ContinuationWithoutKey = "ContinuationWithoutKey"
	DuplicateKey           = "DuplicateKey"
)
