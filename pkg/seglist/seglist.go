// Package seglist is the filename globber: given a first segment name and
// an access mode, it produces the ordered list of segment filenames per
// spec.md §4.2.
//
// Grounded on the teacher's pkg/seginfo (GenerateName/ParseSegmentID/
// GetLastSegmentName: prefix + zero-padded sequence number), generalized
// from that single fixed scheme to the seven schemes spec.md's table
// requires, and on original_source/libsmraw/libsmraw_filename.h's
// libsmraw_filename_create(basename, number_of_segments, segment_index)
// signature for the write-mode pure-function contract.
package seglist

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/smraw-go/smraw/pkg/smerr"
)

// Scheme identifies which naming convention a first segment name follows.
type Scheme int

const (
	// SchemeSingle means the image is a single file with no successors.
	SchemeSingle Scheme = iota
	// SchemeRawDecimal is <base>.raw / <base>.raw.NNN, NNN zero-padded.
	SchemeRawDecimal
	// SchemeDecimal is <base>.NNN, NNN zero-padded.
	SchemeDecimal
	// SchemeGrowingDecimal is <base>.N.raw, N unpadded and growing.
	SchemeGrowingDecimal
	// SchemeAlphaLower is <base>aa, <base>ab, ... (base-26 lowercase).
	SchemeAlphaLower
	// SchemeAlphaUpper is the uppercase variant of SchemeAlphaLower.
	SchemeAlphaUpper
)

var (
	reRawDecimalNumbered = regexp.MustCompile(`^(.+)\.raw\.(\d+)$`)
	reGrowingDecimal     = regexp.MustCompile(`^(.+)\.(\d+)\.raw$`)
	reRawDecimalBare     = regexp.MustCompile(`^(.+)\.raw$`)
	reDecimal            = regexp.MustCompile(`^(.+)\.(\d+)$`)
	reAlphaLower         = regexp.MustCompile(`^(.+?)([a-z]{2,})$`)
	reAlphaUpper         = regexp.MustCompile(`^(.+?)([A-Z]{2,})$`)
)

// detection is the outcome of inspecting a first segment name.
type detection struct {
	scheme    Scheme
	prefix    string // portion of the name preceding the varying suffix
	suffix    string // literal trailing text after the varying part, e.g. ".raw"
	hasNumber bool   // false only for the bare <base>.raw case
	number    int
	width     int
	alpha     string
}

// Exists is the probe callback Glob uses to test whether a candidate
// segment name is present. It mirrors the file-like capability's
// exists() operation (spec.md §4.1): no error for "not found".
type Exists func(name string) (bool, error)

// Glob enumerates the full ordered set of segment filenames given the
// first segment name, per spec.md §4.2's read-mode contract.
func Glob(first string, exists Exists) ([]string, error) {
	present, err := exists(first)
	if err != nil {
		return nil, errors.Wrap(err, "seglist: checking first segment")
	}
	if !present {
		return nil, smerr.New(smerr.NotFound, "first segment does not exist").
			WithDetail("path", first)
	}

	d, err := detect(first)
	if err != nil {
		return nil, err
	}

	names := []string{first}
	if d.scheme == SchemeSingle {
		return names, nil
	}

	switch d.scheme {
	case SchemeRawDecimal, SchemeDecimal:
		n := d.number
		width := d.width
		for {
			n++
			if len(strconv.Itoa(n)) > width {
				width = len(strconv.Itoa(n))
			}
			candidate := d.prefix + d.suffix + zeroPad(n, width)
			ok, err := exists(candidate)
			if err != nil {
				return nil, errors.Wrapf(err, "seglist: probing %s", candidate)
			}
			if !ok {
				break
			}
			names = append(names, candidate)
		}
	case SchemeGrowingDecimal:
		n := d.number
		for {
			n++
			candidate := d.prefix + "." + strconv.Itoa(n) + d.suffix
			ok, err := exists(candidate)
			if err != nil {
				return nil, errors.Wrapf(err, "seglist: probing %s", candidate)
			}
			if !ok {
				break
			}
			names = append(names, candidate)
		}
	case SchemeAlphaLower, SchemeAlphaUpper:
		cur := d.alpha
		for {
			cur = nextAlpha(cur)
			candidate := d.prefix + cur
			ok, err := exists(candidate)
			if err != nil {
				return nil, errors.Wrapf(err, "seglist: probing %s", candidate)
			}
			if !ok {
				break
			}
			names = append(names, candidate)
		}
	}

	return names, nil
}

// detect inspects name and classifies it into one of the schemes in
// spec.md §4.2's table, checking the most specific patterns first so
// that the raw.NNN vs. NNN tie-break resolves deterministically in favour
// of raw.NNN, per the specification's Open Questions resolution.
func detect(name string) (detection, error) {
	if m := reRawDecimalNumbered.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return detection{}, smerr.Wrap(smerr.InvalidArgument, err, "malformed segment number")
		}
		if ambiguousNestedRaw(m[1]) {
			return detection{}, smerr.New(smerr.Unsupported, "ambiguous segment naming scheme").
				WithDetail("path", name)
		}
		return detection{
			scheme: SchemeRawDecimal, prefix: m[1], suffix: ".raw.",
			hasNumber: true, number: n, width: len(m[2]),
		}, nil
	}

	if m := reGrowingDecimal.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return detection{}, smerr.Wrap(smerr.InvalidArgument, err, "malformed segment number")
		}
		return detection{
			scheme: SchemeGrowingDecimal, prefix: m[1], suffix: ".raw",
			hasNumber: true, number: n,
		}, nil
	}

	if m := reRawDecimalBare.FindStringSubmatch(name); m != nil {
		return detection{
			scheme: SchemeRawDecimal, prefix: m[1], suffix: ".raw.",
			hasNumber: false, number: 0, width: 3,
		}, nil
	}

	if m := reDecimal.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return detection{}, smerr.Wrap(smerr.InvalidArgument, err, "malformed segment number")
		}
		return detection{
			scheme: SchemeDecimal, prefix: m[1], suffix: ".",
			hasNumber: true, number: n, width: len(m[2]),
		}, nil
	}

	if m := reAlphaLower.FindStringSubmatch(name); m != nil {
		return detection{scheme: SchemeAlphaLower, prefix: m[1], alpha: m[2]}, nil
	}

	if m := reAlphaUpper.FindStringSubmatch(name); m != nil {
		return detection{scheme: SchemeAlphaUpper, prefix: m[1], alpha: m[2]}, nil
	}

	return detection{scheme: SchemeSingle, prefix: name}, nil
}

// ambiguousNestedRaw reports the one pathological case this globber
// refuses to silently resolve: a prefix that is itself still suffixed
// with ".raw", e.g. "base.raw.raw.001", where a second valid raw.NNN
// reading of the outer name would also be plausible.
func ambiguousNestedRaw(prefix string) bool {
	return reRawDecimalBare.MatchString(prefix) || reRawDecimalNumbered.MatchString(prefix)
}

func zeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// nextAlpha returns the base-26 successor of s, incrementing like
// spreadsheet column names: "z" -> "aa", "az" -> "ba", "zz" -> "aaa".
// Case is preserved.
func nextAlpha(s string) string {
	b := []byte(s)
	lower := len(b) > 0 && b[0] >= 'a'
	top := byte('z')
	if !lower {
		top = 'Z'
	}
	base := byte('a')
	if !lower {
		base = 'A'
	}

	i := len(b) - 1
	for i >= 0 {
		if b[i] != top {
			b[i]++
			return string(b)
		}
		b[i] = base
		i--
	}
	return string(base) + string(b)
}
