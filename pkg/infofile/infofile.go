// Package infofile parses and emits the sidecar information-file format
// spec.md §4.5 describes: an insertion-ordered, section/key/value text
// format with comments and continuation lines, distilled from
// original_source/smiotools/info_handle.c's libewf-style case-metadata
// sidecar.
//
// Grounded on the teacher's pkg/errors fluent-builder convention
// (ported here through pkg/smerr) for reporting malformed input with a
// sub-kind detail, rather than a bare parse error.
package infofile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/smraw-go/smraw/pkg/smerr"
)

// Entry is one key/value pair within a Section, in the order it was
// parsed or set.
type Entry struct {
	Key   string
	Value string
}

// Section is a named, insertion-ordered group of Entry values, with an
// index for O(1) lookup alongside the ordered slice (spec.md §3's
// "insertion-ordered with an adjacent hash index for large tables").
type Section struct {
	Name    string
	entries []Entry
	index   map[string]int
}

// File is the full parsed information file: an ordered list of Sections.
type File struct {
	sections []*Section
	index    map[string]int
	lenient  bool
}

// New returns an empty File, used to build one up via Set before Emit.
func New() *File {
	return &File{index: make(map[string]int)}
}

// ParseOption configures Parse's behaviour.
type ParseOption func(*File)

// WithLenientDuplicates makes Parse keep the last value for a duplicate
// key instead of returning a Malformed error, per spec.md §4.5.
func WithLenientDuplicates() ParseOption {
	return func(f *File) { f.lenient = true }
}

// Parse reads an information file from r, recognising `#`-prefixed
// comments, `[section]` headers, `key: value` pairs, and
// whitespace-prefixed continuation lines that extend the previous
// entry's value.
func Parse(r io.Reader, opts ...ParseOption) (*File, error) {
	f := New()
	for _, opt := range opts {
		opt(f)
	}

	scanner := bufio.NewScanner(r)
	var current *Section
	var lastEntryKey string
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		if strings.TrimSpace(raw) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(raw, " \t"), "#") {
			continue
		}

		if isContinuation(raw) {
			if current == nil || lastEntryKey == "" {
				return nil, malformed(smerr.ContinuationWithoutKey, lineNo, raw)
			}
			current.appendContinuation(lastEntryKey, strings.TrimSpace(raw))
			continue
		}

		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "[") {
			name, err := parseSectionHeader(trimmed, lineNo)
			if err != nil {
				return nil, err
			}
			current = f.section(name)
			lastEntryKey = ""
			continue
		}

		if current == nil {
			return nil, malformed(smerr.MalformedKey, lineNo, raw)
		}

		key, value, err := parseKeyValue(trimmed, lineNo)
		if err != nil {
			return nil, err
		}

		if _, exists := current.index[key]; exists {
			if !f.lenient {
				return nil, smerr.New(smerr.Malformed, "duplicate key").
					WithSubKind(smerr.DuplicateKey).
					WithDetail("line", lineNo).
					WithDetail("section", current.Name).
					WithDetail("key", key)
			}
			current.set(key, value)
			lastEntryKey = key
			continue
		}

		current.set(key, value)
		lastEntryKey = key
	}

	if err := scanner.Err(); err != nil {
		return nil, smerr.Wrap(smerr.IoError, err, "reading information file")
	}

	return f, nil
}

func isContinuation(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func parseSectionHeader(trimmed string, lineNo int) (string, error) {
	if !strings.HasSuffix(trimmed, "]") {
		return "", malformed(smerr.MalformedSection, lineNo, trimmed)
	}
	name := trimmed[1 : len(trimmed)-1]
	if !isValidName(name) {
		return "", malformed(smerr.MalformedSection, lineNo, trimmed)
	}
	return name, nil
}

func parseKeyValue(trimmed string, lineNo int) (key, value string, err error) {
	idx := strings.Index(trimmed, ":")
	if idx < 0 {
		return "", "", malformed(smerr.MalformedKey, lineNo, trimmed)
	}
	key = strings.TrimSpace(trimmed[:idx])
	value = strings.TrimSpace(trimmed[idx+1:])
	if !isValidName(key) {
		return "", "", malformed(smerr.MalformedKey, lineNo, trimmed)
	}
	return key, value, nil
}

// isValidName enforces spec.md's lexical rule [A-Za-z_][A-Za-z0-9_]*.
func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isAlpha {
			return false
		}
		if i > 0 && !isAlpha && !isDigit {
			return false
		}
	}
	return true
}

func malformed(subKind string, lineNo int, raw string) error {
	return smerr.New(smerr.Malformed, "malformed information file line").
		WithSubKind(subKind).
		WithDetail("line", lineNo).
		WithDetail("text", raw)
}

// section returns the named Section, creating it in insertion order on
// first reference.
func (f *File) section(name string) *Section {
	if i, ok := f.index[name]; ok {
		return f.sections[i]
	}
	s := &Section{Name: name, index: make(map[string]int)}
	f.index[name] = len(f.sections)
	f.sections = append(f.sections, s)
	return s
}

func (s *Section) set(key, value string) {
	if i, ok := s.index[key]; ok {
		s.entries[i].Value = value
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

func (s *Section) appendContinuation(key, text string) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.entries[i].Value += "\n" + text
}

// Set stores value under key within section, creating either as needed.
func (f *File) Set(section, key, value string) {
	f.section(section).set(key, value)
}

// Get returns the value stored under key within section.
func (f *File) Get(section, key string) (string, bool) {
	i, ok := f.index[section]
	if !ok {
		return "", false
	}
	s := f.sections[i]
	j, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.entries[j].Value, true
}

// Sections returns the section names in insertion order.
func (f *File) Sections() []string {
	names := make([]string, len(f.sections))
	for i, s := range f.sections {
		names[i] = s.Name
	}
	return names
}

// Keys returns section's key names in insertion order.
func (f *File) Keys(section string) []string {
	i, ok := f.index[section]
	if !ok {
		return nil
	}
	s := f.sections[i]
	keys := make([]string, len(s.entries))
	for j, e := range s.entries {
		keys[j] = e.Key
	}
	return keys
}

// Emit writes f out in the deterministic, round-trip-stable form
// Testable Property 3 requires: sections in insertion order, separated
// by a blank line, multi-line values folded back into
// whitespace-continuation lines. Parse trims each line and skips blank
// ones, so a value with leading or trailing whitespace on a line, or
// with an empty line inside it, does not read back unchanged.
func (f *File) Emit(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, s := range f.sections {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return smerr.Wrap(smerr.IoError, err, "writing information file")
			}
		}
		if _, err := fmt.Fprintf(bw, "[%s]\n", s.Name); err != nil {
			return smerr.Wrap(smerr.IoError, err, "writing information file")
		}
		for _, e := range s.entries {
			lines := strings.Split(e.Value, "\n")
			if _, err := fmt.Fprintf(bw, "%s: %s\n", e.Key, lines[0]); err != nil {
				return smerr.Wrap(smerr.IoError, err, "writing information file")
			}
			for _, cont := range lines[1:] {
				if _, err := fmt.Fprintf(bw, "\t%s\n", cont); err != nil {
					return smerr.Wrap(smerr.IoError, err, "writing information file")
				}
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return smerr.Wrap(smerr.IoError, err, "writing information file")
	}
	return nil
}
