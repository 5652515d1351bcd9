package ioadapter

import (
	"os"

	"github.com/smraw-go/smraw/pkg/smerr"
)

// Renamer is an optional capability a FileIO implementation may provide
// for atomic replace-on-write. Handle.Close uses it, when available, to
// flush the information file via a temp-file-plus-rename instead of a
// direct in-place write, so a crash mid-flush never leaves a
// half-written sidecar file on disk. Implementations that don't support
// atomic rename (e.g. the in-memory iotest fake) are still fully usable;
// Close falls back to a direct write.
type Renamer interface {
	Rename(oldpath, newpath string) error
}

var _ Renamer = OSFileIO{}

// Rename implements Renamer over os.Rename.
func (OSFileIO) Rename(oldpath, newpath string) error {
	if err := os.Rename(oldpath, newpath); err != nil {
		return smerr.ClassifyIOError(err, "rename", newpath)
	}
	return nil
}
