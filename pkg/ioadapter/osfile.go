package ioadapter

import (
	"errors"
	"io"
	"os"

	"github.com/smraw-go/smraw/pkg/smerr"
)

// OSFileIO is the default FileIO backed by the host filesystem, the way
// the teacher's Storage.openSegmentFile opens segment files directly
// through os.OpenFile.
type OSFileIO struct{}

var _ FileIO = OSFileIO{}

// Open implements FileIO.
func (OSFileIO) Open(name string, mode Mode) (File, error) {
	var flag int
	switch mode {
	case ModeRead:
		flag = os.O_RDONLY
	case ModeWrite:
		flag = os.O_CREATE | os.O_RDWR | os.O_APPEND
	case ModeReadWrite:
		flag = os.O_CREATE | os.O_RDWR
	case ModeTruncate:
		flag = os.O_CREATE | os.O_RDWR | os.O_TRUNC
	default:
		return nil, smerr.New(smerr.InvalidArgument, "unrecognised open mode").
			WithDetail("path", name)
	}

	f, err := os.OpenFile(name, flag, 0644)
	if err != nil {
		return nil, smerr.ClassifyIOError(err, "open", name).WithContext("during segment open")
	}
	return &osFile{file: f, path: name}, nil
}

// Exists implements FileIO.
func (OSFileIO) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, smerr.ClassifyIOError(err, "stat", name)
}

// osFile adapts *os.File to the File interface.
type osFile struct {
	file *os.File
	path string
}

func (f *osFile) Read(p []byte) (int, error) {
	n, err := f.file.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, smerr.ClassifyIOError(err, "read", f.path)
	}
	return n, err
}

func (f *osFile) Write(p []byte) (int, error) {
	n, err := f.file.Write(p)
	if err != nil {
		return n, smerr.ClassifyIOError(err, "write", f.path)
	}
	return n, err
}

func (f *osFile) Seek(offset int64, whence int) (int64, error) {
	n, err := f.file.Seek(offset, whence)
	if err != nil {
		return n, smerr.ClassifyIOError(err, "seek", f.path)
	}
	return n, err
}

func (f *osFile) Size() (uint64, error) {
	info, err := f.file.Stat()
	if err != nil {
		return 0, smerr.ClassifyIOError(err, "stat", f.path)
	}
	return uint64(info.Size()), nil
}

func (f *osFile) Close() error {
	if err := f.file.Close(); err != nil {
		return smerr.ClassifyIOError(err, "close", f.path)
	}
	return nil
}
