package iotest_test

import (
	"io"
	"testing"

	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/ioadapter/iotest"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	fs := iotest.New()

	w, err := fs.Open("seg.001", ioadapter.ModeWrite)
	require.NoError(t, err)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, w.Close())

	r, err := fs.Open("seg.001", ioadapter.ModeRead)
	require.NoError(t, err)
	buf := make([]byte, 5)
	n, err = r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))

	_, err = r.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}

func TestExistsReportsFalseWithoutError(t *testing.T) {
	fs := iotest.New()
	ok, err := fs.Exists("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSeekNegativeFails(t *testing.T) {
	fs := iotest.New()
	fs.Seed("seg.001", []byte("0123456789"))
	f, err := fs.Open("seg.001", ioadapter.ModeRead)
	require.NoError(t, err)
	_, err = f.Seek(-1, io.SeekStart)
	require.Error(t, err)
}
