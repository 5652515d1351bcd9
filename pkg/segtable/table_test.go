package segtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smraw-go/smraw/pkg/ioadapter"
	"github.com/smraw-go/smraw/pkg/ioadapter/iotest"
	"github.com/smraw-go/smraw/pkg/segtable"
	"github.com/smraw-go/smraw/pkg/smerr"
)

func TestBuildFromNamesContiguousRanges(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", make([]byte, 10))
	fs.Seed("a.002", make([]byte, 10))
	fs.Seed("a.003", make([]byte, 4))

	tbl, err := segtable.BuildFromNames([]string{"a.001", "a.002", "a.003"}, fs, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(24), tbl.TotalSize())

	segs := tbl.Segments()
	require.Equal(t, uint64(0), segs[0].Start)
	require.Equal(t, uint64(10), segs[0].End)
	require.Equal(t, uint64(10), segs[1].Start)
	require.Equal(t, uint64(20), segs[1].End)
	require.Equal(t, uint64(20), segs[2].Start)
	require.Equal(t, uint64(24), segs[2].End)
}

func TestBuildFromNamesCorruptUndersizedNonLastSegment(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", make([]byte, 5))
	fs.Seed("a.002", make([]byte, 10))

	_, err := segtable.BuildFromNames([]string{"a.001", "a.002"}, fs, 10)
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.Corrupt))
}

func TestBuildFromNamesCorruptOversizedSegment(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", make([]byte, 20))

	_, err := segtable.BuildFromNames([]string{"a.001"}, fs, 10)
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.Corrupt))
}

func TestLocateWithinAndAcrossSegments(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", make([]byte, 10))
	fs.Seed("a.002", make([]byte, 10))

	tbl, err := segtable.BuildFromNames([]string{"a.001", "a.002"}, fs, 10)
	require.NoError(t, err)

	idx, intra, err := tbl.Locate(0)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, uint64(0), intra)

	idx, intra, err = tbl.Locate(9)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, uint64(9), intra)

	idx, intra, err = tbl.Locate(10)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Equal(t, uint64(0), intra)

	idx, intra, err = tbl.Locate(19)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Equal(t, uint64(9), intra)
}

func TestLocatePastEndOfMedium(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", make([]byte, 10))

	tbl, err := segtable.BuildFromNames([]string{"a.001"}, fs, 0)
	require.NoError(t, err)

	_, _, err = tbl.Locate(10)
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.NotFound))
}

func TestAppendSegmentMaintainsContiguity(t *testing.T) {
	tbl := segtable.New()
	tbl.AppendSegment("a.001", 10)
	d := tbl.AppendSegment("a.002", 5)
	require.Equal(t, uint64(10), d.Start)
	require.Equal(t, uint64(15), d.End)
	require.Equal(t, uint64(15), tbl.TotalSize())
}

func TestGrowLastExtendsRange(t *testing.T) {
	tbl := segtable.New()
	tbl.AppendSegment("a.001", 10)
	tbl.GrowLast(5)
	require.Equal(t, uint64(15), tbl.TotalSize())
	require.Equal(t, uint64(15), tbl.Last().End)
}

func TestPoolEvictsLeastRecentlyUsed(t *testing.T) {
	fs := iotest.New()
	fs.Seed("a.001", []byte("one"))
	fs.Seed("a.002", []byte("two"))
	fs.Seed("a.003", []byte("three"))

	pool := segtable.NewPool(2, fs, ioadapter.ModeRead)
	pool.Register(0, "a.001")
	pool.Register(1, "a.002")
	pool.Register(2, "a.003")

	f0, err := pool.Get(0)
	require.NoError(t, err)
	f1, err := pool.Get(1)
	require.NoError(t, err)

	// Touch 0 again so 1 becomes the least-recently-used entry.
	_, err = pool.Get(0)
	require.NoError(t, err)

	// Opening a third distinct segment must evict index 1, not index 0.
	_, err = pool.Get(2)
	require.NoError(t, err)

	again0, err := pool.Get(0)
	require.NoError(t, err)
	require.Same(t, f0, again0)

	again1, err := pool.Get(1)
	require.NoError(t, err)
	require.NotSame(t, f1, again1)

	require.NoError(t, pool.CloseAll())
}
