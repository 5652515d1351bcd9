package seglist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smraw-go/smraw/pkg/seglist"
	"github.com/smraw-go/smraw/pkg/smerr"
)

func existsIn(set map[string]bool) seglist.Exists {
	return func(name string) (bool, error) {
		return set[name], nil
	}
}

func TestGlobSingleFile(t *testing.T) {
	set := map[string]bool{"image.dd": true}
	names, err := seglist.Glob("image.dd", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"image.dd"}, names)
}

func TestGlobRawDecimalBare(t *testing.T) {
	set := map[string]bool{
		"image.raw":     true,
		"image.raw.001": true,
		"image.raw.002": true,
	}
	names, err := seglist.Glob("image.raw", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"image.raw", "image.raw.001", "image.raw.002"}, names)
}

func TestGlobRawDecimalNumbered(t *testing.T) {
	set := map[string]bool{
		"image.raw.001": true,
		"image.raw.002": true,
		"image.raw.003": true,
	}
	names, err := seglist.Glob("image.raw.001", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"image.raw.001", "image.raw.002", "image.raw.003"}, names)
}

func TestGlobDecimal(t *testing.T) {
	set := map[string]bool{
		"image.001": true,
		"image.002": true,
	}
	names, err := seglist.Glob("image.001", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"image.001", "image.002"}, names)
}

func TestGlobGrowingDecimal(t *testing.T) {
	set := map[string]bool{
		"image.0.raw": true,
		"image.1.raw": true,
		"image.2.raw": true,
	}
	names, err := seglist.Glob("image.0.raw", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"image.0.raw", "image.1.raw", "image.2.raw"}, names)
}

func TestGlobAlphaLower(t *testing.T) {
	set := map[string]bool{
		"imageaa": true,
		"imageab": true,
		"imageac": true,
	}
	names, err := seglist.Glob("imageaa", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"imageaa", "imageab", "imageac"}, names)
}

func TestGlobAlphaLowerCarry(t *testing.T) {
	set := map[string]bool{
		"imageaz": true,
		"imageba": true,
	}
	names, err := seglist.Glob("imageaz", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"imageaz", "imageba"}, names)
}

func TestGlobAlphaUpper(t *testing.T) {
	set := map[string]bool{
		"IMAGEAA": true,
		"IMAGEAB": true,
	}
	names, err := seglist.Glob("IMAGEAA", existsIn(set))
	require.NoError(t, err)
	require.Equal(t, []string{"IMAGEAA", "IMAGEAB"}, names)
}

func TestGlobMissingFirstSegment(t *testing.T) {
	_, err := seglist.Glob("missing.raw", existsIn(map[string]bool{}))
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.NotFound))
}

func TestGlobAmbiguousNestedRaw(t *testing.T) {
	set := map[string]bool{"image.raw.raw.001": true}
	_, err := seglist.Glob("image.raw.raw.001", existsIn(set))
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.Unsupported))
}

// TestGlobRoundTrip exercises spec.md §8's glob round-trip property: for
// every basename and segment count, the names GenerateWrite produces are
// exactly what Glob reads back starting from the first of them.
func TestGlobRoundTrip(t *testing.T) {
	for _, count := range []int{1, 2, 3, 9, 10, 1000} {
		set := map[string]bool{}
		var want []string
		for i := 0; i < count; i++ {
			name := seglist.GenerateWrite("image.dd", count, i)
			set[name] = true
			want = append(want, name)
		}

		got, err := seglist.Glob(want[0], existsIn(set))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
