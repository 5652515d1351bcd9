package codepage_test

import (
	"testing"

	"github.com/smraw-go/smraw/pkg/codepage"
	"github.com/smraw-go/smraw/pkg/smerr"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownCodepages(t *testing.T) {
	ids := []codepage.ID{
		codepage.ASCII, codepage.ISO88591, codepage.ISO885916,
		codepage.KOI8R, codepage.KOI8U,
		codepage.Windows874, codepage.Windows932, codepage.Windows936,
		codepage.Windows949, codepage.Windows950, codepage.Windows1252,
	}
	for _, id := range ids {
		enc, err := codepage.Lookup(id)
		require.NoError(t, err)
		require.NotNil(t, enc)
	}
}

func TestLookupUnrecognisedCodepage(t *testing.T) {
	_, err := codepage.Lookup(codepage.ID(99999))
	require.Error(t, err)
	require.True(t, smerr.Is(err, smerr.InvalidArgument))
}

func TestDecodeASCIIPassthrough(t *testing.T) {
	out, err := codepage.Decode(codepage.ASCII, []byte("sample.raw"))
	require.NoError(t, err)
	require.Equal(t, "sample.raw", out)
}

func TestDecodeWindows1252(t *testing.T) {
	// 0xE9 in Windows-1252 is 'é'.
	out, err := codepage.Decode(codepage.Windows1252, []byte{0xE9, '.', 'r', 'a', 'w'})
	require.NoError(t, err)
	require.Equal(t, "é.raw", out)
}
