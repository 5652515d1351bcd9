// Package codepage maps the code-page identifiers spec.md §6 enumerates
// to golang.org/x/text/encoding encoders/decoders, backing
// handle_set_codepage's contract: "a text-encoding code page used when
// decoding non-UTF filename input".
//
// The numeric IDs are taken verbatim from the original library's
// libsmraw_codepage.h so that callers porting configuration from the C
// library need no translation table of their own.
package codepage

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/smraw-go/smraw/pkg/smerr"
)

// ID identifies a code page by its libsmraw-compatible numeric value.
type ID int

// Recognised code pages, per spec.md §6.
const (
	ASCII ID = 20127

	ISO88591  ID = 28591
	ISO88592  ID = 28592
	ISO88593  ID = 28593
	ISO88594  ID = 28594
	ISO88595  ID = 28595
	ISO88596  ID = 28596
	ISO88597  ID = 28597
	ISO88598  ID = 28598
	ISO88599  ID = 28599
	ISO885910 ID = 28600
	ISO885911 ID = 28601
	ISO885913 ID = 28603
	ISO885914 ID = 28604
	ISO885915 ID = 28605
	ISO885916 ID = 28606

	KOI8R ID = 20866
	KOI8U ID = 21866

	Windows874  ID = 874
	Windows932  ID = 932
	Windows936  ID = 936
	Windows949  ID = 949
	Windows950  ID = 950
	Windows1250 ID = 1250
	Windows1251 ID = 1251
	Windows1252 ID = 1252
	Windows1253 ID = 1253
	Windows1254 ID = 1254
	Windows1255 ID = 1255
	Windows1256 ID = 1256
	Windows1257 ID = 1257
	Windows1258 ID = 1258
)

var table = map[ID]encoding.Encoding{
	ASCII: encoding.Nop,

	ISO88591:  charmap.ISO8859_1,
	ISO88592:  charmap.ISO8859_2,
	ISO88593:  charmap.ISO8859_3,
	ISO88594:  charmap.ISO8859_4,
	ISO88595:  charmap.ISO8859_5,
	ISO88596:  charmap.ISO8859_6,
	ISO88597:  charmap.ISO8859_7,
	ISO88598:  charmap.ISO8859_8,
	ISO88599:  charmap.ISO8859_9,
	ISO885910: charmap.ISO8859_10,
	ISO885911: charmap.Windows874, // ISO 8859-11 (Thai) shares a repertoire with Windows-874
	ISO885913: charmap.ISO8859_13,
	ISO885914: charmap.ISO8859_14,
	ISO885915: charmap.ISO8859_15,
	ISO885916: charmap.ISO8859_16,

	KOI8R: charmap.KOI8R,
	KOI8U: charmap.KOI8U,

	Windows874:  charmap.Windows874,
	Windows932:  japanese.ShiftJIS,
	Windows936:  simplifiedchinese.GBK,
	Windows949:  korean.EUCKR,
	Windows950:  traditionalchinese.Big5,
	Windows1250: charmap.Windows1250,
	Windows1251: charmap.Windows1251,
	Windows1252: charmap.Windows1252,
	Windows1253: charmap.Windows1253,
	Windows1254: charmap.Windows1254,
	Windows1255: charmap.Windows1255,
	Windows1256: charmap.Windows1256,
	Windows1257: charmap.Windows1257,
	Windows1258: charmap.Windows1258,
}

// Lookup returns the encoding.Encoding backing id, or an InvalidArgument
// error if id is not one of the recognised code pages.
func Lookup(id ID) (encoding.Encoding, error) {
	enc, ok := table[id]
	if !ok {
		return nil, smerr.New(smerr.InvalidArgument, "unrecognised code page").
			WithDetail("codepage", int(id))
	}
	return enc, nil
}

// Decode transcodes b from the given code page into a UTF-8 string. ASCII
// input is passed through unchanged (ASCII is a strict subset of UTF-8).
func Decode(id ID, b []byte) (string, error) {
	enc, err := Lookup(id)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", smerr.Wrap(smerr.InvalidArgument, err, "failed to decode filename under code page").
			WithDetail("codepage", int(id))
	}
	return string(out), nil
}
