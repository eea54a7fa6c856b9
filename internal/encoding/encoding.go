// Package encoding wraps the relevant parts of golang.org/x/text/encoding
// behind a single name-based lookup. It exists mostly because package
// names like "unicode" clash with the stdlib, and the token reader only
// ever needs the "IANA-ish name to Encoding" direction.
package encoding

import (
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var registry = map[string]enc.Encoding{
	"utf8":         unicode.UTF8,
	"utf-8":        unicode.UTF8,
	"utf16le":      unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16be":      unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16":       unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
	"euc-jp":       japanese.EUCJP,
	"shift_jis":    japanese.ShiftJIS,
	"shift-jis":    japanese.ShiftJIS,
	"cp932":        japanese.ShiftJIS,
	"iso-2022-jp":  japanese.ISO2022JP,
	"big5":         traditionalchinese.Big5,
	"euc-kr":       korean.EUCKR,
	"hz-gb2312":    simplifiedchinese.HZGB2312,
	"gbk":          simplifiedchinese.GBK,
	"iso-8859-1":   charmap.Windows1252,
	"latin1":       charmap.Windows1252,
	"iso-8859-2":   charmap.ISO8859_2,
	"iso-8859-3":   charmap.ISO8859_3,
	"iso-8859-4":   charmap.ISO8859_4,
	"iso-8859-5":   charmap.ISO8859_5,
	"iso-8859-6":   charmap.ISO8859_6,
	"iso-8859-7":   charmap.ISO8859_7,
	"iso-8859-8":   charmap.ISO8859_8,
	"iso-8859-10":  charmap.ISO8859_10,
	"iso-8859-13":  charmap.ISO8859_13,
	"iso-8859-14":  charmap.ISO8859_14,
	"iso-8859-15":  charmap.ISO8859_15,
	"iso-8859-16":  charmap.ISO8859_16,
	"koi8-r":       charmap.KOI8R,
	"koi8-u":       charmap.KOI8U,
	"macintosh":    charmap.Macintosh,
	"windows-874":  charmap.Windows874,
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
}

// Load returns the Encoding registered under name, or nil if the name
// is unknown. Lookup is case-insensitive.
func Load(name string) enc.Encoding {
	return registry[strings.ToLower(name)]
}
