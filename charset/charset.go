// Package charset implements the text codecs used to decode and encode
// DICOM string-valued elements.
//
// Two codecs are mandatory: the Default codec (the 7-bit ASCII "Default"
// / "ISO_IR_6" repertoire) and the ISO_IR_192 codec (UTF-8). Both share an
// identical lossy decode trap: a byte the strict decoder rejects is
// emitted as a backslash followed by its three octal digits, preserving
// the byte-for-byte length of the input so stream-position bookkeeping
// in the caller never has to special-case a decode failure.
//
// A broader table of optional character sets (the ISO 2022 repertoires
// DICOM permits via Specific Character Set) is also resolvable here,
// backed by golang.org/x/text; those codecs do not implement the trap
// (undecodable bytes come back as U+FFFD, and Encode reports ordinary
// errors), since the trap's round-trippability guarantee is only
// specified for the two mandatory codecs.
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// TextCodec decodes bytes to strings and encodes strings to bytes under a
// named character repertoire.
type TextCodec interface {
	// Decode converts bytes to a string. It never fails: under Default and
	// UTF8, bytes outside the codec's strict repertoire are represented via
	// the octal escape trap.
	Decode(b []byte) string

	// Encode converts a string to bytes. It fails if the string contains a
	// character outside the codec's repertoire.
	Encode(s string) ([]byte, error)
}

// decodeTextTrap runs isValid over each byte of b, emitting valid runs
// through decodeRun unchanged and substituting "\OOO" (backslash plus
// three octal digits) for every byte isValid rejects.
func decodeTextTrap(b []byte, isValid func(byte) bool, decodeRun func([]byte) string) string {
	var out strings.Builder
	start := 0
	for i := 0; i < len(b); i++ {
		if isValid(b[i]) {
			continue
		}
		if i > start {
			out.WriteString(decodeRun(b[start:i]))
		}
		fmt.Fprintf(&out, "\\%03o", b[i])
		start = i + 1
	}
	if start < len(b) {
		out.WriteString(decodeRun(b[start:]))
	}
	return out.String()
}

// defaultCodec is the "Default" / "ISO_IR_6" repertoire: 7-bit ASCII.
// DICOM's default character repertoire is ISO-IR 6, not the full ISO
// 8859-1 byte range, so bytes 0x80-0xFF fall to the trap rather than
// round-tripping as Latin-1 characters.
type defaultCodec struct{}

func (defaultCodec) Decode(b []byte) string {
	return decodeTextTrap(b, func(c byte) bool { return c < 0x80 }, func(run []byte) string {
		return string(run)
	})
}

func (defaultCodec) Encode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return nil, fmt.Errorf("charset: byte 0x%02X at offset %d is outside the Default repertoire", s[i], i)
		}
	}
	return []byte(s), nil
}

// Default is the mandatory "Default" / "ISO_IR_6" text codec.
var Default TextCodec = &defaultCodec{}

// utf8Codec is the "ISO_IR_192" repertoire: UTF-8.
type utf8Codec struct{}

func (utf8Codec) Decode(b []byte) string {
	var out strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			fmt.Fprintf(&out, "\\%03o", b[0])
			b = b[1:]
			continue
		}
		out.Write(b[:size])
		b = b[size:]
	}
	return out.String()
}

func (utf8Codec) Encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("charset: %q is not valid UTF-8", s)
	}
	return []byte(s), nil
}

// UTF8 is the mandatory "ISO_IR_192" text codec.
var UTF8 TextCodec = &utf8Codec{}

// Resolve maps a DICOM Specific Character Set UID/name to its TextCodec.
// "Default" and "ISO_IR_6" resolve to Default; "ISO_IR_192" resolves to
// UTF8. Any other recognized ISO 2022 repertoire resolves to a best-effort
// codec backed by golang.org/x/text. An unrecognized name yields (nil,
// false): per the wire contract, an unknown character set UID means no
// codec change, not an error.
func Resolve(name string) (TextCodec, bool) {
	normalized := normalize(name)
	switch normalized {
	case "DEFAULT", "ISO_IR_6":
		return Default, true
	case "ISO_IR_192":
		return UTF8, true
	}

	if htmlName, ok := extendedCharacterSets[normalized]; ok {
		if htmlName == "" {
			return Default, true
		}
		enc, err := htmlindex.Get(htmlName)
		if err != nil {
			return nil, false
		}
		return &xtextCodec{enc: enc}, true
	}
	return nil, false
}

// normalize collapses internal whitespace runs to a single underscore and
// upper-cases the result, so "ISO_IR 192" and "ISO_IR_192" (and the
// lower-case forms a lax sender might emit) compare equal.
func normalize(name string) string {
	fields := strings.Fields(strings.ToUpper(name))
	return strings.Join(fields, "_")
}

// extendedCharacterSets maps the optional ISO 2022 repertoires DICOM
// permits in Specific Character Set to golang.org/x/text/encoding/htmlindex
// names. This mirrors the DICOM-to-IANA mapping used by the wider DICOM
// Go ecosystem; the mandatory Default/ISO_IR_192 codecs above are
// resolved directly and never consult this table.
var extendedCharacterSets = map[string]string{
	"ISO_2022_IR_6":   "",
	"ISO_IR_100":      "iso-8859-1",
	"ISO_2022_IR_100": "iso-8859-1",
	"ISO_IR_101":      "iso-8859-2",
	"ISO_2022_IR_101": "iso-8859-2",
	"ISO_IR_109":      "iso-8859-3",
	"ISO_2022_IR_109": "iso-8859-3",
	"ISO_IR_110":      "iso-8859-4",
	"ISO_2022_IR_110": "iso-8859-4",
	"ISO_IR_144":      "iso-8859-5",
	"ISO_2022_IR_144": "iso-8859-5",
	"ISO_IR_127":      "iso-8859-6",
	"ISO_2022_IR_127": "iso-8859-6",
	"ISO_IR_126":      "iso-8859-7",
	"ISO_2022_IR_126": "iso-8859-7",
	"ISO_IR_138":      "iso-8859-8",
	"ISO_2022_IR_138": "iso-8859-8",
	"ISO_IR_148":      "iso-8859-9",
	"ISO_2022_IR_148": "iso-8859-9",
	"ISO_IR_166":      "windows-874",
	"ISO_2022_IR_166": "windows-874",
	"GB18030":         "gb18030",
	"GBK":             "gbk",
}

// xtextCodec adapts a golang.org/x/text/encoding.Encoding to TextCodec for
// the optional character sets. Unlike Default and UTF8, it does not
// implement the octal escape trap: invalid bytes under these repertoires
// surface as a literal U+FFFD replacement character, matching the
// decoder's own error-handling mode.
type xtextCodec struct {
	enc encoding.Encoding
}

func (x *xtextCodec) Decode(b []byte) string {
	out, err := x.enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func (x *xtextCodec) Encode(s string) ([]byte, error) {
	out, err := x.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode failed: %w", err)
	}
	return out, nil
}
