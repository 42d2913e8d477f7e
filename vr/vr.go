// Package vr defines the closed set of DICOM Value Representations (VRs)
// recognized by the tokenizer and its collaborators.
//
// See DICOM Part 5, Section 6.2:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package vr

import "fmt"

// VR represents a DICOM Value Representation type.
type VR uint8

// The closed enumeration of Value Representations recognized by this
// package. A two-letter code outside this set is an error, not a variant.
const (
	ApplicationEntity VR = iota + 1 // AE
	AgeString                       // AS
	AttributeTag                    // AT
	CodeString                      // CS
	Date                            // DA
	DecimalString                   // DS
	DateTime                        // DT
	FloatingPointSingle             // FL
	FloatingPointDouble             // FD
	IntegerString                   // IS
	LongString                      // LO
	LongText                        // LT
	OtherByte                       // OB
	OtherDouble                     // OD
	OtherFloat                      // OF
	OtherLong                       // OL
	OtherWord                       // OW
	PersonName                      // PN
	ShortString                     // SH
	SignedLong                      // SL
	SequenceOfItems                 // SQ
	SignedShort                     // SS
	ShortText                       // ST
	Time                            // TM
	UnlimitedCharacters             // UC
	UniqueIdentifier                // UI
	UnsignedLong                    // UL
	Unknown                         // UN
	UniversalResourceIdentifier     // UR
	UnsignedShort                   // US
	UnlimitedText                   // UT
)

var toString = map[VR]string{
	ApplicationEntity: "AE", AgeString: "AS", AttributeTag: "AT", CodeString: "CS",
	Date: "DA", DecimalString: "DS", DateTime: "DT", FloatingPointSingle: "FL",
	FloatingPointDouble: "FD", IntegerString: "IS", LongString: "LO", LongText: "LT",
	OtherByte: "OB", OtherDouble: "OD", OtherFloat: "OF", OtherLong: "OL",
	OtherWord: "OW", PersonName: "PN", ShortString: "SH", SignedLong: "SL",
	SequenceOfItems: "SQ", SignedShort: "SS", ShortText: "ST", Time: "TM",
	UnlimitedCharacters: "UC", UniqueIdentifier: "UI", UnsignedLong: "UL",
	Unknown: "UN", UniversalResourceIdentifier: "UR", UnsignedShort: "US",
	UnlimitedText: "UT",
}

var fromString map[string]VR

func init() {
	fromString = make(map[string]VR, len(toString))
	for v, s := range toString {
		fromString[s] = v
	}
}

// FromStr parses a two-character VR code. Matching is case-sensitive: the
// standard only defines upper-case codes.
func FromStr(s string) (VR, bool) {
	v, ok := fromString[s]
	return v, ok
}

// FromBinary parses the two ASCII bytes of a VR code as they appear on the
// wire in explicit VR encoding.
func FromBinary(b [2]byte) (VR, bool) {
	return FromStr(string(b[:]))
}

// String returns the two-character code of this VR. It panics if called on
// a value outside the enumeration, since VR has no "unknown code" variant
// distinct from Unknown ("UN").
func (v VR) String() string {
	s, ok := toString[v]
	if !ok {
		panic(fmt.Sprintf("vr: %d is not a valid Value Representation", uint8(v)))
	}
	return s
}

// ToBytes returns the two ASCII bytes of this VR's code.
func (v VR) ToBytes() [2]byte {
	s := v.String()
	return [2]byte{s[0], s[1]}
}

// IsValid reports whether v is a member of the closed enumeration.
func (v VR) IsValid() bool {
	_, ok := toString[v]
	return ok
}

// UsesLongLengthField reports whether this VR's explicit-VR encoding uses a
// 2-byte reserved field followed by a 4-byte length, rather than a plain
// 2-byte length.
//
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (v VR) UsesLongLengthField() bool {
	switch v {
	case OtherByte, OtherDouble, OtherFloat, OtherLong, OtherWord,
		SequenceOfItems, UnlimitedCharacters, Unknown,
		UniversalResourceIdentifier, UnlimitedText:
		return true
	default:
		return false
	}
}

// IsStringType reports whether this VR's value is character data decoded
// through the active text codec.
func (v VR) IsStringType() bool {
	switch v {
	case ApplicationEntity, AgeString, CodeString, Date, DecimalString, DateTime,
		IntegerString, LongString, LongText, PersonName, ShortString, ShortText,
		Time, UnlimitedCharacters, UniqueIdentifier, UniversalResourceIdentifier, UnlimitedText:
		return true
	default:
		return false
	}
}

// IsBinaryType reports whether this VR's value is an opaque byte blob.
func (v VR) IsBinaryType() bool {
	switch v {
	case OtherByte, OtherDouble, OtherFloat, OtherLong, OtherWord, Unknown:
		return true
	default:
		return false
	}
}

// IsNumericType reports whether this VR's value is a fixed-width numeric
// array (integer or floating point).
func (v VR) IsNumericType() bool {
	switch v {
	case SignedShort, UnsignedShort, SignedLong, UnsignedLong,
		AttributeTag, FloatingPointSingle, FloatingPointDouble:
		return true
	default:
		return false
	}
}

// AllowsBackslash reports whether this VR's value may contain an
// intra-component backslash that is not a multi-value delimiter.
// Person Name (PN) uses backslash to separate alphabetic, ideographic and
// phonetic component groups.
func (v VR) AllowsBackslash() bool {
	return v == PersonName
}
