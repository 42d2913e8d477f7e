// Package header defines the element and item headers decoded from a
// DICOM byte stream.
package header

import (
	"errors"
	"fmt"

	"github.com/ashgrove-health/dcmtok/length"
	"github.com/ashgrove-health/dcmtok/tag"
	"github.com/ashgrove-health/dcmtok/vr"
)

// ErrUnexpectedDataValueLength is returned when an item-delimiter tag is
// constructed with a non-zero length.
var ErrUnexpectedDataValueLength = errors.New("header: delimiter tag carries a non-zero length")

// ErrUnexpectedElement is returned when SequenceItemHeader is constructed
// from a tag that is not one of the three sequence/item sentinels.
var ErrUnexpectedElement = errors.New("header: tag is not an item, item delimiter, or sequence delimiter")

// DataElementHeader is the header of a primitive or sequence data element.
type DataElementHeader struct {
	Tag    tag.Tag
	VR     vr.VR
	Length length.Length
}

// String renders the header as "(GGGG,EEEE) VR len".
func (h DataElementHeader) String() string {
	return fmt.Sprintf("%s %s %s", h.Tag, h.VR, h.Length)
}

// SequenceItemKind distinguishes the three shapes a SequenceItemHeader can
// take.
type SequenceItemKind int

const (
	// KindItem marks the start of an item within a sequence.
	KindItem SequenceItemKind = iota
	// KindItemDelimiter marks the end of an undefined-length item.
	KindItemDelimiter
	// KindSequenceDelimiter marks the end of an undefined-length sequence.
	KindSequenceDelimiter
)

// SequenceItemHeader is the tagged variant decoded in place of a regular
// element header while positioned inside a sequence: either the start of
// an item, or one of the two delimiters that close an undefined-length
// item or sequence.
type SequenceItemHeader struct {
	Kind SequenceItemKind
	// Len is the item's declared length. It is always zero for the two
	// delimiter kinds.
	Len length.Length
}

// New constructs a SequenceItemHeader from a decoded (tag, length) pair.
// It fails with ErrUnexpectedDataValueLength if the item-delimiter tag
// carries a non-zero length, and with ErrUnexpectedElement if t is not
// one of the three sentinel tags.
func New(t tag.Tag, len length.Length) (SequenceItemHeader, error) {
	switch t {
	case tag.Item:
		return SequenceItemHeader{Kind: KindItem, Len: len}, nil
	case tag.ItemDelimiter:
		if !len.Equal(length.Defined(0)) {
			return SequenceItemHeader{}, ErrUnexpectedDataValueLength
		}
		return SequenceItemHeader{Kind: KindItemDelimiter}, nil
	case tag.SequenceDelimiter:
		return SequenceItemHeader{Kind: KindSequenceDelimiter}, nil
	default:
		return SequenceItemHeader{}, ErrUnexpectedElement
	}
}

// Tag returns the sentinel tag corresponding to this header's kind.
func (h SequenceItemHeader) Tag() tag.Tag {
	switch h.Kind {
	case KindItem:
		return tag.Item
	case KindItemDelimiter:
		return tag.ItemDelimiter
	default:
		return tag.SequenceDelimiter
	}
}

// ToDataElementHeader converts h to a DataElementHeader with VR set to
// Unknown, copying the tag and length.
func (h SequenceItemHeader) ToDataElementHeader() DataElementHeader {
	return DataElementHeader{
		Tag:    h.Tag(),
		VR:     vr.Unknown,
		Length: h.Len,
	}
}
