// Package token defines the flat sequence of structural tokens a streaming
// reader emits while walking a DICOM data set.
//
// A well-formed token sequence is bracketed: every SequenceStart is
// matched by a later SequenceEnd, and every ItemStart by a later ItemEnd,
// with PrimitiveValue tokens only ever appearing immediately after the
// ElementHeader they belong to.
package token

import (
	"fmt"

	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/length"
	"github.com/ashgrove-health/dcmtok/value"
)

// Token is a single structural event in a data set's token stream.
type Token interface {
	// String returns a human-readable rendering of the token.
	String() string
}

// ElementHeader announces a primitive data element. A PrimitiveValue
// token carrying that element's decoded value always follows immediately,
// even when Header.Length is zero: a zero-length element still decodes to
// an empty value of its VR, rather than being skipped.
type ElementHeader struct {
	Header header.DataElementHeader
}

func (t ElementHeader) String() string {
	return fmt.Sprintf("ElementHeader(%s)", t.Header)
}

// SequenceStart announces the beginning of a sequence (SQ) element. It is
// always matched by a later SequenceEnd.
type SequenceStart struct {
	Header header.DataElementHeader
}

func (t SequenceStart) String() string {
	return fmt.Sprintf("SequenceStart(%s)", t.Header)
}

// SequenceEnd closes the sequence most recently opened by a SequenceStart.
type SequenceEnd struct{}

func (t SequenceEnd) String() string { return "SequenceEnd" }

// ItemStart announces the beginning of an item within an open sequence. It
// is always matched by a later ItemEnd.
type ItemStart struct {
	// Length is the item's declared length; it may be undefined, in which
	// case the item is closed by an Item Delimitation Item rather than by
	// byte count.
	Length length.Length
}

func (t ItemStart) String() string {
	return fmt.Sprintf("ItemStart(%s)", t.Length)
}

// ItemEnd closes the item most recently opened by an ItemStart.
type ItemEnd struct{}

func (t ItemEnd) String() string { return "ItemEnd" }

// PrimitiveValue carries the decoded value of the primitive element whose
// ElementHeader immediately preceded it.
type PrimitiveValue struct {
	Value value.Value
}

func (t PrimitiveValue) String() string {
	return fmt.Sprintf("PrimitiveValue(len=%s, %s)", t.Value.Length(), t.Value.String())
}
