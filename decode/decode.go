// Package decode reads DataElementHeader and SequenceItemHeader values off
// a dcmio.Reader according to a transfer syntax's VR encoding and byte
// order.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/length"
	"github.com/ashgrove-health/dcmtok/tag"
	"github.com/ashgrove-health/dcmtok/vr"
)

// unexpectedIfEOF maps a clean io.EOF to io.ErrUnexpectedEOF. Only the
// very first read of a structural unit (the group half of a tag) may
// surface a clean io.EOF; once any byte of that unit has been consumed,
// the stream ending is a truncation, not a boundary.
func unexpectedIfEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ErrInvalidVR is returned when an Explicit VR stream carries two bytes
// that are not one of the 31 recognized VR codes.
var ErrInvalidVR = errors.New("decode: unrecognized VR bytes")

// TransferSyntax describes the encoding a HeaderDecoder assumes: whether
// the VR is carried explicitly in the stream, and the byte order of
// multi-byte fields.
type TransferSyntax struct {
	UID        string
	ExplicitVR bool
	ByteOrder  binary.ByteOrder
}

// ImplicitVRLittleEndian is the default transfer syntax assumed when no
// File Meta Information negotiates otherwise.
var ImplicitVRLittleEndian = TransferSyntax{
	UID:        "1.2.840.10008.1.2",
	ExplicitVR: false,
	ByteOrder:  binary.LittleEndian,
}

// ExplicitVRLittleEndian is the most common negotiated transfer syntax.
var ExplicitVRLittleEndian = TransferSyntax{
	UID:        "1.2.840.10008.1.2.1",
	ExplicitVR: true,
	ByteOrder:  binary.LittleEndian,
}

// ExplicitVRBigEndian is the retired big-endian explicit transfer syntax.
var ExplicitVRBigEndian = TransferSyntax{
	UID:        "1.2.840.10008.1.2.2",
	ExplicitVR: true,
	ByteOrder:  binary.BigEndian,
}

// HeaderDecoder decodes element and sequence-item headers from a
// dcmio.Reader under a fixed TransferSyntax.
//
// It never resolves a VR from a data-element dictionary: under Implicit
// VR, every tag's VR decodes as vr.Unknown, since dictionary-based VR
// resolution is an external collaborator's concern, not this decoder's.
type HeaderDecoder struct {
	r  *dcmio.Reader
	ts TransferSyntax
}

// New creates a HeaderDecoder reading from r under transfer syntax ts.
func New(r *dcmio.Reader, ts TransferSyntax) *HeaderDecoder {
	r.SetByteOrder(ts.ByteOrder)
	return &HeaderDecoder{r: r, ts: ts}
}

// DecodeHeader reads the next DataElementHeader: a tag, its VR (explicit
// or implicit per the transfer syntax), and its length.
func (d *HeaderDecoder) DecodeHeader() (header.DataElementHeader, error) {
	t, err := d.readTag()
	if err != nil {
		return header.DataElementHeader{}, err
	}

	// Item, Item Delimitation Item, and Sequence Delimitation Item never
	// carry an explicit VR on the wire, in either transfer syntax: the
	// length field follows the tag directly.
	if isSequenceSentinel(t) {
		l, err := d.r.ReadLength()
		if err != nil {
			return header.DataElementHeader{}, fmt.Errorf("decode: reading delimiter length for tag %s: %w", t, unexpectedIfEOF(err))
		}
		return header.DataElementHeader{Tag: t, VR: vr.Unknown, Length: l}, nil
	}

	var v vr.VR
	var l length.Length
	if d.ts.ExplicitVR {
		v, err = d.readVRExplicit()
		if err != nil {
			return header.DataElementHeader{}, fmt.Errorf("decode: reading VR for tag %s: %w", t, unexpectedIfEOF(err))
		}
		l, err = d.readLengthExplicit(v)
		if err != nil {
			return header.DataElementHeader{}, fmt.Errorf("decode: reading length for tag %s: %w", t, unexpectedIfEOF(err))
		}
	} else {
		v = vr.Unknown
		l, err = d.r.ReadLength()
		if err != nil {
			return header.DataElementHeader{}, fmt.Errorf("decode: reading length for tag %s: %w", t, unexpectedIfEOF(err))
		}
	}

	return header.DataElementHeader{Tag: t, VR: v, Length: l}, nil
}

// DecodeItemHeader reads the next SequenceItemHeader: a tag that must be
// one of the three item/delimiter sentinels, followed by a raw 4-byte
// length field (items and their delimiters carry no VR on the wire).
func (d *HeaderDecoder) DecodeItemHeader() (header.SequenceItemHeader, error) {
	t, err := d.readTag()
	if err != nil {
		return header.SequenceItemHeader{}, err
	}

	l, err := d.r.ReadLength()
	if err != nil {
		return header.SequenceItemHeader{}, fmt.Errorf("decode: reading item length for tag %s: %w", t, unexpectedIfEOF(err))
	}

	return header.New(t, l)
}

func isSequenceSentinel(t tag.Tag) bool {
	return t.Equals(tag.Item) || t.Equals(tag.ItemDelimiter) || t.Equals(tag.SequenceDelimiter)
}

func (d *HeaderDecoder) readTag() (tag.Tag, error) {
	group, err := d.r.ReadUint16()
	if err != nil {
		return tag.Tag{}, err
	}
	elem, err := d.r.ReadUint16()
	if err != nil {
		return tag.Tag{}, unexpectedIfEOF(err)
	}
	return tag.New(group, elem), nil
}

func (d *HeaderDecoder) readVRExplicit() (vr.VR, error) {
	b, err := d.r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	v, ok := vr.FromBinary([2]byte{b[0], b[1]})
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVR, b)
	}
	return v, nil
}

func (d *HeaderDecoder) readLengthExplicit(v vr.VR) (length.Length, error) {
	if v.UsesLongLengthField() {
		if _, err := d.r.ReadUint16(); err != nil {
			return length.Length{}, fmt.Errorf("reading reserved field: %w", err)
		}
		raw, err := d.r.ReadUint32()
		if err != nil {
			return length.Length{}, fmt.Errorf("reading 32-bit length: %w", err)
		}
		return length.New(raw), nil
	}

	raw, err := d.r.ReadUint16()
	if err != nil {
		return length.Length{}, fmt.Errorf("reading 16-bit length: %w", err)
	}
	return length.Defined(uint32(raw)), nil
}
