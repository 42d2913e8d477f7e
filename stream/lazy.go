package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/ashgrove-health/dcmtok/charset"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/tag"
	"github.com/ashgrove-health/dcmtok/vr"
)

// DicomElementMarker records a decoded header and the stream position at
// which its value begins, without reading the value itself.
type DicomElementMarker struct {
	Header header.DataElementHeader
	// Pos is the position, relative to the start of the underlying
	// io.ReadSeeker, at which the element's value begins.
	Pos int64
}

// MoveToStart seeks source to the position at which this marker's value
// begins.
func (m DicomElementMarker) MoveToStart(source io.Seeker) error {
	_, err := source.Seek(m.Pos, io.SeekStart)
	return err
}

// GetDataStream returns a reader bounded to exactly this marker's value
// bytes, after seeking source to the value's start. It fails if the
// marker's length is undefined, since an undefined-length value has no
// byte count to bound a read by.
func (m DicomElementMarker) GetDataStream(source io.ReadSeeker) (io.Reader, error) {
	n, ok := m.Header.Length.Get()
	if !ok {
		return nil, fmt.Errorf("stream: marker for tag %s has undefined length", m.Header.Tag)
	}
	if err := m.MoveToStart(source); err != nil {
		return nil, err
	}
	return io.LimitReader(source, int64(n)), nil
}

// markerParser extends Parser with what a LazyReader needs beyond header
// decoding: the source's current byte offset, and the ability to
// advance past a value's bytes without decoding them.
type markerParser interface {
	Parser
	Position() int64
	Skip(n int64) error
}

type defaultMarkerParser struct {
	Parser
	r *dcmio.Reader
}

func (p *defaultMarkerParser) Position() int64 { return p.r.Position() }

func (p *defaultMarkerParser) Skip(n int64) error {
	_, err := p.r.ReadBytes(int(n))
	return err
}

// LazyReader is the seekable-source counterpart to Reader: instead of
// decoding every primitive value eagerly, it yields a DicomElementMarker
// recording where each element's value lives, and advances the source
// past that value itself so the next call to Next starts cleanly at the
// next header.
//
// This auto-skip is a deliberate difference from a reader that merely
// records header boundaries and leaves seeking entirely to the caller:
// callers that only need headers (tag, VR, length) never need to touch
// the source themselves, and callers that do want a value can still
// reach it through GetDataStream before advancing further.
type LazyReader struct {
	parser markerParser

	depth      int
	inSequence bool
	hardBreak  bool
	fusedErr   error
}

// NewLazyReader builds a LazyReader over source, decoding headers through
// the default Parser under transfer syntax ts. The Specific Character Set
// element is surfaced as a marker like any other element: LazyReader does
// not reconfigure a text codec, since it never decodes string values
// itself.
func NewLazyReader(source io.ReadSeeker, ts decode.TransferSyntax) *LazyReader {
	r := dcmio.NewReader(source, ts.ByteOrder)
	p := NewParser(r, ts, charset.Default)
	return &LazyReader{
		parser: &defaultMarkerParser{Parser: p, r: r},
	}
}

// Next returns the next element marker, advancing past its value so the
// next call starts at the following header. It returns io.EOF on a clean
// end of stream, or a malformed-stream error otherwise; once any non-EOF
// error is returned, every subsequent call returns that same error.
func (r *LazyReader) Next() (DicomElementMarker, error) {
	if r.hardBreak {
		return DicomElementMarker{}, r.fusedErr
	}

	if r.inSequence {
		return r.nextInSequence()
	}
	return r.nextHeader()
}

func (r *LazyReader) fuse(err error) (DicomElementMarker, error) {
	r.hardBreak = true
	r.fusedErr = err
	return DicomElementMarker{}, err
}

func (r *LazyReader) nextInSequence() (DicomElementMarker, error) {
	h, err := r.parser.DecodeItemHeader()
	if err != nil {
		return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
	}

	switch h.Kind {
	case header.KindItem:
		r.inSequence = false
	case header.KindItemDelimiter:
		r.inSequence = true
	default: // KindSequenceDelimiter
		r.depth--
		r.inSequence = false
	}
	return DicomElementMarker{Header: h.ToDataElementHeader(), Pos: r.parser.Position()}, nil
}

func (r *LazyReader) nextHeader() (DicomElementMarker, error) {
	h, err := r.parser.DecodeHeader()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.hardBreak = true
			r.fusedErr = io.EOF
			return DicomElementMarker{}, io.EOF
		}
		return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
	}

	marker := DicomElementMarker{Header: h, Pos: r.parser.Position()}

	if h.VR == vr.SequenceOfItems {
		r.inSequence = true
		r.depth++
		return marker, nil
	}
	if h.Tag.Equals(tag.ItemDelimiter) {
		// Mirrors Reader.nextHeader's depth assertion: an item delimiter
		// encountered while expecting a plain element header is only
		// legitimate inside a sequence whose SequenceStart already
		// incremented depth. At true top level this is malformed input,
		// not a re-entry into item-header mode.
		if r.depth <= 0 {
			return r.fuse(fmt.Errorf("%w: item delimiter at depth 0", ErrMalformedStream))
		}
		r.inSequence = true
		return marker, nil
	}

	if n, ok := h.Length.Get(); ok && n > 0 {
		if err := r.parser.Skip(int64(n)); err != nil {
			return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
		}
	}
	return marker, nil
}
