// Package stream implements the pull-based token reader that turns a
// Parser's low-level decoding calls into a flat, well-bracketed sequence
// of DicomDataTokens.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/ashgrove-health/dcmtok/charset"
	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/tag"
	"github.com/ashgrove-health/dcmtok/token"
	"github.com/ashgrove-health/dcmtok/vr"
)

// ErrMalformedStream is wrapped into any error a Reader returns once
// decoding has failed mid-element; it distinguishes a genuine parse
// failure from the clean end-of-stream signaled by io.EOF.
var ErrMalformedStream = errors.New("stream: malformed data stream")

// Reader pulls a flat sequence of token.Token values out of a Parser. It
// tracks just enough state to know whether the next decode call should
// read a plain element header, an item header (inside a sequence), or a
// primitive value (immediately after an element header).
//
// Reader is a single-pass, forward-only iterator: once Next returns an
// error other than io.EOF, every subsequent call returns that same error.
type Reader struct {
	parser Parser

	depth      int
	inSequence bool
	hardBreak  bool
	fusedErr   error
	lastHeader *header.DataElementHeader
}

// NewReader builds a Reader that pulls tokens through parser.
func NewReader(parser Parser) *Reader {
	return &Reader{parser: parser}
}

// Open is a convenience constructor wiring the default Parser over r
// under transfer syntax ts, starting with the Default text codec.
func Open(r *dcmio.Reader, ts decode.TransferSyntax) *Reader {
	return NewReader(NewParser(r, ts, charset.Default))
}

// Next returns the next token in the stream. It returns io.EOF once the
// stream ends cleanly between elements. Any other error indicates a
// malformed stream; once returned, the Reader is fused and every further
// call to Next returns the same error.
func (r *Reader) Next() (token.Token, error) {
	if r.hardBreak {
		return nil, r.fusedErr
	}

	switch {
	case r.inSequence:
		return r.nextInSequence()
	case r.lastHeader != nil:
		return r.nextValue()
	default:
		return r.nextHeader()
	}
}

func (r *Reader) fuse(err error) (token.Token, error) {
	r.hardBreak = true
	r.fusedErr = err
	return nil, err
}

func (r *Reader) nextInSequence() (token.Token, error) {
	h, err := r.parser.DecodeItemHeader()
	if err != nil {
		return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
	}

	switch h.Kind {
	case header.KindItem:
		r.inSequence = false
		return token.ItemStart{Length: h.Len}, nil
	case header.KindItemDelimiter:
		r.inSequence = true
		return token.ItemEnd{}, nil
	default: // KindSequenceDelimiter
		r.depth--
		r.inSequence = false
		return token.SequenceEnd{}, nil
	}
}

func (r *Reader) nextValue() (token.Token, error) {
	h := *r.lastHeader
	v, err := r.parser.ReadValue(h)
	if err != nil {
		r.lastHeader = nil
		return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
	}

	if h.Tag.Equals(tag.SpecificCharacterSet) {
		if err := r.parser.SetCharacterSet(v.String()); err != nil {
			r.lastHeader = nil
			return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
		}
	}

	r.lastHeader = nil
	return token.PrimitiveValue{Value: v}, nil
}

func (r *Reader) nextHeader() (token.Token, error) {
	h, err := r.parser.DecodeHeader()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.hardBreak = true
			r.fusedErr = io.EOF
			return nil, io.EOF
		}
		return r.fuse(fmt.Errorf("%w: %v", ErrMalformedStream, err))
	}

	switch {
	case h.VR == vr.SequenceOfItems:
		r.inSequence = true
		r.depth++
		return token.SequenceStart{Header: h}, nil
	case h.Tag.Equals(tag.ItemDelimiter):
		// An item delimiter encountered while expecting a plain element
		// header is only legitimate inside a sequence whose SequenceStart
		// already incremented depth. At true top level this is malformed
		// input, not a re-entry into item-header mode.
		if r.depth <= 0 {
			return r.fuse(fmt.Errorf("%w: item delimiter at depth 0", ErrMalformedStream))
		}
		r.inSequence = true
		return token.ItemEnd{}, nil
	default:
		hh := h
		r.lastHeader = &hh
		return token.ElementHeader{Header: h}, nil
	}
}
