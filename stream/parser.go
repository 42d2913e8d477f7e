package stream

import (
	"fmt"

	"github.com/ashgrove-health/dcmtok/charset"
	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/value"
	"github.com/ashgrove-health/dcmtok/valuereader"
)

// Parser is the low-level decoding collaborator a Reader drives through
// its state machine. A custom Parser lets a caller swap in its own header
// decoding or value reading strategy while reusing Reader's token-sequencing
// logic.
type Parser interface {
	// DecodeHeader reads the next DataElementHeader from the source.
	DecodeHeader() (header.DataElementHeader, error)
	// DecodeItemHeader reads the next SequenceItemHeader from the source.
	DecodeItemHeader() (header.SequenceItemHeader, error)
	// ReadValue reads the primitive value described by h.
	ReadValue(h header.DataElementHeader) (value.Value, error)
	// SetCharacterSet reconfigures the text codec used by subsequent string
	// reads. name is a Specific Character Set (0008,0005) value; an
	// unrecognized name is not an error, and leaves the codec unchanged.
	SetCharacterSet(name string) error
}

// defaultParser wires a decode.HeaderDecoder and a valuereader.Reader over
// a shared dcmio.Reader.
type defaultParser struct {
	headers *decode.HeaderDecoder
	values  *valuereader.Reader
}

// NewParser builds the default Parser: header decoding per ts, value
// reading using byte order ts.ByteOrder and initial text codec codec.
func NewParser(r *dcmio.Reader, ts decode.TransferSyntax, codec charset.TextCodec) Parser {
	return &defaultParser{
		headers: decode.New(r, ts),
		values:  valuereader.New(r, ts.ByteOrder, codec),
	}
}

func (p *defaultParser) DecodeHeader() (header.DataElementHeader, error) {
	return p.headers.DecodeHeader()
}

func (p *defaultParser) DecodeItemHeader() (header.SequenceItemHeader, error) {
	return p.headers.DecodeItemHeader()
}

func (p *defaultParser) ReadValue(h header.DataElementHeader) (value.Value, error) {
	n, ok := h.Length.Get()
	if !ok {
		return nil, fmt.Errorf("stream: cannot read a value of undefined length for tag %s", h.Tag)
	}
	return p.values.ReadValue(h.VR, n)
}

func (p *defaultParser) SetCharacterSet(name string) error {
	codec, ok := charset.Resolve(name)
	if !ok {
		return nil
	}
	p.values.SetCodec(codec)
	return nil
}
