package decode_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/ashgrove-health/dcmtok/decode"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/header"
	"github.com/ashgrove-health/dcmtok/length"
	"github.com/ashgrove-health/dcmtok/tag"
	"github.com/ashgrove-health/dcmtok/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecoder(data []byte, ts decode.TransferSyntax) *decode.HeaderDecoder {
	r := dcmio.NewReader(bytes.NewReader(data), ts.ByteOrder)
	return decode.New(r, ts)
}

func TestDecodeHeader_ExplicitVR_ShortLength(t *testing.T) {
	// (0010,0010) PN, length 8
	data := []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x08, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, tag.New(0x0010, 0x0010), h.Tag)
	assert.Equal(t, vr.PersonName, h.VR)
	assert.True(t, h.Length.Equal(length.Defined(8)))
}

func TestDecodeHeader_ExplicitVR_LongLength(t *testing.T) {
	// (7FE0,0010) OB, reserved=0, length 0xFFFFFFFF (undefined)
	data := []byte{0xE0, 0x7F, 0x10, 0x00, 'O', 'B', 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, vr.OtherByte, h.VR)
	assert.True(t, h.Length.IsUndefined())
}

func TestDecodeHeader_ExplicitVR_InvalidVR(t *testing.T) {
	data := []byte{0x10, 0x00, 0x10, 0x00, 'Z', 'Z', 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	_, err := d.DecodeHeader()
	assert.ErrorIs(t, err, decode.ErrInvalidVR)
}

func TestDecodeHeader_ImplicitVR(t *testing.T) {
	// (0010,0010), length 8, no VR on the wire
	data := []byte{0x10, 0x00, 0x10, 0x00, 0x08, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ImplicitVRLittleEndian)

	h, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, vr.Unknown, h.VR)
	assert.True(t, h.Length.Equal(length.Defined(8)))
}

func TestDecodeHeader_BigEndian(t *testing.T) {
	data := []byte{0x00, 0x10, 0x00, 0x10, 'P', 'N', 0x00, 0x08}
	d := newDecoder(data, decode.ExplicitVRBigEndian)

	h, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, tag.New(0x0010, 0x0010), h.Tag)
	assert.True(t, h.Length.Equal(length.Defined(8)))
}

func TestDecodeHeader_EOFAtTag(t *testing.T) {
	d := newDecoder([]byte{}, decode.ExplicitVRLittleEndian)
	_, err := d.DecodeHeader()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecodeHeader_TruncatedMidHeader(t *testing.T) {
	data := []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N'}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)
	_, err := d.DecodeHeader()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeHeader_ItemDelimiterHasNoExplicitVR(t *testing.T) {
	// (FFFE,E00D) with length 0, no VR bytes on the wire even though the
	// transfer syntax is Explicit VR.
	data := []byte{0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, tag.ItemDelimiter, h.Tag)
	assert.Equal(t, vr.Unknown, h.VR)
	assert.True(t, h.Length.Equal(length.Defined(0)))
}

func TestDecodeItemHeader_Item(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0x00, 0xE0, 0x10, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, header.KindItem, h.Kind)
	assert.True(t, h.Len.Equal(length.Defined(16)))
}

func TestDecodeItemHeader_ItemDelimiter(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0x0D, 0xE0, 0x00, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, header.KindItemDelimiter, h.Kind)
}

func TestDecodeItemHeader_SequenceDelimiter(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0xDD, 0xE0, 0x00, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	h, err := d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, header.KindSequenceDelimiter, h.Kind)
}

func TestDecodeItemHeader_UnexpectedElement(t *testing.T) {
	data := []byte{0x10, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00}
	d := newDecoder(data, decode.ExplicitVRLittleEndian)

	_, err := d.DecodeItemHeader()
	assert.ErrorIs(t, err, header.ErrUnexpectedElement)
}
