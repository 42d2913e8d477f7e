// Package valuereader decodes the primitive value bytes that follow a
// DataElementHeader into a value.Value, routing string-typed VRs through
// the data set's active text codec.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package valuereader

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/ashgrove-health/dcmtok/charset"
	"github.com/ashgrove-health/dcmtok/dcmio"
	"github.com/ashgrove-health/dcmtok/value"
	"github.com/ashgrove-health/dcmtok/vr"
)

// Reader decodes primitive values from a dcmio.Reader, using byteOrder for
// multi-byte numeric fields and an active TextCodec for string VRs. The
// codec can be swapped mid-stream via SetCodec when a Specific Character
// Set element is encountered.
type Reader struct {
	r         *dcmio.Reader
	byteOrder binary.ByteOrder
	codec     charset.TextCodec
}

// New creates a Reader over r. codec is the initial text codec, used until
// SetCodec changes it.
func New(r *dcmio.Reader, byteOrder binary.ByteOrder, codec charset.TextCodec) *Reader {
	return &Reader{r: r, byteOrder: byteOrder, codec: codec}
}

// SetCodec replaces the active text codec for subsequent string reads.
func (r *Reader) SetCodec(codec charset.TextCodec) {
	r.codec = codec
}

// ReadValue reads length bytes of data for VR v and decodes it into a
// value.Value. length must be defined; the caller is responsible for
// routing undefined-length elements (sequences, encapsulated pixel data)
// through the token reader's structural handling instead.
func (r *Reader) ReadValue(v vr.VR, length uint32) (value.Value, error) {
	if length == 0 {
		return r.readEmpty(v)
	}

	switch {
	case v.IsStringType():
		return r.readString(v, length)
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return r.readFloat(v, length)
	case v.IsNumericType():
		return r.readInt(v, length)
	case v.IsBinaryType():
		return r.readBytes(v, length)
	default:
		return r.readBytes(vr.Unknown, length)
	}
}

func (r *Reader) readEmpty(v vr.VR) (value.Value, error) {
	switch {
	case v.IsStringType():
		return value.NewStringValue(v, []string{})
	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		return value.NewFloatValue(v, []float64{})
	case v.IsNumericType():
		return value.NewIntValue(v, []int64{})
	case v.IsBinaryType():
		return value.NewBytesValue(v, []byte{})
	default:
		return value.NewBytesValue(vr.Unknown, []byte{})
	}
}

// readString reads raw bytes, decodes them through the active text codec,
// trims trailing null/space padding, and splits on backslash for
// multi-valued elements.
func (r *Reader) readString(v vr.VR, length uint32) (*value.StringValue, error) {
	data, err := r.r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("valuereader: reading string data: %w", err)
	}

	str := strings.TrimRight(r.codec.Decode(data), "\x00 ")

	var values []string
	if str != "" {
		values = strings.Split(str, "\\")
	}

	val, err := value.NewStringValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("valuereader: %w", err)
	}
	return val, nil
}

func (r *Reader) readInt(v vr.VR, length uint32) (*value.IntValue, error) {
	var bytesPerValue int
	switch v {
	case vr.SignedShort, vr.UnsignedShort:
		bytesPerValue = 2
	case vr.SignedLong, vr.UnsignedLong, vr.AttributeTag:
		bytesPerValue = 4
	default:
		return nil, fmt.Errorf("valuereader: unsupported integer VR: %s", v)
	}

	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("valuereader: length %d is not a multiple of %d for VR %s", length, bytesPerValue, v)
	}

	numValues := int(length) / bytesPerValue
	values := make([]int64, 0, numValues)
	for i := 0; i < numValues; i++ {
		var val int64
		switch v {
		case vr.SignedShort:
			u16, err := r.r.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(int16(u16))
		case vr.UnsignedShort:
			u16, err := r.r.ReadUint16()
			if err != nil {
				return nil, err
			}
			val = int64(u16)
		case vr.SignedLong:
			u32, err := r.r.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(int32(u32))
		case vr.UnsignedLong, vr.AttributeTag:
			u32, err := r.r.ReadUint32()
			if err != nil {
				return nil, err
			}
			val = int64(u32)
		}
		values = append(values, val)
	}

	intVal, err := value.NewIntValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("valuereader: %w", err)
	}
	return intVal, nil
}

func (r *Reader) readFloat(v vr.VR, length uint32) (*value.FloatValue, error) {
	bytesPerValue := 4
	if v == vr.FloatingPointDouble {
		bytesPerValue = 8
	}
	if int(length)%bytesPerValue != 0 {
		return nil, fmt.Errorf("valuereader: length %d is not a multiple of %d for VR %s", length, bytesPerValue, v)
	}

	numValues := int(length) / bytesPerValue
	values := make([]float64, 0, numValues)
	for i := 0; i < numValues; i++ {
		data, err := r.r.ReadBytes(bytesPerValue)
		if err != nil {
			return nil, err
		}
		if v == vr.FloatingPointSingle {
			values = append(values, float64(math.Float32frombits(r.byteOrder.Uint32(data))))
		} else {
			values = append(values, math.Float64frombits(r.byteOrder.Uint64(data)))
		}
	}

	floatVal, err := value.NewFloatValue(v, values)
	if err != nil {
		return nil, fmt.Errorf("valuereader: %w", err)
	}
	return floatVal, nil
}

func (r *Reader) readBytes(v vr.VR, length uint32) (*value.BytesValue, error) {
	data, err := r.r.ReadBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("valuereader: reading binary data: %w", err)
	}
	bytesVal, err := value.NewBytesValue(v, data)
	if err != nil {
		return nil, fmt.Errorf("valuereader: %w", err)
	}
	return bytesVal, nil
}
