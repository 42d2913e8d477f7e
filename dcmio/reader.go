// Package dcmio provides low-level byte-order-aware binary reading over a
// DICOM byte stream.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
package dcmio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ashgrove-health/dcmtok/length"
)

// Reader wraps an io.Reader and provides DICOM-specific binary reading operations.
// It supports both Little Endian and Big Endian byte ordering, which can be changed
// dynamically during parsing.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
type Reader struct {
	r         io.Reader
	byteOrder binary.ByteOrder
	position  int64 // Track bytes read for position tracking
}

// NewReader creates a new DICOM binary reader with the specified byte order.
//
// Parameters:
//   - r: The underlying io.Reader to read from
//   - byteOrder: The byte order to use (binary.LittleEndian or binary.BigEndian)
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.3
func NewReader(r io.Reader, byteOrder binary.ByteOrder) *Reader {
	return &Reader{
		r:         r,
		byteOrder: byteOrder,
	}
}

// classifyFillErr turns an io.ReadFull result into the stream-boundary
// vocabulary a header decoder needs: a clean io.EOF only ever means "no
// bytes of this field arrived"; once n > 0, the field itself was cut short
// and that is always io.ErrUnexpectedEOF, never a clean boundary.
func classifyFillErr(err error, n int, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) && n == 0 {
		return io.EOF
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || (errors.Is(err, io.EOF) && n > 0) {
		return io.ErrUnexpectedEOF
	}
	return fmt.Errorf("dcmio: failed to read %s: %w", what, err)
}

// ReadUint16 reads a 16-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint16() (uint16, error) {
	buf := make([]byte, 2)
	n, err := io.ReadFull(r.r, buf)
	if err := classifyFillErr(err, n, "uint16"); err != nil {
		return 0, err
	}

	r.position += 2
	return r.byteOrder.Uint16(buf), nil
}

// ReadUint32 reads a 32-bit unsigned integer using the current byte order.
//
// Returns io.EOF if the end of the stream is reached.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadUint32() (uint32, error) {
	buf := make([]byte, 4)
	n, err := io.ReadFull(r.r, buf)
	if err := classifyFillErr(err, n, "uint32"); err != nil {
		return 0, err
	}

	r.position += 4
	return r.byteOrder.Uint32(buf), nil
}

// ReadLength reads a raw 32-bit length field and wraps it as a length.Length,
// preserving the undefined-length wire sentinel (0xFFFFFFFF) rather than
// handing the caller a bare integer it would have to re-wrap itself. Item
// lengths, delimiter lengths and implicit-VR element lengths are all this
// same four-byte shape, and the header decoder reads them through here.
// Explicit-VR element lengths (a 16-bit field, or a reserved field plus a
// 32-bit field) are decoded by the header decoder itself.
func (r *Reader) ReadLength() (length.Length, error) {
	raw, err := r.ReadUint32()
	if err != nil {
		return length.Length{}, err
	}
	return length.New(raw), nil
}

// ReadBytes reads exactly n bytes from the reader.
//
// Returns an error if fewer than n bytes are available.
// Returns an empty slice if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	if err := classifyFillErr(err, read, fmt.Sprintf("%d bytes", n)); err != nil {
		return nil, err
	}

	r.position += int64(n)
	return buf, nil
}

// ReadValueBytes reads the raw bytes of a primitive value of length l.
// l must be defined: an undefined length marks a sequence or encapsulated
// pixel data, whose contents are items and fragments, not a flat byte run,
// so the caller must route those through the token reader's structural
// handling instead of asking for a byte slice here.
func (r *Reader) ReadValueBytes(l length.Length) ([]byte, error) {
	n, ok := l.Get()
	if !ok {
		return nil, fmt.Errorf("dcmio: cannot read value bytes for an undefined length")
	}
	return r.ReadBytes(int(n))
}

// ReadString reads exactly n bytes and returns them as a string.
//
// DICOM strings may contain null terminators or trailing spaces which are preserved.
// The caller is responsible for trimming if needed.
//
// Returns an error if fewer than n bytes are available.
// Returns an empty string if n is 0.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
func (r *Reader) ReadString(n int) (string, error) {
	if n == 0 {
		return "", nil
	}

	buf, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// SetByteOrder changes the byte order for subsequent read operations.
//
// This is used when switching between File Meta Information (always Little Endian)
// and the main dataset (which may use Big Endian depending on Transfer Syntax).
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1
func (r *Reader) SetByteOrder(order binary.ByteOrder) {
	r.byteOrder = order
}

// Position returns the current byte position in the stream.
//
// This tracks the total number of bytes read from the underlying reader,
// which is useful for parsing operations that need to know byte offsets.
func (r *Reader) Position() int64 {
	return r.position
}

// WrapReader replaces the underlying reader with a new one.
//
// This is used for applying transformations to the reader stream,
// such as wrapping it in a decompression reader for deflated transfer syntax.
// The position counter is preserved to maintain accurate position tracking
// relative to the original stream.
//
// Parameters:
//   - newReader: The new io.Reader to use for subsequent read operations
func (r *Reader) WrapReader(newReader io.Reader) {
	r.r = newReader
}
