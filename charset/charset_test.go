package charset_test

import (
	"testing"

	"github.com/ashgrove-health/dcmtok/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Decode_ASCII(t *testing.T) {
	assert.Equal(t, "ABC^DEF ", charset.Default.Decode([]byte("ABC^DEF ")))
}

func TestDefault_Decode_TrapsHighBytes(t *testing.T) {
	got := charset.Default.Decode([]byte{'A', 0xFF, 'B'})
	assert.Equal(t, "A\\377B", got)
}

func TestDefault_Decode_TrapOnlyHighByte(t *testing.T) {
	got := charset.Default.Decode([]byte{0xFF})
	assert.Equal(t, "\\377", got)
}

func TestDefault_Encode_StrictOutsideASCII(t *testing.T) {
	_, err := charset.Default.Encode("café")
	require.Error(t, err)
}

func TestDefault_Encode_ASCIIRoundTrips(t *testing.T) {
	b, err := charset.Default.Encode("ORIGINAL")
	require.NoError(t, err)
	assert.Equal(t, []byte("ORIGINAL"), b)
}

func TestUTF8_Decode_NonASCII(t *testing.T) {
	got := charset.UTF8.Decode([]byte("Buc^Jérôme"))
	assert.Equal(t, "Buc^Jérôme", got)
}

func TestUTF8_Decode_TrapsInvalidSequence(t *testing.T) {
	got := charset.UTF8.Decode([]byte{'A', 0xFF, 'B'})
	assert.Equal(t, "A\\377B", got)
}

func TestUTF8_Encode_StrictOnInvalid(t *testing.T) {
	_, err := charset.UTF8.Encode(string([]byte{0xFF}))
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOk   bool
		wantSame charset.TextCodec
	}{
		{"Default keyword", "Default", true, charset.Default},
		{"ISO_IR_6", "ISO_IR_6", true, charset.Default},
		{"ISO_IR 192 with space", "ISO_IR 192", true, charset.UTF8},
		{"ISO_IR_192 with underscore", "ISO_IR_192", true, charset.UTF8},
		{"unknown UID yields no codec", "ISO_IR_999999", false, nil},
		{"empty string yields no codec", "", false, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := charset.Resolve(tc.input)
			assert.Equal(t, tc.wantOk, ok)
			if tc.wantOk {
				assert.Same(t, tc.wantSame, got)
			}
		})
	}
}

func TestResolve_ExtendedCharacterSet(t *testing.T) {
	codec, ok := charset.Resolve("ISO_IR 100")
	require.True(t, ok)
	require.NotNil(t, codec)

	b, err := codec.Encode("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", codec.Decode(b))
}
