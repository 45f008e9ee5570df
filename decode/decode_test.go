package decode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csvkit/swiftcsv"
)

func TestSniffDetectsBOMs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		wantEnc    Encoding
		wantBOMLen int
	}{
		{"utf8BOM", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8, 3},
		{"utf16LE", []byte{0xFF, 0xFE, 'a', 0}, UTF16LE, 2},
		{"utf16BE", []byte{0xFE, 0xFF, 0, 'a'}, UTF16BE, 2},
		{"utf32LE", []byte{0xFF, 0xFE, 0x00, 0x00}, UTF32LE, 4},
		{"utf32BE", []byte{0x00, 0x00, 0xFE, 0xFF}, UTF32BE, 4},
		{"noBOM", []byte("a,b,c"), UTF8, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			enc, bomLen := Sniff(tt.data)
			assert.Equal(t, tt.wantEnc, enc)
			assert.Equal(t, tt.wantBOMLen, bomLen)
		})
	}
}

func TestSourcePlainUTF8PassesThrough(t *testing.T) {
	t.Parallel()

	src, err := Source(strings.NewReader("a,b,c\n"))
	require.NoError(t, err)

	r, err := swiftcsv.NewReader(src, swiftcsv.DefaultConfig())
	require.NoError(t, err)

	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, rows)
}

func TestSourceStripsUTF8BOM(t *testing.T) {
	t.Parallel()

	input := "\xEF\xBB\xBFa,b,c\n"
	src, err := Source(strings.NewReader(input))
	require.NoError(t, err)

	r, err := swiftcsv.NewReader(src, swiftcsv.DefaultConfig())
	require.NoError(t, err)

	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, rows)
}
