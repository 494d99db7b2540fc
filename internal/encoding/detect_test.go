package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centavo/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date,Payee,Amount\n2024-01-05,Café São Jorge,-10.50\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Café". ç/ã style bytes are invalid UTF-8 so the
	// detector has to kick in.
	input := []byte{
		'P', 'a', 'y', 'e', 'e', '\n',
		'C', 'a', 'f', 0xE9, ' ', 'S', 0xE3, 'o', ' ', 'J', 'o', 'r', 'g', 'e', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Payee\nCafé São Jorge\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Date,Payee,Amount\n")

	r, err := encoding.NewUTF8Reader(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(content), string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "Hi" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(got))
}
