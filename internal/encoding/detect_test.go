package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/filingdesk/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Request Code;Formation Date;State\nNM-0001;2024-03-10;Nuevo México\n"

	got, charset := readAll(t, []byte(input))

	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Descrição;Montante\n" with ç = 0xE7 and ã = 0xE3.
	input := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, charset := readAll(t, input)

	assert.Equal(t, "Descrição;Montante\n", got)
	assert.NotEqual(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Order,Filed On\n")...)

	got, charset := readAll(t, input)

	assert.Equal(t, "Order,Filed On\n", got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("Order,Filed On\n"))
	require.NoError(t, err)

	got, charset := readAll(t, encoded)

	assert.Equal(t, "Order,Filed On\n", got)
	assert.Equal(t, encoding.UTF16LE, charset)
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, charset := readAll(t, nil)

	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}
