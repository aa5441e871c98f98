package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names the encoding a filings export was written in.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88599    Charset = "ISO-8859-9"
)

const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE},
}

// chardet reports Latin-1 for most Windows-1252 files; both decode the same for printable text.
var detected = map[string]Charset{
	"UTF-8":        UTF8,
	"ISO-8859-1":   Windows1252,
	"windows-1252": Windows1252,
	"ISO-8859-9":   ISO88599,
}

var decoders = map[Charset]xencoding.Encoding{
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	Windows1252: charmap.Windows1252,
	ISO88599:    charmap.ISO8859_9,
}

// NewUTF8Reader sniffs the start of r and returns a reader producing UTF-8, plus the charset it found.
// A byte order mark wins, then valid UTF-8, then chardet's guess. Anything else is read as Windows-1252,
// the charset spreadsheet tools on Windows export by default.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peeking input: %w", err)
	}

	charset := sniff(head)

	if charset == UTF8 {
		if bytes.HasPrefix(head, boms[0].prefix) {
			_, _ = br.Discard(len(boms[0].prefix))
		}

		return br, UTF8, nil
	}

	return transform.NewReader(br, decoders[charset].NewDecoder()), charset, nil
}

func sniff(head []byte) Charset {
	for _, b := range boms {
		if bytes.HasPrefix(head, b.prefix) {
			return b.charset
		}
	}

	if utf8.Valid(head) {
		return UTF8
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if c, ok := detected[result.Charset]; ok {
			return c
		}
	}

	return Windows1252
}
