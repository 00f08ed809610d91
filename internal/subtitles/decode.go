package subtitles

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
	EncodingUTF8Replace = "utf-8-replace"
)

// DecodeResult carries decoded text and the encoding that accepted it.
type DecodeResult struct {
	Text     string
	Encoding string
}

type textDecoder struct {
	name   string
	decode func([]byte) (string, bool)
}

// decoders is tried in order; the first that accepts the payload wins.
// utfbom.SkipOnly passes BOM-less input through, so any valid UTF-8 is
// reported as utf-8-sig and the utf-8 entry never wins. Likewise latin-1
// accepts every byte, leaving windows-1252 unreachable.
var decoders = []textDecoder{
	{name: EncodingUTF8BOM, decode: decodeUTF8BOM},
	{name: EncodingUTF8, decode: decodeUTF8},
	{name: EncodingLatin1, decode: decodeCharmap(charmap.ISO8859_1)},
	{name: EncodingWindows1252, decode: decodeCharmap(charmap.Windows1252)},
}

// Decode converts raw subtitle bytes of unknown encoding into normalized text:
// byte-order marks removed and every line ending rewritten to "\n". It never
// fails; as a last resort invalid UTF-8 sequences are replaced.
func Decode(data []byte) DecodeResult {
	for _, candidate := range decoders {
		if text, ok := candidate.decode(data); ok {
			return DecodeResult{Text: normalizeText(text), Encoding: candidate.name}
		}
	}
	text, _, err := transform.String(unicode.UTF8.NewDecoder(), string(data))
	if err != nil {
		text = strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return DecodeResult{Text: normalizeText(text), Encoding: EncodingUTF8Replace}
}

func decodeUTF8BOM(data []byte) (string, bool) {
	body, err := io.ReadAll(utfbom.SkipOnly(bytes.NewReader(data)))
	if err != nil || !utf8.Valid(body) {
		return "", false
	}
	return string(body), true
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeCharmap(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\uFEFF", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
