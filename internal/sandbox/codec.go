package sandbox

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Canonical encoding labels reported by decodeBytes.
const (
	encodingUTF8  = "utf-8"
	encodingLossy = "utf-8 (lossy)"
)

// fallbackEncodings is the ordered fallback chain tried after UTF-8.
// UTF-8 goes first because it is self-validating; these decoders accept
// any byte stream, so putting them first would mask genuine UTF-8.
var fallbackEncodings = []string{"iso-8859-1", "windows-1252"}

// decodeBytes decodes raw bytes into text, reporting the encoding that
// actually succeeded. It never fails: the last resort replaces invalid
// sequences with U+FFFD.
func decodeBytes(data []byte) (text string, encoding string) {
	if utf8.Valid(data) {
		return string(data), encodingUTF8
	}

	for _, label := range candidateEncodings(data) {
		if decoded, err := decodeWithLabel(data, label); err == nil {
			return decoded, label
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), encodingLossy
}

// candidateEncodings orders the fallback chain, promoting the detected
// charset when it is already part of the chain.
func candidateEncodings(data []byte) []string {
	detected := detectCharset(data)
	for _, label := range fallbackEncodings {
		if label == detected {
			out := make([]string, 0, len(fallbackEncodings))
			out = append(out, detected)
			for _, l := range fallbackEncodings {
				if l != detected {
					out = append(out, l)
				}
			}
			return out
		}
	}
	return fallbackEncodings
}

// detectCharset returns the best-guess charset label for data, or "".
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}

// decodeWithLabel decodes data using a named charset.
func decodeWithLabel(data []byte, label string) (string, error) {
	reader, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// splitLines splits decoded content into lines, tolerating both LF and
// CRLF endings. A trailing newline does not produce an empty last line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
