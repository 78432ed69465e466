package imports

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxLineLength bounds a single stylesheet line.
const maxLineLength = 4 << 20

// importRegex matches a whole trimmed line holding a single @import or @use with a quoted reference.
var importRegex = regexp.MustCompile(`^@(?:import|use) ['"]([^"']+)['"];$`)

const byteOrderMark = "\uFEFF"

// scanReferences returns the local import references of a stylesheet in source order.
// Lines end at "\n", "\r" or "\r\n". External URLs are skipped.
func scanReferences(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(scanLines)

	var refs []string
	first := true
	for scanner.Scan() {
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return nil, domain.ErrMalformedSource
		}

		text := string(line)
		if first {
			text = strings.TrimPrefix(text, byteOrderMark)
			first = false
		}

		m := importRegex.FindStringSubmatch(strings.TrimSpace(text))
		if m == nil || domain.IsExternalReference(m[1]) {
			continue
		}
		refs = append(refs, m[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrFileReadFailed.Error())
	}
	return refs, nil
}

// scanLines is a bufio.SplitFunc that treats "\n", "\r" and "\r\n" as line terminators.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// A "\n" may follow in the next chunk.
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
