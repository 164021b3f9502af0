package adif

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat indicates that required structural marker is absent.
var ErrFormat = errors.New("invalid ADIF format")

const (
	markerEOH = "<eoh>"
	markerEOR = "<eor>"
)

// Chunk is a raw record body together with the end-of-record marker exactly as
// it was spelled in the source. Marker is empty for trailing text which was not
// terminated.
type Chunk struct {
	Body   string
	Marker string
}

// SplitHeader separates header (everything before the first <EOH>, any case)
// from the rest of the text.
func SplitHeader(text string) (header, rest string, err error) {
	i := indexMarker(text, markerEOH)
	if i < 0 {
		return "", "", fmt.Errorf("%w: missing <EOH>", ErrFormat)
	}
	return text[:i], text[i+len(markerEOH):], nil
}

// SplitRecords breaks text into record bodies on <EOR> markers regardless of
// their case. Blank bodies are dropped, order is preserved.
func SplitRecords(text string) []Chunk {
	var chunks []Chunk
	for rest := text; len(rest) > 0; {
		i := indexMarker(rest, markerEOR)
		if i < 0 {
			if strings.TrimSpace(rest) != "" {
				chunks = append(chunks, Chunk{Body: rest})
			}
			break
		}
		if body := rest[:i]; strings.TrimSpace(body) != "" {
			chunks = append(chunks, Chunk{Body: body, Marker: rest[i : i+len(markerEOR)]})
		}
		rest = rest[i+len(markerEOR):]
	}
	return chunks
}

// indexMarker returns index of the first case-insensitive occurrence of
// marker in s or -1. Marker must start with '<'.
func indexMarker(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); {
		next := strings.IndexByte(s[i:], '<')
		if next < 0 {
			return -1
		}
		i += next
		if i+len(marker) > len(s) {
			return -1
		}
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
		i++
	}
	return -1
}
