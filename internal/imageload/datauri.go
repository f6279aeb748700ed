package imageload

import (
	"encoding/base64"
	"strings"
)

const base64Marker = ";base64,"

// DataURI encodes b as "data:<mediaType>;base64,<payload>".
func DataURI(mediaType string, b []byte) string {
	var sb strings.Builder
	sb.Grow(len("data:") + len(mediaType) + len(base64Marker) + base64.StdEncoding.EncodedLen(len(b)))
	sb.WriteString("data:")
	sb.WriteString(mediaType)
	sb.WriteString(base64Marker)
	sb.WriteString(base64.StdEncoding.EncodeToString(b))
	return sb.String()
}

// IsImageDataURI reports whether s is a base64 data URI with an image/*
// media type, i.e. something safe to place in an <img src>.
func IsImageDataURI(s string) bool {
	rest, ok := strings.CutPrefix(s, "data:image/")
	if !ok {
		return false
	}
	i := strings.Index(rest, base64Marker)
	return i > 0 && !strings.ContainsAny(rest[:i], "\"'<> ")
}

// DecodedLen returns the byte length of the photo carried by a base64 data
// URI, or 0 when s is not one or its payload is corrupt.
func DecodedLen(s string) int {
	if !strings.HasPrefix(s, "data:") {
		return 0
	}
	_, payload, ok := strings.Cut(s, base64Marker)
	if !ok {
		return 0
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return 0
	}
	return len(b)
}
