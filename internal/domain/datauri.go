package domain

import (
	"encoding/base64"
	"strings"
)

// StripDataURIPrefix returns the payload after a "data:<mime>;base64," header.
// Input without a header is returned unchanged.
func StripDataURIPrefix(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return s
}

// DataURIMediaType returns the declared media type of a data URI, or "" if s is not one
func DataURIMediaType(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return ""
	}
	header, _, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return ""
	}
	mediaType, _, _ := strings.Cut(header, ";")
	return mediaType
}

// EncodeDataURI wraps raw bytes as a base64 data URI
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
