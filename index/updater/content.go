package updater

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
)

// isJSON reports whether body parses as JSON, mirroring
// get_json_tx_limit's use of serde_json::from_slice as a validity
// check rather than an actual limit lookup.
func isJSON(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	return json.Valid(body)
}

// minifyJSON reserializes body without insignificant whitespace, the
// Go equivalent of parsing to serde_json::Value and reserializing.
func minifyJSON(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	out, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}

// isTextContentType reports whether contentType is plain text or JSON
// text, the two content types the original treats identically to text
// when stripping whitespace for the stored content line.
func isTextContentType(contentType string) bool {
	return contentType == "text/plain" ||
		strings.HasPrefix(contentType, "text/plain;") ||
		contentType == "application/json" ||
		strings.HasPrefix(contentType, "application/json;")
}

// stripWhitespace removes every Unicode whitespace rune from s,
// matching the original's String::replace(char::is_whitespace, "").
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// resourceIntensiveContentTypes are skipped when computing the sha3-256
// content hash, the same exclusion list the original hardcodes to
// avoid hashing large media payloads on every reveal.
var resourceIntensiveContentTypes = map[string]bool{
	"video/mp4":  true,
	"video/mpeg": true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

// contentHash returns the hex sha3-256 digest of body, normalized by
// stripping whitespace first when contentType names a UTF-8 text
// format, or "" if contentType is one of the resource-intensive types
// the original skips hashing for.
func contentHash(contentType string, body []byte) string {
	if resourceIntensiveContentTypes[contentType] {
		return ""
	}
	normalized := body
	if strings.Contains(contentType, "utf-8") || strings.Contains(contentType, "text") {
		normalized = []byte(stripWhitespace(string(body)))
	}
	sum := sha3.Sum256(normalized)
	return hex.EncodeToString(sum[:])
}
