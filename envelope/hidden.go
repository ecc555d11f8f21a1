package envelope

import "strings"

// audioVideoPrefixes are content-type prefixes excluded from the
// curated home-page listing because they can autoplay or are large
// media best viewed from the inscription's own page.
var audioVideoPrefixes = []string{
	"audio/",
	"video/",
}

// isHiddenContentType reports whether contentType should be excluded
// from home_inscriptions: audio/video media, or an empty type (handled
// by the caller before reaching here).
func isHiddenContentType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return true
	}
	for _, prefix := range audioVideoPrefixes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}
