package updater

import "testing"

func TestIsJSON(t *testing.T) {
	if !isJSON([]byte(`{"a": 1}`)) {
		t.Fatal("want valid JSON object recognized")
	}
	if isJSON([]byte("not json")) {
		t.Fatal("want invalid JSON rejected")
	}
	if isJSON(nil) {
		t.Fatal("want empty body rejected")
	}
}

func TestMinifyJSON(t *testing.T) {
	got := minifyJSON([]byte(`{ "a" :  1 ,"b":[1,2, 3] }`))
	want := `{"a":1,"b":[1,2,3]}`
	if got != want {
		t.Fatalf("minifyJSON() = %q, want %q", got, want)
	}
}

func TestIsTextContentType(t *testing.T) {
	cases := map[string]bool{
		"text/plain":             true,
		"text/plain;charset=utf-8": true,
		"application/json":       true,
		"application/json;charset=utf-8": true,
		"image/png":              false,
		"":                       false,
	}
	for ct, want := range cases {
		if got := isTextContentType(ct); got != want {
			t.Errorf("isTextContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}

func TestStripWhitespace(t *testing.T) {
	if got := stripWhitespace("a b\tc\nd"); got != "abcd" {
		t.Fatalf("stripWhitespace() = %q", got)
	}
}

func TestContentHashSkipsResourceIntensiveTypes(t *testing.T) {
	if got := contentHash("video/mp4", []byte("anything")); got != "" {
		t.Fatalf("contentHash(video/mp4) = %q, want empty", got)
	}
}

func TestContentHashNormalizesText(t *testing.T) {
	a := contentHash("text/plain;charset=utf-8", []byte("hello world"))
	b := contentHash("text/plain;charset=utf-8", []byte("hello   world\n"))
	if a != b {
		t.Fatalf("contentHash should ignore whitespace differences for text content: %q != %q", a, b)
	}
	if a == "" {
		t.Fatal("want non-empty hash for text content")
	}
}

func TestContentHashDistinguishesBinary(t *testing.T) {
	a := contentHash("image/png", []byte{0x01, 0x02})
	b := contentHash("image/png", []byte{0x02, 0x01})
	if a == b {
		t.Fatal("want distinct hashes for distinct binary content")
	}
}
