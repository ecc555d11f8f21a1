package envelope

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

func buildWitness(t *testing.T, fields map[Tag][]byte, body []byte) wire.TxWitness {
	t.Helper()
	b := txscript.NewScriptBuilder()
	b.AddOp(txscript.OP_FALSE)
	b.AddOp(txscript.OP_IF)
	b.AddData([]byte(Protocol))
	for tag, value := range fields {
		b.AddData([]byte{byte(tag)})
		b.AddData(value)
	}
	b.AddOp(txscript.OP_0)
	b.AddData(body)
	b.AddOp(txscript.OP_ENDIF)
	script, err := b.Script()
	if err != nil {
		t.Fatalf("build script: %v", err)
	}
	controlBlock := bytes.Repeat([]byte{0xc0}, 33)
	return wire.TxWitness{script, controlBlock}
}

func TestParseWitnessBasic(t *testing.T) {
	w := buildWitness(t, map[Tag][]byte{
		TagContentType: []byte("text/plain"),
	}, []byte("hello"))

	envs := parseWitness(w)
	if len(envs) != 1 {
		t.Fatalf("got %d envelopes, want 1", len(envs))
	}
	env := envs[0]
	if string(env.ContentType) != "text/plain" {
		t.Fatalf("content type=%q", env.ContentType)
	}
	if string(env.Body) != "hello" {
		t.Fatalf("body=%q", env.Body)
	}
	if env.UnrecognizedEvenField || env.DuplicateField || env.IncompleteField {
		t.Fatalf("unexpected flags: %+v", env)
	}
}

func TestParseWitnessUnrecognizedEvenField(t *testing.T) {
	w := buildWitness(t, map[Tag][]byte{
		TagContentType: []byte("text/plain"),
		Tag(20):        []byte("x"),
	}, nil)

	envs := parseWitness(w)
	if len(envs) != 1 {
		t.Fatalf("got %d envelopes, want 1", len(envs))
	}
	if !envs[0].UnrecognizedEvenField {
		t.Fatal("want UnrecognizedEvenField")
	}
}

func TestParseWitnessPointer(t *testing.T) {
	w := buildWitness(t, map[Tag][]byte{
		TagPointer: {0x01, 0x02},
	}, nil)

	envs := parseWitness(w)
	if len(envs) != 1 {
		t.Fatalf("got %d envelopes, want 1", len(envs))
	}
	if envs[0].Pointer == nil || *envs[0].Pointer != 0x0201 {
		t.Fatalf("pointer=%v", envs[0].Pointer)
	}
}

func TestParseWitnessNoEnvelope(t *testing.T) {
	b := txscript.NewScriptBuilder()
	b.AddOp(txscript.OP_1)
	script, err := b.Script()
	if err != nil {
		t.Fatalf("build script: %v", err)
	}
	w := wire.TxWitness{script, bytes.Repeat([]byte{0xc0}, 33)}
	if envs := parseWitness(w); len(envs) != 0 {
		t.Fatalf("got %d envelopes, want 0", len(envs))
	}
}

func TestParseWitnessKeyPathSpendNoScript(t *testing.T) {
	w := wire.TxWitness{bytes.Repeat([]byte{0x01}, 64)}
	if envs := parseWitness(w); envs != nil {
		t.Fatalf("got %v, want nil", envs)
	}
}

func TestHiddenContentType(t *testing.T) {
	cases := []struct {
		ct   string
		want bool
	}{
		{"", true},
		{"audio/mpeg", true},
		{"video/mp4", true},
		{"text/plain", false},
		{"image/png", false},
	}
	for _, c := range cases {
		if got := isHiddenContentType(c.ct); got != c.want {
			t.Fatalf("isHiddenContentType(%q)=%v, want %v", c.ct, got, c.want)
		}
	}
}

func TestDecodeMetadataEmpty(t *testing.T) {
	v, err := DecodeMetadata(nil)
	if err != nil || v != nil {
		t.Fatalf("DecodeMetadata(nil)=%v,%v want nil,nil", v, err)
	}
}
