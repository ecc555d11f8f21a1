package events

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rubin.dev/node/envelope"
	"rubin.dev/node/index/store"
)

func TestJournalBlockStartEndOnlyWrittenWhenTouched(t *testing.T) {
	dir := t.TempDir()
	j := OpenJournal(dir)
	j.BeginBlock(10)
	if err := j.EndBlock(); err != nil {
		t.Fatalf("EndBlock: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "inscriptions.txt")); !os.IsNotExist(err) {
		t.Fatalf("journal file should not exist for an untouched block, stat err=%v", err)
	}
}

func TestJournalTransferLine(t *testing.T) {
	dir := t.TempDir()
	j := OpenJournal(dir)
	j.BeginBlock(5)
	id := envelope.InscriptionID{TxID: [32]byte{1}, Index: 0}
	old := store.SatPoint{Outpoint: store.OutPoint{TxID: [32]byte{2}, Vout: 1}, Offset: 0}
	nw := store.SatPoint{Outpoint: store.OutPoint{TxID: [32]byte{3}, Vout: 0}, Offset: 5}
	if err := j.TransferLine(5, id, old, nw, false, "", 600, "bc1qexample", 1700000000); err != nil {
		t.Fatalf("TransferLine: %v", err)
	}
	if err := j.EndBlock(); err != nil {
		t.Fatalf("EndBlock: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "inscriptions.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(b)
	if !strings.Contains(content, "cmd~||~5~||~block_start") {
		t.Fatalf("missing block_start: %q", content)
	}
	if !strings.Contains(content, "insert~||~transfer~||~inscription_id:") {
		t.Fatalf("missing transfer record: %q", content)
	}
	if !strings.Contains(content, "cmd~||~5~||~block_end") {
		t.Fatalf("missing block_end: %q", content)
	}
}

func TestJournalContentAndNumberToIDLines(t *testing.T) {
	dir := t.TempDir()
	j := OpenJournal(dir)
	j.BeginBlock(1)
	id := envelope.InscriptionID{TxID: [32]byte{9}, Index: 0}
	if err := j.ContentLine(ContentRecord{
		Height:            1,
		InscriptionNumber: -1,
		InscriptionID:     id,
		ContentType:       "text/plain",
		Content:           "hello",
		Charms:            1,
	}); err != nil {
		t.Fatalf("ContentLine: %v", err)
	}
	if err := j.NumberToIDLine(1, -1, id, nil); err != nil {
		t.Fatalf("NumberToIDLine: %v", err)
	}
	if err := j.EndBlock(); err != nil {
		t.Fatalf("EndBlock: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "inscriptions.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(b)
	if !strings.Contains(content, "insert~||~content~||~inscription_number:-1") {
		t.Fatalf("missing content record: %q", content)
	}
	if !strings.Contains(content, "insert~||~number_to_id~||~-1~||~") {
		t.Fatalf("missing number_to_id record: %q", content)
	}
}
