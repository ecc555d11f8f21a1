package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SchemaVersionV1 is the only schema version this store understands,
// mirroring node/store/manifest.go's version gate.
const SchemaVersionV1 uint32 = 1

// Manifest is the crash-safe commit point recording how far the
// indexer has persisted: the §6 "resume at max(persisted height)+1"
// contract reads LastIndexedHeight directly.
type Manifest struct {
	SchemaVersion     uint32 `json:"schema_version"`
	ChainFolder       string `json:"chain_folder"`
	LastIndexedHeight int64  `json:"last_indexed_height"` // -1 before the first block
	BlessedCount      int64  `json:"blessed_count"`
	CursedCount       int64  `json:"cursed_count"`
	NextSequenceNum   uint32 `json:"next_sequence_number"`
	LostSats          uint64 `json:"lost_sats"`
	UnboundCount      uint64 `json:"unbound_count"`
}

func manifestPath(chainDir string) string {
	return filepath.Join(chainDir, "MANIFEST.json")
}

func readManifest(chainDir string) (*Manifest, error) {
	b, err := os.ReadFile(manifestPath(chainDir))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("store: manifest json: %w", err)
	}
	return &m, nil
}

// writeManifestAtomic writes MANIFEST.json write-temp/fsync/rename/fsync-dir,
// matching node/store/manifest.go's durability sequence.
func writeManifestAtomic(chainDir string, m *Manifest) error {
	if m == nil {
		return fmt.Errorf("store: manifest: nil")
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("store: manifest json: %w", err)
	}
	b = append(b, '\n')

	final := manifestPath(chainDir)
	tmp := final + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600) // #nosec G304 -- tmp path derived from operator-controlled datadir.
	if err != nil {
		return fmt.Errorf("store: manifest open tmp: %w", err)
	}
	_, werr := f.Write(b)
	serr := f.Sync()
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("store: manifest write tmp: %w", werr)
	}
	if serr != nil {
		return fmt.Errorf("store: manifest fsync tmp: %w", serr)
	}
	if cerr != nil {
		return fmt.Errorf("store: manifest close tmp: %w", cerr)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("store: manifest rename: %w", err)
	}

	d, err := os.Open(chainDir) // #nosec G304 -- chainDir derived from operator-controlled datadir.
	if err != nil {
		return fmt.Errorf("store: manifest fsync dir open: %w", err)
	}
	if err := d.Sync(); err != nil {
		_ = d.Close()
		return fmt.Errorf("store: manifest fsync dir: %w", err)
	}
	return d.Close()
}
