package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// ChainDir returns the on-disk directory for a given chain folder under
// datadir, following node/store/paths.go's datadir/chains/<name>/ layout.
func ChainDir(datadir, chainFolder string) string {
	return filepath.Join(datadir, "chains", chainFolder)
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", path, err)
	}
	return nil
}
