package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketContentTypeToCount           = []byte("content_type_to_count")
	bucketHomeInscriptions             = []byte("home_inscriptions")
	bucketIDToSequenceNumber           = []byte("id_to_sequence_number")
	bucketInscriptionNumberToSequence  = []byte("inscription_number_to_sequence_number")
	bucketOutpointToValue              = []byte("outpoint_to_value")
	bucketTransactionIDToTransaction   = []byte("transaction_id_to_transaction")
	bucketSatToSequenceNumber          = []byte("sat_to_sequence_number")
	bucketSatpointToSequenceNumber     = []byte("satpoint_to_sequence_number")
	bucketSequenceNumberToChildren     = []byte("sequence_number_to_children")
	bucketSequenceNumberToEntry        = []byte("sequence_number_to_entry")
	bucketSequenceNumberToSatpoint     = []byte("sequence_number_to_satpoint")

	allBuckets = [][]byte{
		bucketContentTypeToCount,
		bucketHomeInscriptions,
		bucketIDToSequenceNumber,
		bucketInscriptionNumberToSequence,
		bucketOutpointToValue,
		bucketTransactionIDToTransaction,
		bucketSatToSequenceNumber,
		bucketSatpointToSequenceNumber,
		bucketSequenceNumberToChildren,
		bucketSequenceNumberToEntry,
		bucketSequenceNumberToSatpoint,
	}
)

// Store is the bbolt-backed persistence layer for one chain folder,
// one *bolt.DB per folder, following node/store/db.go's DB type.
type Store struct {
	chainDir string
	db       *bolt.DB
	manifest *Manifest
}

// Open opens (creating if absent) the store for chainFolder under
// datadir, creates every table bucket if missing, and loads the
// manifest if one already exists.
func Open(datadir, chainFolder string) (*Store, error) {
	if datadir == "" {
		return nil, fmt.Errorf("store: datadir required")
	}
	if chainFolder == "" {
		return nil, fmt.Errorf("store: chain_folder required")
	}

	chainDir := ChainDir(datadir, chainFolder)
	if err := ensureDir(chainDir); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Join(chainDir, "db")); err != nil {
		return nil, err
	}

	path := filepath.Join(chainDir, "db", "index.db")
	bdb, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open bbolt: %w", err)
	}

	s := &Store{chainDir: chainDir, db: bdb}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("store: create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = bdb.Close()
		return nil, err
	}

	m, err := readManifest(chainDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.manifest = &Manifest{SchemaVersion: SchemaVersionV1, ChainFolder: chainFolder, LastIndexedHeight: -1}
			return s, nil
		}
		_ = bdb.Close()
		return nil, fmt.Errorf("store: read manifest: %w", err)
	}
	if m.SchemaVersion > SchemaVersionV1 {
		_ = bdb.Close()
		return nil, fmt.Errorf("store: manifest schema_version %d > supported %d", m.SchemaVersion, SchemaVersionV1)
	}
	s.manifest = m
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ChainDir() string { return s.chainDir }

func (s *Store) Manifest() *Manifest { return s.manifest }

func (s *Store) SetManifest(m *Manifest) error {
	if s == nil {
		return fmt.Errorf("store: nil")
	}
	if err := writeManifestAtomic(s.chainDir, m); err != nil {
		return err
	}
	s.manifest = m
	return nil
}

// Update runs fn inside one read-write bbolt transaction, the unit of
// atomicity the updater uses per block (spec.md §4.4/§5).
func (s *Store) Update(fn func(*Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// View runs fn inside one read-only bbolt transaction.
func (s *Store) View(fn func(*Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}
