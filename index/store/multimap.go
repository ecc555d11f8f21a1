package store

import (
	"bytes"

	bolt "go.etcd.io/bbolt"
)

// Multimap tables are modeled as a bucket keyed by key||value with a
// zero-length stored value, scanned with a prefix cursor — the same
// composite-key-in-a-single-bucket idiom node/store/db.go uses for its
// utxo_by_outpoint bucket keyed by txid||vout.

func multimapInsert(b *bolt.Bucket, key, value []byte) error {
	composite := append(append([]byte(nil), key...), value...)
	return b.Put(composite, []byte{})
}

func multimapRemoveAllForKey(b *bolt.Bucket, key []byte) error {
	c := b.Cursor()
	var toDelete [][]byte
	for k, _ := c.Seek(key); k != nil && bytes.HasPrefix(k, key); k, _ = c.Next() {
		toDelete = append(toDelete, append([]byte(nil), k...))
	}
	for _, k := range toDelete {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// multimapValuesForKey returns every value-suffix stored under key,
// each of fixed width valueLen.
func multimapValuesForKey(b *bolt.Bucket, key []byte, valueLen int) [][]byte {
	c := b.Cursor()
	var out [][]byte
	for k, _ := c.Seek(key); k != nil && bytes.HasPrefix(k, key); k, _ = c.Next() {
		if len(k) != len(key)+valueLen {
			continue
		}
		out = append(out, append([]byte(nil), k[len(key):]...))
	}
	return out
}
