package chain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
)

// Block is the {height, timestamp, transactions} triple spec.md §6
// says the core consumes, one per indexed block.
type Block struct {
	Height       uint64
	Timestamp    uint32
	Transactions []*wire.MsgTx
}

// BlockSource fetches blocks by height from a chain RPC node, wrapping
// github.com/btcsuite/btcd/rpcclient the way the leanlp-BTC-coinjoin
// example's internal/bitcoin/client.go wraps it for GetBlockHash/GetBlock.
type BlockSource struct {
	rpc *rpcclient.Client
}

// NewBlockSource connects to a chain RPC node at cfg.
func NewBlockSource(cfg *rpcclient.ConnConfig) (*BlockSource, error) {
	client, err := rpcclient.New(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: connect rpc: %w", err)
	}
	return &BlockSource{rpc: client}, nil
}

// Shutdown closes the underlying RPC connection.
func (s *BlockSource) Shutdown() {
	s.rpc.Shutdown()
}

// BlockAt fetches the block at height, translating it into the triple
// the updater consumes.
func (s *BlockSource) BlockAt(height int64) (*Block, error) {
	hash, err := s.rpc.GetBlockHash(height)
	if err != nil {
		return nil, fmt.Errorf("chain: get block hash at %d: %w", height, err)
	}
	return s.BlockByHash(hash)
}

// BlockByHash fetches the block identified by hash.
func (s *BlockSource) BlockByHash(hash *chainhash.Hash) (*Block, error) {
	blk, err := s.rpc.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("chain: get block %s: %w", hash, err)
	}
	txs := make([]*wire.MsgTx, len(blk.Transactions))
	for i, tx := range blk.Transactions {
		txs[i] = tx
	}
	return &Block{
		Timestamp:    uint32(blk.Header.Timestamp.Unix()),
		Transactions: txs,
	}, nil
}

// TipHeight returns the chain's current best height.
func (s *BlockSource) TipHeight() (int64, error) {
	return s.rpc.GetBlockCount()
}
