package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btcd/rpcclient"

	"rubin.dev/node/chain"
	"rubin.dev/node/index/events"
	"rubin.dev/node/index/store"
	"rubin.dev/node/index/updater"
	"rubin.dev/node/indexcfg"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := indexcfg.DefaultConfig()
	cfg := defaults

	fs := flag.NewFlagSet("ord-indexer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Network, "network", defaults.Network, "network name (mainnet/testnet3/signet/regtest)")
	fs.StringVar(&cfg.DataDir, "datadir", defaults.DataDir, "indexer data directory")
	fs.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&cfg.RPCHost, "rpc-host", defaults.RPCHost, "chain RPC host:port")
	fs.StringVar(&cfg.RPCUser, "rpc-user", defaults.RPCUser, "chain RPC username")
	fs.StringVar(&cfg.RPCPass, "rpc-pass", defaults.RPCPass, "chain RPC password")
	fs.Int64Var(&cfg.FromHeight, "from-height", defaults.FromHeight, "height to resume indexing from (-1 = resume after last persisted height)")
	indexTransactions := fs.Bool("index-transactions", false, "store raw transaction bytes for every transaction carrying an inscription envelope")
	dryRun := fs.Bool("dry-run", false, "print effective config and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := indexcfg.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	params, err := chain.ByName(cfg.Network)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		fmt.Fprintf(stderr, "datadir create failed: %v\n", err)
		return 2
	}

	fmt.Fprintf(stdout, "ord-indexer: network=%s datadir=%s log_level=%s rpc_host=%s from_height=%d\n",
		cfg.Network, cfg.DataDir, cfg.LogLevel, cfg.RPCHost, cfg.FromHeight)
	if *dryRun {
		return 0
	}

	s, err := store.Open(cfg.DataDir, params.Folder())
	if err != nil {
		fmt.Fprintf(stderr, "store open failed: %v\n", err)
		return 2
	}
	defer s.Close()

	journal := events.OpenJournal(s.ChainDir())
	defer journal.Close()

	emitter := events.NewEmitter()

	src, err := chain.NewBlockSource(&rpcclient.ConnConfig{
		Host:         cfg.RPCHost,
		User:         cfg.RPCUser,
		Pass:         cfg.RPCPass,
		HTTPPostMode: true,
		DisableTLS:   true,
	})
	if err != nil {
		fmt.Fprintf(stderr, "rpc connect failed: %v\n", err)
		return 2
	}
	defer src.Shutdown()

	values := chain.NewChannelFetcher(16)
	go serviceValueRequests(values, src)

	u := updater.NewUpdater(s, emitter, journal, params, values)
	u.IndexTransactions = *indexTransactions

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	height := cfg.FromHeight
	if height < 0 {
		height = s.Manifest().LastIndexedHeight + 1
	}

	if err := indexLoop(ctx, stdout, u, src, height); err != nil {
		fmt.Fprintf(stderr, "indexing stopped: %v\n", err)
		return 1
	}
	return 0
}

// indexLoop drives the updater forward from height until the chain's
// tip is reached or ctx is cancelled, logging one line per block the
// way the teacher's cmd/rubin-node/main.go logs one line per mined
// block.
func indexLoop(ctx context.Context, stdout io.Writer, u *updater.Updater, src *chain.BlockSource, height int64) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		tip, err := src.TipHeight()
		if err != nil {
			return fmt.Errorf("get tip height: %w", err)
		}
		if height > tip {
			return nil
		}

		blk, err := src.BlockAt(height)
		if err != nil {
			return fmt.Errorf("fetch block %d: %w", height, err)
		}
		blk.Height = uint64(height)

		if err := u.IndexBlock(ctx, blk); err != nil {
			return fmt.Errorf("index block %d: %w", height, err)
		}
		log.Printf("[Updater] height=%d txs=%d", height, len(blk.Transactions))
		_, _ = fmt.Fprintf(stdout, "indexed: height=%d txs=%d\n", height, len(blk.Transactions))

		height++
	}
}

// serviceValueRequests is the caller-owned goroutine the
// chain.ChannelFetcher doc comment calls for. It does not query src:
// every request is answered with an error, so an outpoint missing from
// the updater's cache and the outpoint_to_value table fails the block.
func serviceValueRequests(values *chain.ChannelFetcher, src *chain.BlockSource) {
	for req := range values.Requests() {
		req.Respond(0, fmt.Errorf("ord-indexer: value for unseen outpoint %x:%d not resolvable from rpc block source", req.Op.TxID, req.Op.Vout))
	}
}
