package chain

import (
	"context"
	"fmt"

	"rubin.dev/node/index/store"
)

// ValueProvider resolves a spent outpoint's value when neither the
// updater's in-memory cache nor the outpoint_to_value table has seen
// it yet — the "Suspension points" blocking-receive fallback noted in
// spec.md §5.
type ValueProvider interface {
	// Value blocks until the value for op is available or ctx is
	// done. It returns an error if the fetch ultimately fails; per
	// spec.md §7 that error is fatal to the block.
	Value(ctx context.Context, op store.OutPoint) (uint64, error)
}

// ValueRequest is one pending lookup handed to whatever goroutine
// services a ChannelFetcher's requests.
type ValueRequest struct {
	Op       store.OutPoint
	response chan<- valueResponse
}

// Respond satisfies the request with either a value or an error,
// unblocking the matching Value call.
func (r ValueRequest) Respond(value uint64, err error) {
	r.response <- valueResponse{value: value, err: err}
}

type valueResponse struct {
	value uint64
	err   error
}

// ChannelFetcher implements ValueProvider over a channel of
// ValueRequest, the explicit, mockable stand-in for "a blocking
// receive from an external fetcher channel" in spec.md §4.5 step A.3.
type ChannelFetcher struct {
	requests chan ValueRequest
}

// NewChannelFetcher returns a ChannelFetcher backed by a request
// channel of the given buffer size. A caller-owned goroutine drains
// Requests() and calls Respond on each one.
func NewChannelFetcher(buffer int) *ChannelFetcher {
	return &ChannelFetcher{requests: make(chan ValueRequest, buffer)}
}

// Requests returns the channel the servicing goroutine reads from.
func (c *ChannelFetcher) Requests() <-chan ValueRequest {
	return c.requests
}

// Value sends op as a request and blocks for the reply, respecting ctx
// cancellation on both legs.
func (c *ChannelFetcher) Value(ctx context.Context, op store.OutPoint) (uint64, error) {
	resp := make(chan valueResponse, 1)
	req := ValueRequest{Op: op, response: resp}

	select {
	case c.requests <- req:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	select {
	case r := <-resp:
		if r.err != nil {
			return 0, fmt.Errorf("chain: value fetch: %w", r.err)
		}
		return r.value, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
