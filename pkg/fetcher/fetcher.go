// Package fetcher abstracts how pool and tick array accounts are loaded so
// the quoting and routing packages never depend on an RPC client directly.
// Production callers wire in their own implementation (an RPC-backed
// fetcher with an account cache); Static exists for tests and examples that
// need deterministic, already-known pool state.
package fetcher

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
)

// Fetcher loads the on-chain state a quote or route needs.
type Fetcher interface {
	// ListPools returns every pool known to the fetcher, e.g. as the pool set
	// a caller passes to graph.Build to make the walks the router searches.
	// The router itself only calls ListTickArrays.
	ListPools(ctx context.Context) ([]*whirlpool.Pool, error)

	// GetPool returns a single pool by address, or ErrPoolNotFound.
	GetPool(ctx context.Context, address solana.PublicKey) (*whirlpool.Pool, error)

	// ListTickArrays returns the tick arrays for a pool that are currently
	// loaded, in no particular order. A swap walking past the edge of what
	// this returns surfaces ErrInsufficientTickArrays rather than having
	// the fetcher silently page in more data.
	ListTickArrays(ctx context.Context, poolAddress solana.PublicKey) ([]*whirlpool.TickArrayAccount, error)
}

// Static is an in-memory Fetcher over a fixed snapshot, useful for tests,
// examples, and any caller that already has pool state in hand (e.g. from a
// prior batched RPC call) and wants to quote against it without the
// fetcher reaching back out to the network mid-route.
type Static struct {
	pools      map[solana.PublicKey]*whirlpool.Pool
	tickArrays map[solana.PublicKey][]*whirlpool.TickArrayAccount
}

// NewStatic builds a Static fetcher from decoded pools and their tick
// arrays, keyed by pool address.
func NewStatic(pools []*whirlpool.Pool, tickArrays map[solana.PublicKey][]*whirlpool.TickArrayAccount) *Static {
	s := &Static{
		pools:      make(map[solana.PublicKey]*whirlpool.Pool, len(pools)),
		tickArrays: make(map[solana.PublicKey][]*whirlpool.TickArrayAccount, len(tickArrays)),
	}
	for _, p := range pools {
		s.pools[p.Address] = p
	}
	for addr, arrays := range tickArrays {
		s.tickArrays[addr] = arrays
	}
	return s
}

func (s *Static) ListPools(_ context.Context) ([]*whirlpool.Pool, error) {
	out := make([]*whirlpool.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		out = append(out, p)
	}
	return out, nil
}

func (s *Static) GetPool(_ context.Context, address solana.PublicKey) (*whirlpool.Pool, error) {
	p, ok := s.pools[address]
	if !ok {
		return nil, clammerr.ErrPoolNotFound
	}
	return p, nil
}

func (s *Static) ListTickArrays(_ context.Context, poolAddress solana.PublicKey) ([]*whirlpool.TickArrayAccount, error) {
	arrays, ok := s.tickArrays[poolAddress]
	if !ok {
		return nil, nil
	}
	return arrays, nil
}
