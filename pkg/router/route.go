package router

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/fetcher"
	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/johnayoung/go-clamm-router/pkg/graph"
	"github.com/johnayoung/go-clamm-router/pkg/quote"
	"github.com/johnayoung/go-clamm-router/pkg/tickarray"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
)

// Hop is one pool traversal within a route, oriented so AToB reflects the
// direction that pool must swap in to move from InputMint toward the
// route's final output mint.
type Hop struct {
	Pool *whirlpool.Pool
	AToB bool
}

// InputMint returns the mint this hop consumes.
func (h Hop) InputMint() solana.PublicKey { return h.Pool.InputMint(h.AToB) }

// OutputMint returns the mint this hop produces.
func (h Hop) OutputMint() solana.PublicKey { return h.Pool.OutputMint(h.AToB) }

// Route is an ordered sequence of hops from one mint to another.
type Route struct {
	Hops []Hop
}

// PoolAddresses returns the pool address of every hop, in order.
func (r Route) PoolAddresses() []solana.PublicKey {
	addrs := make([]solana.PublicKey, len(r.Hops))
	for i, h := range r.Hops {
		addrs[i] = h.Pool.Address
	}
	return addrs
}

// discoverRoutes enumerates simple (no repeated pool) paths from inputMint
// to outputMint up to maxHops long, walking forward from inputMint and
// orienting each hop's pool so its AToB flag matches the direction of travel
// (component F's route-orientation step: a hop's input/output is assigned
// relative to the mint the walk arrives with, not the pool's own token A/B
// order).
func discoverRoutes(walks graph.Walks, inputMint, outputMint solana.PublicKey, maxHops int) []Route {
	var routes []Route
	visited := make(map[solana.PublicKey]bool)

	var walk func(current solana.PublicKey, hops []Hop)
	walk = func(current solana.PublicKey, hops []Hop) {
		if current.Equals(outputMint) && len(hops) > 0 {
			routes = append(routes, Route{Hops: append([]Hop(nil), hops...)})
			return
		}
		if len(hops) >= maxHops {
			return
		}
		for _, edge := range walks.HopsFrom(current) {
			if visited[edge.Pool.Address] {
				continue
			}
			aToB, err := edge.Pool.OrientationForInput(current)
			if err != nil {
				continue
			}
			next := edge.Pool.OutputMint(aToB)
			visited[edge.Pool.Address] = true
			walk(next, append(hops, Hop{Pool: edge.Pool, AToB: aToB}))
			delete(visited, edge.Pool.Address)
		}
	}

	walk(inputMint, nil)
	return routes
}

// quoteRoute simulates route hop by hop and returns the route's amountIn,
// amountOut, and the otherAmountThreshold of whichever hop anchors the
// whole route's transaction-level slippage bound.
//
// When amountSpecifiedIsInput, hops run forward (0..n): specifiedAmount is
// the route's input, each hop's output feeds the next, and the threshold
// is the last hop's (a minimum acceptable output). Otherwise hops run in
// reverse (n..0): specifiedAmount is the route's desired output, each
// hop's required input becomes the previous hop's desired output, and the
// threshold comes from the first hop (a maximum acceptable input) — the
// hop iteration order spec.md prescribes for output-specified routing.
func quoteRoute(ctx context.Context, f fetcher.Fetcher, route Route, specifiedAmount uint64, amountSpecifiedIsInput bool, slippage fixedpoint.Slippage) (amountIn uint64, amountOut uint64, otherAmountThreshold uint64, err error) {
	hops := route.Hops
	if !amountSpecifiedIsInput {
		hops = reversedHops(hops)
	}

	current := specifiedAmount
	var lastThreshold uint64

	for _, hop := range hops {
		arrays, err := f.ListTickArrays(ctx, hop.Pool.Address)
		if err != nil {
			return 0, 0, 0, err
		}
		seq := tickarray.NewSequence(toTickArraySlice(arrays))

		q, err := quote.ComputeSwapQuote(quote.SwapParams{
			Pool:                   hop.Pool,
			Ticks:                  seq,
			AToB:                   hop.AToB,
			AmountSpecifiedIsInput: amountSpecifiedIsInput,
			Amount:                 current,
			Slippage:               slippage,
		})
		if err != nil {
			return 0, 0, 0, err
		}
		if amountSpecifiedIsInput {
			current = q.AmountOut
		} else {
			current = q.AmountIn
		}
		lastThreshold = q.OtherAmountThreshold
	}

	if amountSpecifiedIsInput {
		return specifiedAmount, current, lastThreshold, nil
	}
	return current, specifiedAmount, lastThreshold, nil
}

func reversedHops(hops []Hop) []Hop {
	reversed := make([]Hop, len(hops))
	for i, h := range hops {
		reversed[len(hops)-1-i] = h
	}
	return reversed
}

func toTickArraySlice(accounts []*whirlpool.TickArrayAccount) []*tickarray.TickArray {
	arrays := make([]*tickarray.TickArray, len(accounts))
	for i, a := range accounts {
		arrays[i] = a.Array
	}
	return arrays
}
