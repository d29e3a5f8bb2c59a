package router

import (
	"context"
	"sort"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/fetcher"
	"github.com/johnayoung/go-clamm-router/pkg/graph"
	"github.com/johnayoung/go-clamm-router/pkg/primitives"
	"github.com/sirupsen/logrus"
)

// RouteQuote is one leg of a (possibly split) result: a route, the share of
// the total trade it carries, and the amounts that share quotes to.
type RouteQuote struct {
	Route                Route
	Percent              int
	AmountIn             uint64
	AmountOut            uint64
	OtherAmountThreshold uint64
}

// SplitResult is one candidate answer: one or more disjoint legs whose
// percents sum to 100.
type SplitResult struct {
	Legs           []RouteQuote
	TotalAmountIn  uint64
	TotalAmountOut uint64
	QuotedAt       primitives.Time
}

// FindBestRoutes quotes inputMint -> outputMint for tradeAmount across the
// routes reachable in walks (built by the external pool graph builder),
// searching both single-route and split-route executions. It returns the
// ranked list of candidate split sets: the top opts.NumTopRoutes sets found
// by the percent-split combine search, merged with an always-included
// single-route 100% quote per discovered route, sorted globally by the
// objective — maximum total output when amountSpecifiedIsInput, minimum
// total input otherwise.
//
// It only ever returns an error when every candidate route failed and at
// least one of those failures was a fatal error kind (arithmetic overflow
// or divide-by-zero); route-infeasible failures (insufficient tick arrays,
// zero liquidity, no such pool) on some routes are expected in a graph this
// size and simply prune that route from consideration. When no route exists
// within opts.MaxHops, or every route is infeasible, it returns no results
// and a nil error.
func FindBestRoutes(ctx context.Context, f fetcher.Fetcher, walks graph.Walks, inputMint, outputMint solana.PublicKey, tradeAmount uint64, amountSpecifiedIsInput bool, opts Options, logger *logrus.Logger) ([]*SplitResult, error) {
	if logger == nil {
		logger = logrus.New()
	}
	log := logger.WithFields(logrus.Fields{
		"inputMint":              inputMint.String(),
		"outputMint":             outputMint.String(),
		"tradeAmount":            tradeAmount,
		"amountSpecifiedIsInput": amountSpecifiedIsInput,
	})

	routes := discoverRoutes(walks, inputMint, outputMint, opts.MaxHops)
	if len(routes) == 0 {
		return nil, nil
	}
	log.WithField("candidateRoutes", len(routes)).Debug("discovered candidate routes")

	percentQuotes := make(map[int][]RouteQuote)
	sawFatal := false

	quoteAt := func(route Route, amount uint64) (RouteQuote, error) {
		in, out, threshold, err := quoteRoute(ctx, f, route, amount, amountSpecifiedIsInput, opts.Slippage)
		if err != nil {
			return RouteQuote{}, err
		}
		return RouteQuote{Route: route, AmountIn: in, AmountOut: out, OtherAmountThreshold: threshold}, nil
	}

	for p := opts.PercentIncrement; p <= 100; p += opts.PercentIncrement {
		amount := tradeAmount * uint64(p) / 100
		var atPercent []RouteQuote
		for _, route := range routes {
			rq, err := quoteAt(route, amount)
			if err != nil {
				if clammerr.Fatal(err) {
					sawFatal = true
					log.WithError(err).WithField("percent", p).Warn("fatal error quoting route")
				} else {
					log.WithError(err).WithField("percent", p).Debug("route infeasible at this percent, skipping")
				}
				continue
			}
			rq.Percent = p
			atPercent = append(atPercent, rq)
		}
		sortByObjective(atPercent, amountSpecifiedIsInput)
		if len(atPercent) > opts.NumTopPartialQuotes {
			atPercent = atPercent[:opts.NumTopPartialQuotes]
		}
		percentQuotes[p] = atPercent
	}

	splitSets := combine(percentQuotes, 100, opts.MaxSplits, map[solana.PublicKey]bool{})
	sort.Slice(splitSets, func(i, j int) bool { return betterSplit(splitSets[i], splitSets[j], amountSpecifiedIsInput) })
	if len(splitSets) > opts.NumTopRoutes {
		splitSets = splitSets[:opts.NumTopRoutes]
	}

	for _, route := range routes {
		rq, err := quoteAt(route, tradeAmount)
		if err != nil {
			if clammerr.Fatal(err) {
				sawFatal = true
				log.WithError(err).Warn("fatal error quoting single-route baseline")
			}
			continue
		}
		rq.Percent = 100
		splitSets = append(splitSets, []RouteQuote{rq})
	}

	if len(splitSets) == 0 {
		if sawFatal {
			return nil, clammerr.ErrArithmeticOverflow
		}
		return nil, nil
	}
	sort.Slice(splitSets, func(i, j int) bool { return betterSplit(splitSets[i], splitSets[j], amountSpecifiedIsInput) })

	quotedAt := primitives.Now()
	results := make([]*SplitResult, len(splitSets))
	for i, legs := range splitSets {
		result := &SplitResult{QuotedAt: quotedAt}
		for _, leg := range legs {
			result.TotalAmountIn += leg.AmountIn
			result.TotalAmountOut += leg.AmountOut
		}
		result.Legs = legs
		results[i] = result
	}
	log.WithFields(logrus.Fields{"splitSets": len(results), "bestOut": results[0].TotalAmountOut, "bestIn": results[0].TotalAmountIn}).Info("routes found")
	return results, nil
}

// sortByObjective orders route quotes best-first for the active objective:
// greatest output when the trade amount is input-specified, smallest input
// otherwise.
func sortByObjective(rqs []RouteQuote, amountSpecifiedIsInput bool) {
	sort.Slice(rqs, func(i, j int) bool {
		if amountSpecifiedIsInput {
			return rqs[i].AmountOut > rqs[j].AmountOut
		}
		return rqs[i].AmountIn < rqs[j].AmountIn
	})
}

// combine enumerates every set of legs (drawn from percentQuotes, disjoint
// by first pool, respecting the split budget) whose percents sum exactly
// to remaining, returning every feasible split set it finds (not just the
// best) so the caller can rank and keep the top N.
func combine(percentQuotes map[int][]RouteQuote, remaining, splitsLeft int, usedFirstPool map[solana.PublicKey]bool) [][]RouteQuote {
	if remaining == 0 {
		return [][]RouteQuote{{}}
	}
	if splitsLeft == 0 {
		return nil
	}

	percents := make([]int, 0, len(percentQuotes))
	for p := range percentQuotes {
		percents = append(percents, p)
	}
	sort.Ints(percents)

	var sets [][]RouteQuote
	for _, p := range percents {
		if p > remaining {
			continue
		}
		for _, rq := range percentQuotes[p] {
			firstPool := rq.Route.Hops[0].Pool.Address
			if usedFirstPool[firstPool] {
				continue
			}
			usedFirstPool[firstPool] = true
			rest := combine(percentQuotes, remaining-p, splitsLeft-1, usedFirstPool)
			usedFirstPool[firstPool] = false

			for _, tail := range rest {
				sets = append(sets, append(append([]RouteQuote(nil), rq), tail...))
			}
		}
	}
	return sets
}

// betterSplit reports whether a should be preferred over b under the
// active objective (greatest total output, or least total input), then by
// fewer splits, then a shorter total route length (fewer hops summed
// across legs), then lexicographically smaller pool addresses.
func betterSplit(a, b []RouteQuote, amountSpecifiedIsInput bool) bool {
	if amountSpecifiedIsInput {
		if aOut, bOut := totalOut(a), totalOut(b); aOut != bOut {
			return aOut > bOut
		}
	} else {
		if aIn, bIn := totalIn(a), totalIn(b); aIn != bIn {
			return aIn < bIn
		}
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	aHops, bHops := totalHops(a), totalHops(b)
	if aHops != bHops {
		return aHops < bHops
	}
	return lexLess(a, b)
}

func totalOut(legs []RouteQuote) uint64 {
	var sum uint64
	for _, l := range legs {
		sum += l.AmountOut
	}
	return sum
}

func totalIn(legs []RouteQuote) uint64 {
	var sum uint64
	for _, l := range legs {
		sum += l.AmountIn
	}
	return sum
}

func totalHops(legs []RouteQuote) int {
	n := 0
	for _, l := range legs {
		n += len(l.Route.Hops)
	}
	return n
}

// lexLess compares two leg sets by their pool addresses in sorted order,
// byte-lexicographically, the router's final deterministic tie-break.
func lexLess(a, b []RouteQuote) bool {
	aAddrs := flattenSortedAddresses(a)
	bAddrs := flattenSortedAddresses(b)
	for i := 0; i < len(aAddrs) && i < len(bAddrs); i++ {
		switch cmpPubkey(aAddrs[i], bAddrs[i]) {
		case -1:
			return true
		case 1:
			return false
		}
	}
	return len(aAddrs) < len(bAddrs)
}

func flattenSortedAddresses(legs []RouteQuote) []solana.PublicKey {
	var addrs []solana.PublicKey
	for _, l := range legs {
		addrs = append(addrs, l.Route.PoolAddresses()...)
	}
	return graph.SortPoolAddresses(addrs)
}

func cmpPubkey(a, b solana.PublicKey) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
