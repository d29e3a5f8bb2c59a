// Package graph builds the pool adjacency a split route is searched over
// and names routes canonically so equivalent paths discovered from either
// direction collapse to the same identifier.
package graph

import (
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
)

// Edge is one pool considered as a hop between its two mints.
type Edge struct {
	Pool *whirlpool.Pool
}

// Walks is the adjacency list of a pool graph: for a mint, every edge
// leaving it.
type Walks map[solana.PublicKey][]Edge

// Build indexes pools into an adjacency list keyed by each of their two
// mints, so routing can walk from inputMint to outputMint hop by hop.
func Build(pools []*whirlpool.Pool) Walks {
	walks := make(Walks, len(pools)*2)
	for _, p := range pools {
		walks[p.TokenMintA] = append(walks[p.TokenMintA], Edge{Pool: p})
		walks[p.TokenMintB] = append(walks[p.TokenMintB], Edge{Pool: p})
	}
	return walks
}

// HopsFrom returns the pools directly reachable from mint.
func (w Walks) HopsFrom(mint solana.PublicKey) []Edge {
	return w[mint]
}

// CanonicalRouteID names a path of pool addresses independent of the
// direction it was discovered in: two split legs that traverse the same
// pools in the same order for the same (input, output) mint pair produce
// the same ID, so pruning and dedup can compare IDs instead of walking
// pool lists.
func CanonicalRouteID(inputMint, outputMint solana.PublicKey, poolAddresses []solana.PublicKey) string {
	ordered := poolAddresses
	if whirlpool.CompareMints(inputMint, outputMint) > 0 {
		// Name the path as walked from the lower-sorting mint, so the same
		// pools traversed in the opposite direction share one ID.
		inputMint, outputMint = outputMint, inputMint
		ordered = make([]solana.PublicKey, len(poolAddresses))
		for i, addr := range poolAddresses {
			ordered[len(poolAddresses)-1-i] = addr
		}
	}
	parts := make([]string, 0, len(ordered)+2)
	parts = append(parts, inputMint.String(), outputMint.String())
	for _, addr := range ordered {
		parts = append(parts, addr.String())
	}
	return strings.Join(parts, "->")
}

// SortPoolAddresses returns addrs sorted byte-lexicographically, the same
// order FindBestRoutes uses for its final lexicographic tie-break.
func SortPoolAddresses(addrs []solana.PublicKey) []solana.PublicKey {
	sorted := make([]solana.PublicKey, len(addrs))
	copy(sorted, addrs)
	sort.Slice(sorted, func(i, j int) bool {
		return whirlpool.CompareMints(sorted[i], sorted[j]) < 0
	})
	return sorted
}
