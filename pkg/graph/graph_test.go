package graph

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

func mustPool(t *testing.T, addr byte, mintA, mintB solana.PublicKey) *whirlpool.Pool {
	t.Helper()
	p, err := whirlpool.NewPool(solana.PublicKey{addr}, mintA, mintB, 64, 300, uint128.From64(1), uint128.From64(1<<32), 0)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestBuildWalks(t *testing.T) {
	mintA := solana.PublicKey{1}
	mintB := solana.PublicKey{2}
	mintC := solana.PublicKey{3}

	p1 := mustPool(t, 10, mintA, mintB)
	p2 := mustPool(t, 11, mintB, mintC)

	walks := Build([]*whirlpool.Pool{p1, p2})

	if len(walks.HopsFrom(mintA)) != 1 {
		t.Errorf("expected 1 hop from mintA, got %d", len(walks.HopsFrom(mintA)))
	}
	if len(walks.HopsFrom(mintB)) != 2 {
		t.Errorf("expected 2 hops from mintB, got %d", len(walks.HopsFrom(mintB)))
	}
	if len(walks.HopsFrom(mintC)) != 1 {
		t.Errorf("expected 1 hop from mintC, got %d", len(walks.HopsFrom(mintC)))
	}
}

func TestCanonicalRouteIDStable(t *testing.T) {
	in := solana.PublicKey{1}
	out := solana.PublicKey{2}
	addrs := []solana.PublicKey{{10}, {11}}

	id1 := CanonicalRouteID(in, out, addrs)
	id2 := CanonicalRouteID(in, out, addrs)
	if id1 != id2 {
		t.Errorf("expected stable route ID, got %q and %q", id1, id2)
	}

	reversedOutputID := CanonicalRouteID(out, in, addrs)
	if id1 == reversedOutputID {
		t.Error("expected different mint order to produce a different route ID")
	}
}

func TestSortPoolAddresses(t *testing.T) {
	a := solana.PublicKey{2}
	b := solana.PublicKey{1}
	sorted := SortPoolAddresses([]solana.PublicKey{a, b})
	if !sorted[0].Equals(b) || !sorted[1].Equals(a) {
		t.Errorf("expected ascending sort, got %v", sorted)
	}
}
