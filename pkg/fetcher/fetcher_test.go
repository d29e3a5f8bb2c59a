package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/johnayoung/go-clamm-router/pkg/clammerr"
	"github.com/johnayoung/go-clamm-router/pkg/whirlpool"
	"lukechampine.com/uint128"
)

func TestStaticFetcherListAndGet(t *testing.T) {
	mintA := solana.PublicKey{1}
	mintB := solana.PublicKey{2}
	pool, err := whirlpool.NewPool(solana.PublicKey{9}, mintA, mintB, 64, 300, uint128.From64(1000), uint128.From64(1<<32), 0)
	if err != nil {
		t.Fatal(err)
	}

	f := NewStatic([]*whirlpool.Pool{pool}, nil)

	pools, err := f.ListPools(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pools) != 1 {
		t.Fatalf("expected 1 pool, got %d", len(pools))
	}

	got, err := f.GetPool(context.Background(), pool.Address)
	if err != nil {
		t.Fatal(err)
	}
	if got != pool {
		t.Error("expected the same pool pointer back")
	}
}

func TestStaticFetcherGetPoolNotFound(t *testing.T) {
	f := NewStatic(nil, nil)
	_, err := f.GetPool(context.Background(), solana.PublicKey{1})
	if !errors.Is(err, clammerr.ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestStaticFetcherListTickArraysEmpty(t *testing.T) {
	f := NewStatic(nil, nil)
	arrays, err := f.ListTickArrays(context.Background(), solana.PublicKey{1})
	if err != nil {
		t.Fatal(err)
	}
	if len(arrays) != 0 {
		t.Errorf("expected no tick arrays, got %d", len(arrays))
	}
}
