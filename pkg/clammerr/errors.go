// Package clammerr declares the sentinel error kinds surfaced by the
// quoting and routing core. Callers should compare with errors.Is against
// these sentinels rather than matching on message text.
package clammerr

import "errors"

var (
	// ErrTickOutOfBounds indicates a tick index outside [MIN_TICK, MAX_TICK]
	// or a sqrt price outside [MIN_SQRT_PRICE, MAX_SQRT_PRICE].
	ErrTickOutOfBounds = errors.New("tick out of bounds")

	// ErrInvalidTickRange indicates tickLower is not strictly less than
	// tickUpper, or either tick is not a multiple of the pool's tick spacing.
	ErrInvalidTickRange = errors.New("invalid tick range")

	// ErrInputMintMismatch indicates the caller's input mint matches neither
	// of the pool's two token mints.
	ErrInputMintMismatch = errors.New("input mint does not belong to pool")

	// ErrArithmeticOverflow indicates an intermediate or final value exceeded
	// its wire width (u64, u128, or i32 tick range). Fatal.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrDivideByZero is fatal; it indicates a zero denominator in fixed
	// point math that should never occur given valid pool state.
	ErrDivideByZero = errors.New("division by zero")

	// ErrInsufficientTickArrays indicates the swap could not be filled with
	// the three tick arrays supplied; the router treats this as route
	// infeasible at this percent, not a fatal error.
	ErrInsufficientTickArrays = errors.New("insufficient tick arrays to fill trade")

	// ErrZeroLiquidity indicates the pool (or the active tick range) has no
	// liquidity to trade against. Same treatment as ErrInsufficientTickArrays
	// when raised mid-swap.
	ErrZeroLiquidity = errors.New("pool has zero liquidity")

	// ErrPoolNotFound indicates the fetcher returned no pool for a requested
	// address; affected routes are dropped, not a hard error.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrTickArrayNotFound indicates the fetcher returned no tick array for
	// a requested address; same treatment as ErrPoolNotFound.
	ErrTickArrayNotFound = errors.New("tick array not found")
)

// Infeasible reports whether err should cause the router to drop a single
// route/percent entry rather than fail the whole request, per the policy in
// the router's error handling design: InsufficientTickArrays, ZeroLiquidity,
// PoolNotFound and TickArrayNotFound are all "this route doesn't work right
// now", not "the computation is broken".
func Infeasible(err error) bool {
	switch {
	case errors.Is(err, ErrInsufficientTickArrays),
		errors.Is(err, ErrZeroLiquidity),
		errors.Is(err, ErrPoolNotFound),
		errors.Is(err, ErrTickArrayNotFound):
		return true
	default:
		return false
	}
}

// Fatal reports whether err represents a computation failure (as opposed to
// a route being infeasible). The router only raises when the entire result
// set is empty AND at least one fatal error occurred.
func Fatal(err error) bool {
	switch {
	case errors.Is(err, ErrArithmeticOverflow), errors.Is(err, ErrDivideByZero):
		return true
	default:
		return false
	}
}
