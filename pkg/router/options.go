// Package router implements component F: composing single-pool swap
// quotes into multi-hop, optionally split routes across a pool graph.
package router

import (
	"fmt"

	"github.com/johnayoung/go-clamm-router/pkg/fixedpoint"
	"github.com/spf13/viper"
)

// Options configures route discovery and splitting.
type Options struct {
	// PercentIncrement is the granularity routes are split at, e.g. 5 means
	// trade size is quoted in 5% increments (5, 10, ..., 100).
	PercentIncrement int `mapstructure:"percent_increment"`
	// MaxSplits caps how many disjoint-by-first-pool legs a single route
	// result may combine.
	MaxSplits int `mapstructure:"max_splits"`
	// NumTopPartialQuotes caps how many candidate routes are kept per
	// percent increment before combining, bounding the combinatorial
	// search.
	NumTopPartialQuotes int `mapstructure:"num_top_partial_quotes"`
	// MaxHops caps path length during route discovery.
	MaxHops int `mapstructure:"max_hops"`
	// NumTopRoutes caps how many split sets FindBestRoutes returns, after
	// merging the combine search's results with the always-included
	// single-route 100% baseline and sorting globally by the objective.
	NumTopRoutes int `mapstructure:"num_top_routes"`
	// Slippage bounds every leg's swap simulation.
	Slippage fixedpoint.Slippage `mapstructure:"-"`
}

// DefaultOptions returns the router's out-of-the-box configuration.
func DefaultOptions() Options {
	return Options{
		PercentIncrement:    20,
		MaxSplits:           3,
		NumTopPartialQuotes: 10,
		MaxHops:             3,
		NumTopRoutes:        50,
		Slippage:            fixedpoint.Slippage{Numerator: 1, Denominator: 100},
	}
}

// LoadOptions reads router options from a YAML config file, falling back to
// DefaultOptions for any field the file doesn't set. Slippage is configured
// separately via slippage_numerator/slippage_denominator keys since
// fixedpoint.Slippage isn't a mapstructure-friendly flat value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("percent_increment", opts.PercentIncrement)
	v.SetDefault("max_splits", opts.MaxSplits)
	v.SetDefault("num_top_partial_quotes", opts.NumTopPartialQuotes)
	v.SetDefault("max_hops", opts.MaxHops)
	v.SetDefault("num_top_routes", opts.NumTopRoutes)
	v.SetDefault("slippage_numerator", opts.Slippage.Numerator)
	v.SetDefault("slippage_denominator", opts.Slippage.Denominator)

	if err := v.ReadInConfig(); err != nil {
		return Options{}, fmt.Errorf("router: loading options from %s: %w", path, err)
	}
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("router: parsing options from %s: %w", path, err)
	}
	opts.Slippage = fixedpoint.Slippage{
		Numerator:   v.GetUint64("slippage_numerator"),
		Denominator: v.GetUint64("slippage_denominator"),
	}

	if opts.PercentIncrement <= 0 || 100%opts.PercentIncrement != 0 {
		return Options{}, fmt.Errorf("router: percent_increment must evenly divide 100, got %d", opts.PercentIncrement)
	}
	if opts.MaxSplits <= 0 {
		return Options{}, fmt.Errorf("router: max_splits must be positive")
	}
	if opts.MaxHops <= 0 {
		return Options{}, fmt.Errorf("router: max_hops must be positive")
	}
	if opts.NumTopRoutes <= 0 {
		return Options{}, fmt.Errorf("router: num_top_routes must be positive")
	}
	return opts, nil
}
