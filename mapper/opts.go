// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// Opts collects the knobs of the mapping core, in the style of
// fusion.Opts/fusion.DefaultOpts.
type Opts struct {
	// KmerLength is the length (k) of the minimizer k-mers.
	KmerLength int
	// WindowSize (w) is the number of consecutive k-mers a minimizer is
	// chosen from.
	//
	// The library default below (10) intentionally differs from the
	// command-line default (30) used by cmd/bio-mapper. This mirrors a
	// discrepancy present in the original implementation this package was
	// derived from; see SPEC_FULL.md §1 for the resolution.
	WindowSize int
	// Band is the banded-DP half-bandwidth used by the extender.
	Band int
	// Pad is the number of extra reference bases added on either side of
	// the chain-projected window before banding.
	Pad int
	// MaxEditRate is the largest edit_rate (edits / read length) the
	// extender will accept before declaring a read unmapped.
	MaxEditRate float64
	// WorkerCount is the number of parallel workers the executor fans out
	// to.
	WorkerCount int
	// MetricsTolerance is the absolute coordinate slop the metrics
	// accumulator allows when matching an alignment to ground truth.
	MetricsTolerance int
	// SecondMateSeqIDQuirk, when true (the default), reproduces the
	// original seq_id=2*(i+1) assignment for the second mate of pair i
	// instead of the seemingly-intended 2*i+1. See SPEC_FULL.md §1.
	SecondMateSeqIDQuirk bool
}

// DefaultOpts holds the library defaults for Opts.
var DefaultOpts = Opts{
	KmerLength:           15,
	WindowSize:           10,
	Band:                 15,
	Pad:                  10,
	MaxEditRate:          0.40,
	WorkerCount:          8,
	MetricsTolerance:     5,
	SecondMateSeqIDQuirk: true,
}
