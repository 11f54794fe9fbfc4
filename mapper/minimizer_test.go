// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

const k, w = 4, 3

func canonicalHash(kmer string) (uint64, bool) {
	rh := NewRollingHash(len(kmer))
	fwd := rh.Hash([]byte(kmer))
	rev := rh.Hash([]byte(reverseComplement(kmer)))
	if rev < fwd {
		return rev, true
	}
	return fwd, false
}

func TestExtractMinimizersMinimumLength(t *testing.T) {
	seq := "ACGTAC" // length 6 == k+w-1
	ms := ExtractMinimizers(seq, k, w, 0)
	expect.True(t, len(ms) >= 1)
}

func TestExtractMinimizersBelowMinimumLength(t *testing.T) {
	seq := "ACGTA" // length 5 < k+w-1=6
	expect.EQ(t, len(ExtractMinimizers(seq, k, w, 0)), 0)
}

// Each emitted minimizer's hash must equal the canonical hash (min of
// forward/reverse-complement) of the k-mer at its position, per spec.md §8.
func TestExtractMinimizersMatchCanonicalHash(t *testing.T) {
	seq := "ACGTACGTACGTTGCA"
	for _, m := range ExtractMinimizers(seq, k, w, 7) {
		want, wantRev := canonicalHash(seq[m.Pos : m.Pos+k])
		expect.EQ(t, m.Hash, want)
		expect.EQ(t, m.IsReverse, wantRev)
		expect.EQ(t, m.SeqID, 7)
	}
}

// No two consecutive emitted minimizers share a position.
func TestExtractMinimizersNoConsecutiveDuplicatePositions(t *testing.T) {
	seq := "ACGTACGTACGTACGTACGTACGTACGT"
	ms := ExtractMinimizers(seq, k, w, 0)
	for i := 1; i < len(ms); i++ {
		expect.True(t, ms[i].Pos != ms[i-1].Pos)
	}
}

// Running the extractor twice on identical input yields identical output.
func TestExtractMinimizersDeterministic(t *testing.T) {
	seq := "GATTACAGATTACAGATTACAGGGTTTCCCAAA"
	a := ExtractMinimizers(seq, k, w, 1)
	b := ExtractMinimizers(seq, k, w, 1)
	expect.EQ(t, a, b)
}

func TestExtractMinimizersPositionsInOrder(t *testing.T) {
	seq := "GATTACAGATTACAGATTACAGGGTTTCCCAAA"
	ms := ExtractMinimizers(seq, k, w, 0)
	for i := 1; i < len(ms); i++ {
		expect.True(t, ms[i].Pos > ms[i-1].Pos)
	}
}
