// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// This file implements the strand-canonical (w,k)-minimizer extractor (C2).
// It mirrors the windowed min-tracking of fusion/kmer.go's kmerizer, but
// canonicalizes on min(forward, reverse-complement) hash per spec, the way
// the original Python minimizer.py does.

// Minimizer is a single emitted (w,k)-minimizer.
type Minimizer struct {
	// Hash is the canonical hash: min(forward, reverse-complement) of the
	// k-mer at Pos.
	Hash uint64
	// Pos is the offset of the k-mer within the source sequence.
	Pos int
	// SeqID identifies which sequence (read or reference) this tuple
	// belongs to; callers assign whatever scheme they need.
	SeqID int
	// IsReverse is true when the minimum-hash k-mer at Pos is the
	// reverse-complement form of the forward k-mer beginning at Pos.
	IsReverse bool
}

// candidate is one (canonical_hash, pos, is_reverse) entry in the sliding
// window used to find each minimizer.
type candidate struct {
	hash      uint64
	pos       int
	isReverse bool
}

// less implements the window's ordering: smallest hash first, leftmost pos
// breaks ties.
func (c candidate) less(o candidate) bool {
	if c.hash != o.hash {
		return c.hash < o.hash
	}
	return c.pos < o.pos
}

// ExtractMinimizers returns the strand-canonical (w,k) minimizers of seq, in
// left-to-right order, with consecutive duplicate positions suppressed.
//
// seq must already be upper-cased; ingest call sites fold case before
// calling this function, per the sequence-alphabet rule in the data model.
func ExtractMinimizers(seq string, k, w int, seqID int) []Minimizer {
	n := len(seq)
	if n < k+w-1 {
		return nil
	}

	rh := NewRollingHash(k)

	canonical := func(pos int) candidate {
		kmer := seq[pos : pos+k]
		fwd := rh.Hash([]byte(kmer))
		rev := rh.Hash([]byte(reverseComplement(kmer)))
		if rev < fwd {
			return candidate{hash: rev, pos: pos, isReverse: true}
		}
		return candidate{hash: fwd, pos: pos, isReverse: false}
	}

	var minimizers []Minimizer
	window := make([]candidate, 0, w)
	lastMinPos := -1

	emit := func(c candidate) {
		if c.pos == lastMinPos {
			return
		}
		lastMinPos = c.pos
		minimizers = append(minimizers, Minimizer{
			Hash:      c.hash,
			Pos:       c.pos,
			SeqID:     seqID,
			IsReverse: c.isReverse,
		})
	}

	windowMin := func() candidate {
		best := window[0]
		for _, c := range window[1:] {
			if c.less(best) {
				best = c
			}
		}
		return best
	}

	lastKmerPos := n - k
	for i := 0; i <= lastKmerPos; i++ {
		window = append(window, canonical(i))
		if len(window) > w {
			window = window[1:]
		}
		if len(window) == w {
			emit(windowMin())
		}
	}
	return minimizers
}
