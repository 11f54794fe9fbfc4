// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import "github.com/grailbio/hts/sam"

// Pipeline composes C2->anchor-lookup->C4->C5 for one mate pair and
// enriches the resulting alignments with pair flags (C6, spec.md §4.7).
type Pipeline struct {
	Index     *ReferenceIndex
	Reference string
	Opts      Opts
}

// Process maps one read pair. i is the pair's zero-based ordinal in the
// input stream; it drives the seq_id assigned to each mate's minimizers.
//
// The second mate's seq_id is 2*(i+1), not 2*i+1, per
// Opts.SecondMateSeqIDQuirk (see TestSecondMateSeqIDQuirk and
// SPEC_FULL.md §1): this reproduces a quirk of the system this package
// was derived from rather than the seemingly-intended numbering.
func (p Pipeline) Process(i int, pair Pair) (first, second Alignment) {
	idA := 2 * i
	idB := secondMateSeqID(i, p.Opts)

	first = p.mapOne(pair.First, idA)
	second = p.mapOne(pair.Second, idB)

	applyPairFlags(&first, &second)
	return first, second
}

// secondMateSeqID computes the second mate's seq_id for pair i. See
// TestSecondMateSeqIDQuirk.
func secondMateSeqID(i int, opts Opts) int {
	if opts.SecondMateSeqIDQuirk {
		return 2 * (i + 1)
	}
	return 2*i + 1
}

func (p Pipeline) mapOne(r Read, seqID int) Alignment {
	anchors := FindAnchors(r.Seq, seqID, p.Index, p.Opts)
	a := Extend(r.ID, r.Seq, p.Reference, anchors, p.Opts)
	a.Qual = r.Qual
	if a.Mapped {
		a.Mapq = 60
	} else {
		a.Mapq = 0
	}
	return a
}

// applyPairFlags computes the FLAG bits of spec.md §6 for both mates of a
// pair using github.com/grailbio/hts/sam's Flags bit constants -- the same
// ones encoding/bam uses for record-level Flags -- instead of hand-rolled
// bit values: 1 paired, 2 proper pair (both mapped), 4 this unmapped, 8
// mate unmapped, 16 this reverse (only if mapped), 32 mate reverse (only
// if mate mapped), 64 first of pair, 128 second of pair.
func applyPairFlags(a, b *Alignment) {
	properPair := a.Mapped && b.Mapped

	af := sam.Paired | sam.Read1
	if properPair {
		af |= sam.ProperPair
	}
	if !a.Mapped {
		af |= sam.Unmapped
	}
	if !b.Mapped {
		af |= sam.MateUnmapped
	}
	if a.Mapped && !a.StrandPlus {
		af |= sam.Reverse
	}
	if b.Mapped && !b.StrandPlus {
		af |= sam.MateReverse
	}
	a.Flag = int(af)

	bf := sam.Paired | sam.Read2
	if properPair {
		bf |= sam.ProperPair
	}
	if !b.Mapped {
		bf |= sam.Unmapped
	}
	if !a.Mapped {
		bf |= sam.MateUnmapped
	}
	if b.Mapped && !b.StrandPlus {
		bf |= sam.Reverse
	}
	if a.Mapped && !a.StrandPlus {
		bf |= sam.MateReverse
	}
	b.Flag = int(bf)
}
