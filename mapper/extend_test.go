// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// scenarioOpts matches the small k=4, w=3 examples of spec.md §8, with the
// library defaults for band/pad/max-edit-rate.
var scenarioOpts = Opts{KmerLength: 4, WindowSize: 3, Band: 15, Pad: 10, MaxEditRate: 0.40}

func mapRead(reference, read string, opts Opts) Alignment {
	idx := BuildReferenceIndex(reference, opts)
	anchors := FindAnchors(read, 0, idx, opts)
	return Extend("r", read, reference, anchors, opts)
}

func TestExtendExactForward(t *testing.T) {
	a := mapRead("ACGTACGTACGT", "GTACGTAC", scenarioOpts)
	expect.True(t, a.Mapped)
	expect.EQ(t, a.RefStart, 2)
	expect.EQ(t, a.RefEnd, 10)
	expect.EQ(t, a.Cigar, "8M")
	expect.True(t, a.StrandPlus)
}

func TestExtendExactReverseComplement(t *testing.T) {
	read := reverseComplement("GTACGTAC")
	a := mapRead("ACGTACGTACGT", read, scenarioOpts)
	expect.True(t, a.Mapped)
	expect.EQ(t, a.RefStart, 2)
	expect.EQ(t, a.RefEnd, 10)
	expect.EQ(t, a.Cigar, "8M")
	expect.False(t, a.StrandPlus)
}

func TestExtendSingleMismatch(t *testing.T) {
	a := mapRead("ACGTACGTACGT", "GTACGTTC", scenarioOpts)
	expect.True(t, a.Mapped)
	expect.EQ(t, a.Cigar, "8M")
	editRate := 1.0 / 8.0
	expect.True(t, editRate <= scenarioOpts.MaxEditRate)
}

func TestExtendSingleIndel(t *testing.T) {
	a := mapRead("ACGTACGTACGT", "GTACGTAACGT", scenarioOpts)
	expect.True(t, a.Mapped)

	var m, i int
	for k := 0; k+1 < len(a.Cigar); {
		// crude run-length decode of the form "<n><op>"
		j := k
		for a.Cigar[j] >= '0' && a.Cigar[j] <= '9' {
			j++
		}
		n := 0
		for p := k; p < j; p++ {
			n = n*10 + int(a.Cigar[p]-'0')
		}
		switch a.Cigar[j] {
		case 'M':
			m += n
		case 'I':
			i += n
		}
		k = j + 1
	}
	expect.EQ(t, m, 10)
	expect.EQ(t, i, 1)
}

func TestExtendUnmappable(t *testing.T) {
	a := mapRead("AAAAAAAAAAAA", "CCCCCCCC", scenarioOpts)
	expect.False(t, a.Mapped)
	expect.EQ(t, a.Cigar, "")
	expect.EQ(t, a.RefStart, -1)
	expect.EQ(t, a.RefEnd, -1)
}

func TestExtendEmptyAnchorsIsUnmapped(t *testing.T) {
	a := Extend("r", "ACGT", "TTTT", nil, scenarioOpts)
	expect.False(t, a.Mapped)
}

// Every mapped alignment satisfies 0 <= ref_start < ref_end <= len(reference)
// and its CIGAR op counts sum to |read| (M+I) and ref_end-ref_start (M+D).
func TestExtendCigarOpCountInvariant(t *testing.T) {
	reference := "ACGTACGTACGTTGCATTTAGGGCCCAACGTACGTACGT"
	read := reference[8:24]
	a := mapRead(reference, read, scenarioOpts)
	expect.True(t, a.Mapped)
	expect.True(t, a.RefStart >= 0)
	expect.True(t, a.RefStart < a.RefEnd)
	expect.True(t, a.RefEnd <= len(reference))

	var m, i, d int
	for k := 0; k < len(a.Cigar); {
		j := k
		for a.Cigar[j] >= '0' && a.Cigar[j] <= '9' {
			j++
		}
		n := 0
		for p := k; p < j; p++ {
			n = n*10 + int(a.Cigar[p]-'0')
		}
		switch a.Cigar[j] {
		case 'M':
			m += n
		case 'I':
			i += n
		case 'D':
			d += n
		}
		k = j + 1
	}
	expect.EQ(t, m+i, len(read))
	expect.EQ(t, m+d, a.RefEnd-a.RefStart)
}
