// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import "strings"

// This file implements the extender (C5): chain + reference window + read ->
// coordinate-bearing Alignment, via a banded semi-global edit-distance DP.
// The DP's per-cell traversal bookkeeping is grounded on util/distance.go's
// Levenshtein matrix (the same idea of recording which traversal produced
// the minimum at each cell), adapted from an unbanded three-way Levenshtein
// matrix to a banded, semi-global one with the M > D > I tie policy spec'd
// for reproducible CIGAR strings. Scores live in two rolling rows; traceback
// tags are kept per row, for that row's in-band columns only.

// dpOp is the traceback tag recorded per in-band DP cell.
type dpOp uint8

const (
	opNone dpOp = iota
	opM         // diagonal: match/mismatch
	opD         // left: deletion from reference (consumes only t)
	opI         // up: insertion to reference (consumes only q)
)

const dpInf = 1 << 30

// Extend turns an anchor list into an Alignment (C5). It returns an
// unmapped Alignment on any of the conditions spec.md §4.6 and §7 treat as
// non-errors: empty anchors, empty chain, empty/invalid window, band
// overflow in traceback, or edit rate exceeding opts.MaxEditRate.
func Extend(readID, read, reference string, anchors []Anchor, opts Opts) Alignment {
	unmapped := unmappedAlignment(readID)

	chain := Chain(anchors)
	if len(chain) == 0 {
		return unmapped
	}

	readLen := len(read)
	refLen := len(reference)

	r0, q0, same := chain[0].RefPos, chain[0].ReadPos, chain[0].SameStrand
	var refLo, refHi int
	var strandPlus bool
	if same {
		c := r0 - q0
		refLo, refHi = c-opts.Pad, c+readLen+opts.Pad
		strandPlus = true
	} else {
		c := r0 + q0
		refLo, refHi = c-readLen-opts.Pad, c+opts.Pad
		strandPlus = false
	}
	if refLo < 0 {
		refLo = 0
	}
	if refHi > refLen {
		refHi = refLen
	}
	if refHi <= refLo {
		return unmapped
	}

	q := read
	if !strandPlus {
		q = reverseComplement(read)
	}
	t := reference[refLo:refHi]

	res, ok := bandedSemiGlobal(q, t, opts.Pad, opts.Band)
	if !ok {
		return unmapped
	}

	m := maxInt(1, len(q))
	editRate := float64(res.score) / float64(m)
	if editRate > opts.MaxEditRate {
		return unmapped
	}

	ops := res.ops
	if !strandPlus {
		ops = reverseOps(ops)
	}

	return Alignment{
		ReadID:     readID,
		RefStart:   refLo + res.tStart,
		RefEnd:     refLo + res.tEnd,
		StrandPlus: strandPlus,
		Cigar:      runLengthEncode(ops),
		Mapped:     true,
		Rnext:      "*",
	}
}

type dpResult struct {
	score  int
	ops    []dpOp // in read order (row order), not yet strand-flipped
	tStart int
	tEnd   int
}

// bandedSemiGlobal runs the banded, semi-global (global on q, local on t)
// edit-distance DP of spec.md §4.6.3-4.6.4: match 0, mismatch 1, gap 1, any
// comparison against 'N' scores as a mismatch. ok is false iff traceback
// steps outside the stored band.
func bandedSemiGlobal(q, t string, pad, band int) (dpResult, bool) {
	m, n := len(q), len(t)
	if m == 0 {
		return dpResult{}, true
	}

	// dpPrev/dpCur hold one row each, globally indexed [0, n]. Row 0 is
	// free everywhere (local start on the reference).
	dpPrev := make([]int, n+1)

	// dirs[i-1] holds the traceback tag for row i, restricted to
	// [lo[i-1], hi[i-1]].
	dirs := make([][]dpOp, m)
	lo := make([]int, m)
	hi := make([]int, m)

	for i := 1; i <= m; i++ {
		center := i + pad
		if center < 0 {
			center = 0
		}
		if center > n {
			center = n
		}
		j0 := maxInt(0, center-band)
		j1 := minInt(n, center+band)
		if j0 > j1 {
			j0, j1 = center, center
		}
		lo[i-1], hi[i-1] = j0, j1

		dpCur := make([]int, n+1)
		for j := range dpCur {
			dpCur[j] = dpInf
		}
		row := make([]dpOp, j1-j0+1)

		qi := q[i-1]
		for j := j0; j <= j1; j++ {
			var diag, left, ins int
			hasDiag := j >= 1
			if hasDiag {
				sub := 1
				tj := t[j-1]
				if qi == tj && qi != 'N' {
					sub = 0
				}
				diag = dpPrev[j-1] + sub
			} else {
				diag = dpInf
			}
			if j > 0 && dpCur[j-1] != dpInf {
				left = dpCur[j-1] + 1
			} else {
				left = dpInf
			}
			ins = dpPrev[j] + 1

			switch {
			case hasDiag && diag <= left && diag <= ins:
				dpCur[j] = diag
				row[j-j0] = opM
			case left <= ins:
				dpCur[j] = left
				row[j-j0] = opD
			default:
				dpCur[j] = ins
				row[j-j0] = opI
			}
		}
		dirs[i-1] = row
		dpPrev = dpCur
	}

	// Terminal column: the j minimizing dp[m][j], ties to smallest j.
	jEnd, best := 0, dpPrev[0]
	for j := 1; j <= n; j++ {
		if dpPrev[j] < best {
			best, jEnd = dpPrev[j], j
		}
	}
	score := best

	// Traceback from (m, jEnd).
	var revOps []dpOp
	var tSteps []int
	i, j := m, jEnd
	for i > 0 {
		if j < lo[i-1] || j > hi[i-1] {
			return dpResult{}, false
		}
		switch dirs[i-1][j-lo[i-1]] {
		case opM:
			revOps = append(revOps, opM)
			tSteps = append(tSteps, j)
			i, j = i-1, j-1
		case opD:
			revOps = append(revOps, opD)
			tSteps = append(tSteps, j)
			j = j - 1
		case opI:
			revOps = append(revOps, opI)
			tSteps = append(tSteps, j)
			i = i - 1
		default:
			return dpResult{}, false
		}
	}

	ops := make([]dpOp, len(revOps))
	tStepsFwd := make([]int, len(tSteps))
	for k := range revOps {
		ops[k] = revOps[len(revOps)-1-k]
		tStepsFwd[k] = tSteps[len(tSteps)-1-k]
	}

	tStart, tEnd := jEnd, jEnd
	haveUsed := false
	for k, op := range ops {
		if op == opM || op == opD {
			s := tStepsFwd[k] - 1
			if !haveUsed {
				tStart, tEnd = s, s
				haveUsed = true
			} else {
				tStart = minInt(tStart, s)
				tEnd = maxInt(tEnd, s)
			}
		}
	}
	if haveUsed {
		tEnd++
	}

	return dpResult{score: score, ops: ops, tStart: tStart, tEnd: tEnd}, true
}

func reverseOps(ops []dpOp) []dpOp {
	out := make([]dpOp, len(ops))
	for i, o := range ops {
		out[len(ops)-1-i] = o
	}
	return out
}

// runLengthEncode compresses an op list to CIGAR, e.g. MMMMID -> 4M1I1D.
// An empty op list encodes as "0M".
func runLengthEncode(ops []dpOp) string {
	if len(ops) == 0 {
		return "0M"
	}
	letter := func(o dpOp) byte {
		switch o {
		case opM:
			return 'M'
		case opD:
			return 'D'
		case opI:
			return 'I'
		default:
			panic("invalid dp op")
		}
	}
	var b strings.Builder
	run := 1
	cur := ops[0]
	for _, o := range ops[1:] {
		if o == cur {
			run++
			continue
		}
		writeRun(&b, run, letter(cur))
		cur, run = o, 1
	}
	writeRun(&b, run, letter(cur))
	return b.String()
}

func writeRun(b *strings.Builder, run int, letter byte) {
	// Minimal itoa: CIGAR runs are small, and avoiding strconv here keeps
	// this hot path allocation-free.
	if run == 0 {
		b.WriteByte('0')
		b.WriteByte(letter)
		return
	}
	var digits [20]byte
	n := len(digits)
	for run > 0 {
		n--
		digits[n] = byte('0' + run%10)
		run /= 10
	}
	b.Write(digits[n:])
	b.WriteByte(letter)
}
