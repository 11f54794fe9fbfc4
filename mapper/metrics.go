// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// Truth is one ground-truth mapping: read_id -> [truth_start, truth_end).
type Truth struct {
	Start, End int
}

// MetricsAccumulator implements C9: it compares a stream of alignments
// against an optional solution map and derives TP/FP/FN/TN (spec.md §4.9).
type MetricsAccumulator struct {
	solution  map[string]Truth
	tolerance int

	tp, fp              int
	totalReads          int
	truePositiveReadIDs map[string]bool
}

// NewMetricsAccumulator builds an accumulator against solution (which may
// be nil, for a run with no ground truth) using opts.MetricsTolerance as
// the coordinate slop.
func NewMetricsAccumulator(solution map[string]Truth, opts Opts) *MetricsAccumulator {
	return &MetricsAccumulator{
		solution:            solution,
		tolerance:           opts.MetricsTolerance,
		truePositiveReadIDs: map[string]bool{},
	}
}

// Observe records one alignment. Each read_id contributes at most one TP,
// per spec.md §4.9.
func (m *MetricsAccumulator) Observe(a Alignment) {
	m.totalReads++
	if !a.Mapped {
		return
	}
	truth, ok := m.solution[a.ReadID]
	if !ok {
		m.fp++
		return
	}
	if abs(a.RefStart-truth.Start) <= m.tolerance && abs(a.RefEnd-truth.End) <= m.tolerance {
		if !m.truePositiveReadIDs[a.ReadID] {
			m.truePositiveReadIDs[a.ReadID] = true
			m.tp++
		}
		return
	}
	m.fp++
}

// Result is the final TP/FP/FN/TN tally and its derived rates.
type Result struct {
	TP, FP, FN, TN int
	Precision      float64
	Recall         float64
	Accuracy       float64
}

// Finish computes FN (solution read_ids that never produced a TP) and TN
// (total_reads - TP - FP - FN, clamped at zero), then derives
// precision/recall/accuracy, each 0 when its denominator vanishes.
func (m *MetricsAccumulator) Finish() Result {
	fn := 0
	for readID := range m.solution {
		if !m.truePositiveReadIDs[readID] {
			fn++
		}
	}
	tn := m.totalReads - m.tp - m.fp - fn
	if tn < 0 {
		tn = 0
	}

	r := Result{TP: m.tp, FP: m.fp, FN: fn, TN: tn}
	if d := r.TP + r.FP; d > 0 {
		r.Precision = float64(r.TP) / float64(d)
	}
	if d := r.TP + r.FN; d > 0 {
		r.Recall = float64(r.TP) / float64(d)
	}
	if d := r.TP + r.TN + r.FP + r.FN; d > 0 {
		r.Accuracy = float64(r.TP+r.TN) / float64(d)
	}
	return r
}
