// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMetricsAccumulatorTruePositiveWithinTolerance(t *testing.T) {
	solution := map[string]Truth{"r1": {Start: 100, End: 150}}
	opts := Opts{MetricsTolerance: 5}
	m := NewMetricsAccumulator(solution, opts)

	m.Observe(Alignment{ReadID: "r1", Mapped: true, RefStart: 103, RefEnd: 148})
	result := m.Finish()
	expect.EQ(t, result.TP, 1)
	expect.EQ(t, result.FP, 0)
	expect.EQ(t, result.FN, 0)
}

func TestMetricsAccumulatorFalsePositiveOutsideTolerance(t *testing.T) {
	solution := map[string]Truth{"r1": {Start: 100, End: 150}}
	opts := Opts{MetricsTolerance: 5}
	m := NewMetricsAccumulator(solution, opts)

	m.Observe(Alignment{ReadID: "r1", Mapped: true, RefStart: 200, RefEnd: 250})
	result := m.Finish()
	expect.EQ(t, result.TP, 0)
	expect.EQ(t, result.FP, 1)
	expect.EQ(t, result.FN, 1)
}

func TestMetricsAccumulatorFalsePositiveNotInSolution(t *testing.T) {
	m := NewMetricsAccumulator(map[string]Truth{}, Opts{MetricsTolerance: 5})
	m.Observe(Alignment{ReadID: "r1", Mapped: true, RefStart: 0, RefEnd: 10})
	result := m.Finish()
	expect.EQ(t, result.FP, 1)
}

func TestMetricsAccumulatorUnmappedIsNeitherTPNorFP(t *testing.T) {
	solution := map[string]Truth{"r1": {Start: 100, End: 150}}
	m := NewMetricsAccumulator(solution, Opts{MetricsTolerance: 5})
	m.Observe(Alignment{ReadID: "r1", Mapped: false})
	result := m.Finish()
	expect.EQ(t, result.TP, 0)
	expect.EQ(t, result.FP, 0)
	expect.EQ(t, result.FN, 1)
}

func TestMetricsAccumulatorEachReadIDContributesAtMostOneTP(t *testing.T) {
	solution := map[string]Truth{"r1": {Start: 100, End: 150}}
	m := NewMetricsAccumulator(solution, Opts{MetricsTolerance: 5})
	m.Observe(Alignment{ReadID: "r1", Mapped: true, RefStart: 100, RefEnd: 150})
	m.Observe(Alignment{ReadID: "r1", Mapped: true, RefStart: 100, RefEnd: 150})
	result := m.Finish()
	expect.EQ(t, result.TP, 1)
}

func TestMetricsAccumulatorTrueNegativeWithNoSolution(t *testing.T) {
	m := NewMetricsAccumulator(nil, Opts{MetricsTolerance: 5})
	m.Observe(Alignment{ReadID: "r1", Mapped: false})
	m.Observe(Alignment{ReadID: "r2", Mapped: false})
	result := m.Finish()
	expect.EQ(t, result.TN, 2)
	expect.EQ(t, result.TP+result.FP+result.FN+result.TN, 2)
}

func TestMetricsAccumulatorRatesZeroOnZeroDenominator(t *testing.T) {
	m := NewMetricsAccumulator(nil, Opts{MetricsTolerance: 5})
	result := m.Finish()
	expect.EQ(t, result.Precision, 0.0)
	expect.EQ(t, result.Recall, 0.0)
	expect.EQ(t, result.Accuracy, 0.0)
}

func TestMetricsAccumulatorPrecisionRecallAccuracy(t *testing.T) {
	solution := map[string]Truth{
		"tp1": {Start: 0, End: 10},
		"tp2": {Start: 20, End: 30},
		"fn1": {Start: 40, End: 50},
	}
	m := NewMetricsAccumulator(solution, Opts{MetricsTolerance: 0})
	m.Observe(Alignment{ReadID: "tp1", Mapped: true, RefStart: 0, RefEnd: 10})
	m.Observe(Alignment{ReadID: "tp2", Mapped: true, RefStart: 20, RefEnd: 30})
	m.Observe(Alignment{ReadID: "fp1", Mapped: true, RefStart: 100, RefEnd: 110})
	m.Observe(Alignment{ReadID: "tn1", Mapped: false})

	result := m.Finish()
	expect.EQ(t, result.TP, 2)
	expect.EQ(t, result.FP, 1)
	expect.EQ(t, result.FN, 1)
	expect.EQ(t, result.TN, 0)
	expect.EQ(t, result.Precision, 2.0/3.0)
	expect.EQ(t, result.Recall, 2.0/3.0)
}
