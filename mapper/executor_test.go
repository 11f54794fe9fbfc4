// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestPlanBatchesRoughlyThreePerWorker(t *testing.T) {
	sizes := planBatches(90, 3)
	total := 0
	for _, s := range sizes {
		total += s
	}
	expect.EQ(t, total, 90)
	// batchSize = 90/(3*3) = 10, so roughly 9 batches of 10.
	expect.True(t, len(sizes) >= 9)
}

func TestPlanBatchesZeroItemsYieldsNoBatches(t *testing.T) {
	expect.EQ(t, planBatches(0, 4), []int(nil))
}

func TestPlanBatchesMinimumBatchSizeOne(t *testing.T) {
	sizes := planBatches(2, 100)
	expect.EQ(t, len(sizes), 2)
	for _, s := range sizes {
		expect.EQ(t, s, 1)
	}
}

func TestPlanBatchesTreatsNonPositiveWorkersAsOne(t *testing.T) {
	sizes := planBatches(5, 0)
	total := 0
	for _, s := range sizes {
		total += s
	}
	expect.EQ(t, total, 5)
}

func TestRunMapsAllPairsAndMergesStats(t *testing.T) {
	reference := "ACGTACGTACGTTGCATTTAGGGCCCAACGTACGTACGT"
	opts := scenarioOpts
	opts.WorkerCount = 4
	idx := BuildReferenceIndex(reference, opts)

	var pairs []Pair
	for i := 0; i < 20; i++ {
		pairs = append(pairs, Pair{
			First:  Read{ID: "r/1", Seq: reference[2:10]},
			Second: Read{ID: "r/2", Seq: reference[20:28]},
		})
	}

	results, stats, err := Run(pairs, idx, reference, opts)
	expect.NoError(t, err)
	expect.EQ(t, len(results), 20)
	expect.EQ(t, stats.Pairs, 20)
	expect.EQ(t, stats.MappedReads, 40)
	expect.EQ(t, stats.UnmappedReads, 0)

	seen := map[int]bool{}
	for _, r := range results {
		seen[r.Index] = true
	}
	expect.EQ(t, len(seen), 20)
}

func TestRunEmptyInput(t *testing.T) {
	results, stats, err := Run(nil, &ReferenceIndex{}, "ACGT", DefaultOpts)
	expect.NoError(t, err)
	expect.EQ(t, len(results), 0)
	expect.EQ(t, stats.Pairs, 0)
}
