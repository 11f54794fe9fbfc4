// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	farm "github.com/dgryski/go-farm"
)

// This file implements the reference index (C3): hash -> ordered list of
// (ref_pos, ref_is_reverse). It is sharded 256-ways on farmhash(minimizer
// hash), the same scheme fusion/kmer_index.go uses to shard its kmer->gene
// map, so that index construction (and, if a caller chooses to build shards
// concurrently) never contends on a single Go map. The core hash is already
// a dedicated rolling hash (hash.go); farmhash here is used purely to pick a
// well-dispersed shard, exactly as the teacher's kmerIndex does with its own
// hashKmer.

const indexShardCount = 256

// RefHit is one occurrence of an indexed minimizer on the reference.
type RefHit struct {
	RefPos    int
	IsReverse bool
}

// ReferenceIndex maps a minimizer hash to every reference position at which
// it occurs. It is built once by BuildReferenceIndex and never mutated
// afterward: per the data model's lifecycle rule, it is constructed once and
// shared read-only across all workers.
type ReferenceIndex struct {
	opts   Opts
	shards [indexShardCount]map[uint64][]RefHit
}

func shardFor(h uint64) uint64 {
	return farm.Hash64WithSeed(nil, h) % indexShardCount
}

// BuildReferenceIndex runs the minimizer extractor over the entire
// reference and builds the hash -> occurrences index (C3).
func BuildReferenceIndex(reference string, opts Opts) *ReferenceIndex {
	idx := &ReferenceIndex{opts: opts}
	for i := range idx.shards {
		idx.shards[i] = map[uint64][]RefHit{}
	}
	for _, m := range ExtractMinimizers(reference, opts.KmerLength, opts.WindowSize, 0) {
		shard := idx.shards[shardFor(m.Hash)]
		shard[m.Hash] = append(shard[m.Hash], RefHit{RefPos: m.Pos, IsReverse: m.IsReverse})
	}
	return idx
}

// Lookup returns the reference occurrences recorded for hash h, or nil if
// none were indexed.
func (idx *ReferenceIndex) Lookup(h uint64) []RefHit {
	return idx.shards[shardFor(h)][h]
}
