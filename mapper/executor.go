// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/grailbio/base/errors"
)

// PairResult is one mapped read pair, tagged with its input ordinal so
// output can be reassembled in input order if the caller wants that.
type PairResult struct {
	Index  int
	First  Alignment
	Second Alignment
}

// planBatches splits n items across workers into roughly-3-batches-per-worker
// chunks (spec.md §4.8), grounded on the original's
// `batch_size = max(1, len // (procs*3))` rule. The final batch may be
// shorter than the rest.
func planBatches(n, workers int) []int {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	batchSize := n / (workers * 3)
	if batchSize < 1 {
		batchSize = 1
	}
	var sizes []int
	for remaining := n; remaining > 0; {
		s := batchSize
		if s > remaining {
			s = remaining
		}
		sizes = append(sizes, s)
		remaining -= s
	}
	return sizes
}

type batchReq struct {
	startIndex int
	pairs      []Pair
}

type batchRes struct {
	results []PairResult
	stats   Stats
}

// Run is the parallel executor (C7): it fans pairs out across
// opts.WorkerCount workers sharing idx and reference, and gathers their
// alignments plus merged Stats. It mirrors
// cmd/bio-fusion/main.go's processFASTQ: a request channel feeding a
// worker pool, a response channel drained by a single gathering goroutine,
// and errors.Once to report the first worker failure.
//
// Ordering: pair order is preserved within a batch; batches themselves may
// complete out of order, matching spec.md §5's "Ordering" note. Callers
// that need strict input order should sort PairResult by Index.
func Run(pairs []Pair, idx *ReferenceIndex, reference string, opts Opts) ([]PairResult, Stats, error) {
	if len(pairs) == 0 {
		return nil, Stats{}, nil
	}

	workers := opts.WorkerCount
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	sizes := planBatches(len(pairs), workers)
	reqCh := make(chan batchReq, len(sizes))
	resCh := make(chan batchRes, len(sizes))

	off := 0
	for _, s := range sizes {
		reqCh <- batchReq{startIndex: off, pairs: pairs[off : off+s]}
		off += s
	}
	close(reqCh)

	once := errors.Once{}
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					once.Set(panicToErr(r))
				}
			}()
			runWorker(reqCh, resCh, idx, reference, opts)
		}()
	}

	var (
		all      []PairResult
		allStats Stats
		gatherWg sync.WaitGroup
	)
	gatherWg.Add(1)
	go func() {
		defer gatherWg.Done()
		for res := range resCh {
			all = append(all, res.results...)
			allStats = allStats.Merge(res.stats)
		}
	}()

	wg.Wait()
	close(resCh)
	gatherWg.Wait()

	if err := once.Err(); err != nil {
		return nil, Stats{}, err
	}
	return all, allStats, nil
}

func runWorker(reqCh <-chan batchReq, resCh chan<- batchRes, idx *ReferenceIndex, reference string, opts Opts) {
	p := Pipeline{Index: idx, Reference: reference, Opts: opts}
	for req := range reqCh {
		results := make([]PairResult, len(req.pairs))
		var stats Stats
		for j, pair := range req.pairs {
			i := req.startIndex + j
			first, second := p.Process(i, pair)
			results[j] = PairResult{Index: i, First: first, Second: second}
			stats.Pairs++
			stats.observe(first)
			stats.observe(second)
		}
		resCh <- batchRes{results: results, stats: stats}
	}
}

func panicToErr(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("mapper: worker panic: %v", r)
}
