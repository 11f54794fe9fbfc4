// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// bio-mapper is the command-line driver for the paired-end short-read
// mapping core in package mapper: it reads a reference FASTA and two
// paired FASTQ streams, builds the reference index, maps every pair in
// parallel, and writes tab-delimited alignment records. If a ground-truth
// file is given, it also reports mapping accuracy.
package main

import (
	"context"
	"flag"
	"io"
	"strings"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/seqmap/encoding/fastqpair"
	"github.com/grailbio/seqmap/encoding/groundtruth"
	"github.com/grailbio/seqmap/encoding/refio"
	"github.com/grailbio/seqmap/encoding/samtext"
	"github.com/grailbio/seqmap/mapper"
)

// cmdFlags collects the options set via command-line flags, in the style
// of cmd/bio-fusion/main.go's fusionFlags.
type cmdFlags struct {
	referencePath   string
	r1Path, r2Path  string
	outputPath      string
	groundTruthPath string
}

func maybeGunzip(ctx context.Context, path string, r io.Reader) io.Reader {
	if !strings.HasSuffix(path, ".gz") {
		return r
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		log.Panicf("gunzip %v: %v", path, err)
	}
	return gz
}

func openInput(ctx context.Context, path string) (file.File, io.Reader) {
	f, err := file.Open(ctx, path)
	if err != nil {
		log.Panicf("open %v: %v", path, err)
	}
	return f, maybeGunzip(ctx, path, f.Reader(ctx))
}

// readReference opens and parses the reference FASTA (C3's input): a
// malformed or empty reference is fatal at startup, per spec.md §7.
func readReference(ctx context.Context, path string) refio.Reference {
	f, r := openInput(ctx, path)
	ref, err := refio.Read(r)
	if err != nil {
		log.Panicf("malformed reference %v: %v", path, err)
	}
	if err := f.Close(ctx); err != nil {
		log.Panicf("close %v: %v", path, err)
	}
	return ref
}

// readPairs drains both FASTQ streams into memory as a slice of
// mapper.Pair; a non-multiple-of-four record at end of stream is silently
// dropped by encoding/fastq, not reported, per spec.md §7.
func readPairs(ctx context.Context, r1Path, r2Path string) []mapper.Pair {
	f1, in1 := openInput(ctx, r1Path)
	f2, in2 := openInput(ctx, r2Path)

	sc := fastqpair.NewScanner(in1, in2)
	var pairs []mapper.Pair
	for {
		pair, ok := sc.Scan()
		if !ok {
			break
		}
		pairs = append(pairs, pair)
	}
	if err := sc.Err(); err != nil {
		log.Panicf("read %v,%v: %v", r1Path, r2Path, err)
	}

	once := errors.Once{}
	once.Set(f1.Close(ctx))
	once.Set(f2.Close(ctx))
	if err := once.Err(); err != nil {
		log.Panicf("close %v,%v: %v", r1Path, r2Path, err)
	}
	return pairs
}

// readGroundTruth loads the optional solution map; an absent path is not
// an error, per spec.md §7 -- the metrics stage is simply skipped.
func readGroundTruth(ctx context.Context, path string) map[string]mapper.Truth {
	if path == "" {
		return nil
	}
	f, r := openInput(ctx, path)
	solution, err := groundtruth.Read(r)
	if err != nil {
		log.Panicf("malformed ground truth %v: %v", path, err)
	}
	if err := f.Close(ctx); err != nil {
		log.Panicf("close %v: %v", path, err)
	}
	return solution
}

func writeAlignments(ctx context.Context, path string, ref refio.Reference, results []mapper.PairResult) {
	out, err := file.Create(ctx, path)
	if err != nil {
		log.Panicf("create %v: %v", path, err)
	}
	w := samtext.NewWriter(out.Writer(ctx), ref.Name, len(ref.Seq))
	// Ordering: batches may complete out of input order (spec.md §5); we
	// write results in whatever order the executor returned them, with the
	// two mates of a pair always adjacent, matching the "no deterministic
	// thread-order output" non-goal.
	for _, res := range results {
		if err := w.Write(res.First); err != nil {
			log.Panicf("write %v: %v", path, err)
		}
		if err := w.Write(res.Second); err != nil {
			log.Panicf("write %v: %v", path, err)
		}
	}
	once := errors.Once{}
	once.Set(w.Flush())
	once.Set(out.Close(ctx))
	if err := once.Err(); err != nil {
		log.Panicf("close %v: %v", path, err)
	}
}

func runMetrics(solution map[string]mapper.Truth, opts mapper.Opts, results []mapper.PairResult) {
	if solution == nil {
		return
	}
	acc := mapper.NewMetricsAccumulator(solution, opts)
	for _, res := range results {
		acc.Observe(res.First)
		acc.Observe(res.Second)
	}
	r := acc.Finish()
	log.Printf("Metrics: TP=%d FP=%d FN=%d TN=%d precision=%.4f recall=%.4f accuracy=%.4f",
		r.TP, r.FP, r.FN, r.TN, r.Precision, r.Recall, r.Accuracy)
}

// Map runs the whole pipeline once, end to end: read reference, read read
// pairs, build the index, map in parallel, write output, and (if ground
// truth was given) report accuracy. It is split out of main so the e2e
// test can drive it directly without going through flag.Parse.
func Map(ctx context.Context, flags cmdFlags, opts mapper.Opts) {
	start := time.Now()
	ref := readReference(ctx, flags.referencePath)
	log.Printf("Reference %s: %d bases", ref.Name, len(ref.Seq))

	idx := mapper.BuildReferenceIndex(ref.Seq, opts)
	log.Printf("Built reference index in %s", time.Since(start))

	pairs := readPairs(ctx, flags.r1Path, flags.r2Path)
	log.Printf("Read %d read pairs", len(pairs))

	solution := readGroundTruth(ctx, flags.groundTruthPath)

	results, stats, err := mapper.Run(pairs, idx, ref.Seq, opts)
	if err != nil {
		log.Panicf("mapping run failed: %v", err)
	}

	writeAlignments(ctx, flags.outputPath, ref, results)
	runMetrics(solution, opts, results)

	total := stats.MappedReads + stats.UnmappedReads
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(stats.MappedReads) / float64(total)
	}
	log.Printf("Done: %d pairs, %d/%d reads mapped (%.1f%%), elapsed %s",
		stats.Pairs, stats.MappedReads, total, pct, time.Since(start))
}

func main() {
	flags := cmdFlags{}
	opts := mapper.DefaultOpts
	// The command-line entry point's WindowSize default (30) intentionally
	// differs from the library default (10, mapper.DefaultOpts); see
	// SPEC_FULL.md §1's resolution of spec.md §9's open question.
	opts.WindowSize = 30

	flag.StringVar(&flags.referencePath, "reference", "", "Path to the reference FASTA file (required).")
	flag.StringVar(&flags.r1Path, "r1", "", "Path to the first-mate FASTQ file (required).")
	flag.StringVar(&flags.r2Path, "r2", "", "Path to the second-mate FASTQ file (required).")
	flag.StringVar(&flags.outputPath, "output", "", "Path to write tab-delimited alignment records to (required).")
	flag.StringVar(&flags.groundTruthPath, "ground-truth", "", "Optional path to a read_id\\tstart\\tend ground-truth file for accuracy metrics.")
	flag.IntVar(&opts.KmerLength, "k", opts.KmerLength, "Minimizer k-mer length.")
	flag.IntVar(&opts.WindowSize, "w", opts.WindowSize, "Minimizer window size.")
	flag.IntVar(&opts.Band, "band", opts.Band, "Banded DP half-bandwidth.")
	flag.IntVar(&opts.Pad, "pad", opts.Pad, "Reference window padding around the seed diagonal.")
	flag.Float64Var(&opts.MaxEditRate, "max-edit-rate", opts.MaxEditRate, "Maximum tolerated edit rate before a read is declared unmapped.")
	flag.IntVar(&opts.WorkerCount, "workers", opts.WorkerCount, "Number of parallel mapping workers.")
	flag.IntVar(&opts.MetricsTolerance, "metrics-tolerance", opts.MetricsTolerance, "Coordinate tolerance (bases) for ground-truth TP matching.")
	flag.Parse()

	if flags.referencePath == "" || flags.r1Path == "" || flags.r2Path == "" || flags.outputPath == "" {
		log.Fatal("-reference, -r1, -r2 and -output are all required")
	}

	Map(vcontext.Background(), flags, opts)
}
