// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package fastqpair is the thin adapter between encoding/fastq's raw
// four-line records and the mapper.Pair the mapping core consumes: it
// folds sequence case, derives each read's id and IsFirstOfPair from the
// read-id convention of spec.md §6, and pairs the two streams positionally.
package fastqpair

import (
	"io"
	"strings"

	"github.com/grailbio/seqmap/encoding/fastq"
	"github.com/grailbio/seqmap/mapper"
)

// Scanner reads two FASTQ streams in lockstep and yields mapper.Pair
// values, one per positional record pair.
type Scanner struct {
	s *fastq.PairScanner
}

// NewScanner constructs a Scanner over r1, r2.
func NewScanner(r1, r2 io.Reader) *Scanner {
	return &Scanner{s: fastq.NewPairScanner(r1, r2, fastq.ID|fastq.Seq|fastq.Qual)}
}

// Scan reads the next pair. It returns false when either stream is
// exhausted or on error; callers should check Err afterward.
func (s *Scanner) Scan() (mapper.Pair, bool) {
	var r1, r2 fastq.Read
	if !s.s.Scan(&r1, &r2) {
		return mapper.Pair{}, false
	}
	return mapper.Pair{First: toRead(r1), Second: toRead(r2)}, true
}

// Err returns the scanning error, if any, after Scan returns false.
func (s *Scanner) Err() error { return s.s.Err() }

// toRead converts a raw fastq.Read into a mapper.Read: the sequence is
// folded to upper case per the data model's alphabet rule, and the read
// id (with its leading '@' stripped) determines IsFirstOfPair by its
// last character -- '2' means false, anything else means true.
func toRead(r fastq.Read) mapper.Read {
	id := r.ID
	if len(id) > 0 && id[0] == '@' {
		id = id[1:]
	}
	isFirst := true
	if len(id) > 0 && id[len(id)-1] == '2' {
		isFirst = false
	}
	return mapper.Read{
		ID:            id,
		Seq:           strings.ToUpper(r.Seq),
		Qual:          r.Qual,
		IsFirstOfPair: isFirst,
	}
}
