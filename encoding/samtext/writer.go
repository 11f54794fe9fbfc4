// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package samtext implements the output adapter (C8): the 11-field
// tab-delimited alignment record format of spec.md §6, with its two
// header lines.
package samtext

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grailbio/seqmap/mapper"
)

// Writer emits the tab-delimited record stream: QNAME, FLAG, RNAME, POS,
// MAPQ, CIGAR, RNEXT, PNEXT, TLEN, SEQ, QUAL.
//
// TLEN is kept as ref_end-ref_start, not the signed canonical insert-size
// value, for byte-compatibility with the system this format was derived
// from; see SPEC_FULL.md §1.
type Writer struct {
	w             *bufio.Writer
	wroteHeader   bool
	referenceName string
	referenceLen  int
}

// NewWriter constructs a Writer over w. refName and refLen populate the
// @SQ header line emitted before the first record.
func NewWriter(w io.Writer, refName string, refLen int) *Writer {
	return &Writer{w: bufio.NewWriter(w), referenceName: refName, referenceLen: refLen}
}

func (s *Writer) writeHeader() error {
	if s.wroteHeader {
		return nil
	}
	s.wroteHeader = true
	if _, err := fmt.Fprintf(s.w, "@HD\tVN:1.7\tSO:unsorted\n"); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.w, "@SQ\tSN:%s\tLN:%d\n", s.referenceName, s.referenceLen)
	return err
}

// Write emits one alignment record.
func (s *Writer) Write(a mapper.Alignment) error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	cigar := a.Cigar
	if !a.Mapped {
		cigar = "*"
	}
	tlen := -1
	if a.Mapped {
		tlen = a.RefEnd - a.RefStart
	}
	_, err := fmt.Fprintf(s.w, "%s\t%d\t%s\t%d\t%d\t%s\t%s\t%d\t%d\t*\t%s\n",
		a.ReadID, a.Flag, s.referenceName, a.RefStart, a.Mapq, cigar, a.Rnext, a.Pnext, tlen, a.Qual)
	return err
}

// Flush flushes any buffered output.
func (s *Writer) Flush() error {
	return s.w.Flush()
}
