// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package refio reads the single-record reference FASTA format consumed by
// the mapping core: a header line, then sequence lines concatenated with
// whitespace stripped. It deliberately does not support multi-record
// FASTA, bgzf, or random-access indices -- see encoding/fasta in the
// teacher lineage for that heavier reader, out of scope here.
package refio

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	pkgerrors "github.com/pkg/errors"
)

// Reference is a single named reference sequence.
type Reference struct {
	// Name is the first whitespace-delimited token of the header line,
	// minus the leading '>'.
	Name string
	// Seq is the reference sequence, whitespace stripped, upper-cased.
	Seq string
}

// Read parses one reference FASTA record from r. It requires the first
// line to begin with '>', and requires at least one non-empty sequence
// line after the header.
func Read(r io.Reader) (Reference, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<30)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Reference{}, pkgerrors.Wrap(err, "refio: couldn't read reference data")
		}
		return Reference{}, errors.E("refio: empty reference stream")
	}
	header := sc.Text()
	if len(header) == 0 || header[0] != '>' {
		return Reference{}, errors.E("refio: missing '>' header")
	}
	name := strings.Fields(header[1:])
	if len(name) == 0 {
		return Reference{}, errors.E("refio: empty header name")
	}

	var b strings.Builder
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		b.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return Reference{}, pkgerrors.Wrap(err, "refio: couldn't read reference data")
	}
	seq := strings.ToUpper(b.String())
	if seq == "" {
		return Reference{}, errors.E("refio: empty reference after header")
	}
	return Reference{Name: name[0], Seq: seq}, nil
}
