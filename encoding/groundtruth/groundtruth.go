// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package groundtruth reads the optional tab-delimited solution file
// consumed by the metrics accumulator: read_id, truth_start, truth_end,
// zero-based half-open coordinates aligned to the reference string.
package groundtruth

import (
	"io"

	"github.com/grailbio/base/tsv"
	"github.com/grailbio/seqmap/mapper"
)

// Read parses a headerless read_id\tstart\tend stream into a solution map
// suitable for mapper.NewMetricsAccumulator, the same way
// fusion/gene_db.go reads its headered Cosmic TSV with tsv.NewReader.
func Read(r io.Reader) (map[string]mapper.Truth, error) {
	tr := tsv.NewReader(r)

	solution := map[string]mapper.Truth{}
	row := struct {
		ReadID string
		Start  int
		End    int
	}{}
	for {
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		solution[row.ReadID] = mapper.Truth{Start: row.Start, End: row.End}
	}
	return solution, nil
}
