// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// Stats holds run-level counters accumulated by the executor (C7), one
// instance per batch, merged as the batch results are gathered.
type Stats struct {
	// Pairs is the total number of read pairs processed.
	Pairs int
	// MappedReads is the total number of individual mates (0, 1, or 2 per
	// pair) that mapped.
	MappedReads int
	// UnmappedReads is the complement of MappedReads.
	UnmappedReads int
}

// Merge adds the field values of the two Stats objects and returns the sum,
// in the style of fusion.Stats.Merge.
func (s Stats) Merge(o Stats) Stats {
	s.Pairs += o.Pairs
	s.MappedReads += o.MappedReads
	s.UnmappedReads += o.UnmappedReads
	return s
}

func (s *Stats) observe(a Alignment) {
	if a.Mapped {
		s.MappedReads++
	} else {
		s.UnmappedReads++
	}
}
