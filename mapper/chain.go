// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import "sort"

// diagKey identifies one exact diagonal bucket: anchors with the same
// SameStrand and the same diagonal offset.
type diagKey struct {
	sameStrand bool
	diag       int
}

func diagonalOf(a Anchor) int {
	if a.SameStrand {
		return a.ReadPos - a.RefPos
	}
	return a.ReadPos + a.RefPos
}

// Chain returns the largest exact-diagonal colinear cluster of anchors (C4).
// It returns nil if and only if anchors is empty.
//
// Anchors are first sorted by (ReadPos, RefPos) for determinism, then
// bucketed by diagonal key. Ties in bucket size are broken by whichever
// bucket's first anchor sorts earliest -- a direct consequence of bucketing
// already-sorted anchors in order, since the first anchor assigned to each
// bucket is its earliest-sorting member.
func Chain(anchors []Anchor) []Anchor {
	if len(anchors) == 0 {
		return nil
	}

	sorted := make([]Anchor, len(anchors))
	copy(sorted, anchors)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ReadPos != sorted[j].ReadPos {
			return sorted[i].ReadPos < sorted[j].ReadPos
		}
		return sorted[i].RefPos < sorted[j].RefPos
	})

	buckets := map[diagKey][]Anchor{}
	var order []diagKey
	for _, a := range sorted {
		k := diagKey{sameStrand: a.SameStrand, diag: diagonalOf(a)}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], a)
	}

	var best []Anchor
	for _, k := range order {
		b := buckets[k]
		if len(b) > len(best) {
			best = b
		}
	}
	return best
}
