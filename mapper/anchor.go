// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// FindAnchors extracts the minimizers of seq and looks each one up in idx,
// producing the anchor list consumed by the chainer (C6's inner "anchor
// lookup" phase, spec §4.4).
func FindAnchors(seq string, seqID int, idx *ReferenceIndex, opts Opts) []Anchor {
	minimizers := ExtractMinimizers(seq, opts.KmerLength, opts.WindowSize, seqID)
	var anchors []Anchor
	for _, m := range minimizers {
		for _, hit := range idx.Lookup(m.Hash) {
			anchors = append(anchors, Anchor{
				RefPos:     hit.RefPos,
				ReadPos:    m.Pos,
				SameStrand: m.IsReverse == hit.IsReverse,
			})
		}
	}
	return anchors
}
