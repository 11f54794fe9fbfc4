// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

import (
	gunsafe "github.com/grailbio/base/unsafe"
)

// revCompTable maps a base to its complement, ASCII-indexed. Anything that
// isn't a recognized base -- in particular 'N'/'n' -- maps to 'N', never to
// 'A': an N must never match another base during extension, so it cannot be
// folded into a real base here. (Minimizer hashing folds N to the same code
// as A for a different reason -- see hash.go's baseEncoding -- but the
// reverse complement itself preserves N.)
var revCompTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	for b, c := range map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'a': 'T', 'c': 'G', 'g': 'C', 't': 'A'} {
		t[b] = c
	}
	return t
}()

// reverseComplement computes the reverse complement of a DNA string.
func reverseComplement(seq string) string {
	src := gunsafe.StringToBytes(seq)
	n := len(src)
	buf := make([]byte, n)
	for i, b := range src {
		buf[n-1-i] = revCompTable[b]
	}
	return gunsafe.BytesToString(buf)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}
