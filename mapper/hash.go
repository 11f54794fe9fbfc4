// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package mapper

// This file implements the rolling polynomial hash that underlies the
// minimizer scheme in minimizer.go. It is a base-4 polynomial hash modulo
// 2^64 (natural uint64 wraparound), over the 4-letter {A,C,G,T} alphabet.
// N and any other byte hash as if they were 'A': the extender (extend.go)
// is responsible for rejecting N matches independently, so a hash collision
// between N and A here is harmless.

// baseEncoding maps ASCII bytes to 2-bit codes: A/a->0, T/t->1, G/g->2,
// C/c->3. Every other byte, including N/n, maps to 0.
var baseEncoding [256]uint64

func init() {
	baseEncoding['A'], baseEncoding['a'] = 0, 0
	baseEncoding['T'], baseEncoding['t'] = 1, 1
	baseEncoding['G'], baseEncoding['g'] = 2, 2
	baseEncoding['C'], baseEncoding['c'] = 3, 3
}

const hashBase uint64 = 4

// RollingHash computes base-4 polynomial hashes of fixed-length windows over
// a byte sequence, modulo 2^64. Arithmetic relies on Go's defined unsigned
// integer wraparound, so the modulus is exact on every platform.
//
// RollingHash holds no sequence state; it is a pure function holder for a
// fixed k, reusable across any number of sequences and goroutines.
type RollingHash struct {
	k     int
	power uint64 // hashBase^(k-1) mod 2^64, precomputed so roll is O(1).
}

// NewRollingHash returns a RollingHash for k-letter windows.
func NewRollingHash(k int) RollingHash {
	h := RollingHash{k: k, power: 1}
	for i := 0; i < k-1; i++ {
		h.power *= hashBase
	}
	return h
}

// K returns the window length this hash was constructed for.
func (h RollingHash) K() int { return h.k }

// Hash computes the hash of a k-letter window from scratch.
//
// REQUIRES: len(window) == h.k.
func (h RollingHash) Hash(window []byte) uint64 {
	var v uint64
	for _, b := range window {
		v = v*hashBase + baseEncoding[b]
	}
	return v
}

// Roll produces the hash of the next window given the hash of the previous
// window, the letter that is sliding out (leftmost of the previous window),
// and the letter sliding in (rightmost of the new window).
func (h RollingHash) Roll(prev uint64, outLetter, inLetter byte) uint64 {
	v := prev - baseEncoding[outLetter]*h.power
	return v*hashBase + baseEncoding[inLetter]
}
