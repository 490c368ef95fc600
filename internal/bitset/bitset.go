/*
Copyright 2014 Will Fitzgerald. All rights reserved.
Use of this source code is governed by a BSD-style
license that can be found in the LICENSE file.
*/

// Package bitset implements bitsets, a mapping between non-negative
// integers and boolean values, trimmed to the handful of operations
// geom's table self-check needs: test, set and popcount.
//
// This is a simplified and stripped down version of:
//
//	github.com/bits-and-blooms/bitset
//
// All bugs belong to me.
package bitset

import (
	"math/bits"
)

// the wordSize of a bit set
const wordSize = 64

// log2WordSize is lg(wordSize)
const log2WordSize = 6

// A BitSet is a slice of words.
type BitSet []uint64

// extendSet adds additional words to incorporate new bits if needed.
func (b *BitSet) extendSet(i uint) {
	nsize := wordsNeeded(i)
	if b == nil {
		*b = make([]uint64, nsize)
	} else if len(*b) < nsize {
		newset := make([]uint64, nsize)
		copy(newset, *b)
		*b = newset
	}
}

// bitsCapacity returns the number of possible bits in the current set.
func (b BitSet) bitsCapacity() uint {
	return uint(len(b) * 64)
}

// wordsNeeded calculates the number of words needed to hold bit index i.
func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

// bitsIndex calculates the index of i in a `uint64`
func bitsIndex(i uint) uint {
	return i & (wordSize - 1) // (i % 64) but faster
}

// Test whether bit i is set.
func (b BitSet) Test(i uint) bool {
	if i >= b.bitsCapacity() {
		return false
	}
	return b[i>>log2WordSize]&(1<<bitsIndex(i)) != 0
}

// Set bit i to 1, the capacity of the bitset is increased accordingly.
func (b *BitSet) Set(i uint) {
	if i >= b.bitsCapacity() {
		b.extendSet(i)
	}
	(*b)[i>>log2WordSize] |= (1 << bitsIndex(i))
}

// Count (number of set bits). Also known as "popcount" or "population
// count".
func (b BitSet) Count() int {
	return popcntSlice(b)
}

func popcntSlice(s []uint64) int {
	var cnt int
	for _, x := range s {
		cnt += bits.OnesCount64(x)
	}
	return cnt
}
