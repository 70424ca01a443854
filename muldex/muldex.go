// Package muldex implements the Multiset index (spec §4.C): the
// "uniques" and "twoplus" structures that let the flip engine add,
// remove, and uniformly sample duplicate-valued slots in O(1) amortized
// time regardless of how many terms the search is carrying.
package muldex

import (
	"sync"

	"math/rand"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/flipgraph/gf2mm/bitboard"
)

// bucket is the order-insensitive position list for one nonzero slot
// value, plus the value itself (kept so SampleValue can return it
// without a second lookup).
type bucket struct {
	value     bitboard.Bits
	positions []int
}

// Index is the uniques/twoplus pair described by spec §4.C. The zero
// value is not usable; construct with New.
type Index struct {
	uniques map[string]*bucket

	// twoplus lists the keys of every bucket with >=2 positions, with
	// twoplusPos giving each key's slot in twoplus for O(1) swap-pop
	// removal (design notes §9: no linked-list substitution).
	twoplus    []string
	twoplusPos map[string]int
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		uniques:    make(map[string]*bucket),
		twoplusPos: make(map[string]int),
	}
}

// Add records that component position pos now holds value v. Complexity
// O(1) amortized.
func (idx *Index) Add(pos int, v bitboard.Bits) {
	key := v.Key()
	b, ok := idx.uniques[key]
	if !ok {
		idx.uniques[key] = &bucket{value: v.Clone(), positions: []int{pos}}
		return
	}
	b.positions = append(b.positions, pos)
	if len(b.positions) == 2 {
		idx.pushTwoplus(key)
	}
}

// Remove records that component position pos no longer holds value v.
// pos must currently be present in v's bucket. Complexity O(1) amortized
// (the linear scan within a bucket is bounded by the bucket's own size,
// which is the same cost the original dict-of-lists pays).
func (idx *Index) Remove(pos int, v bitboard.Bits) {
	key := v.Key()
	b, ok := idx.uniques[key]
	if !ok {
		return
	}

	before := len(b.positions)
	for i, p := range b.positions {
		if p == pos {
			last := len(b.positions) - 1
			b.positions[i] = b.positions[last]
			b.positions = b.positions[:last]
			break
		}
	}
	after := len(b.positions)

	if before == 2 && after == 1 {
		idx.popTwoplus(key)
	}
	if after == 0 {
		delete(idx.uniques, key)
	}
}

// pushTwoplus inserts key into twoplus; key must not already be present.
func (idx *Index) pushTwoplus(key string) {
	idx.twoplusPos[key] = len(idx.twoplus)
	idx.twoplus = append(idx.twoplus, key)
}

// popTwoplus removes key from twoplus via swap-pop against its stored
// index, per spec §4.C's remove(pos,v) rule.
func (idx *Index) popTwoplus(key string) {
	pos, ok := idx.twoplusPos[key]
	if !ok {
		return
	}
	last := len(idx.twoplus) - 1
	moved := idx.twoplus[last]
	idx.twoplus[pos] = moved
	idx.twoplusPos[moved] = pos
	idx.twoplus = idx.twoplus[:last]
	delete(idx.twoplusPos, key)
}

// Len returns the number of distinct nonzero values currently tracked.
func (idx *Index) Len() int { return len(idx.uniques) }

// TwoplusLen returns the number of values with multiplicity >= 2, i.e.
// the number of values a flip could currently pivot on.
func (idx *Index) TwoplusLen() int { return len(idx.twoplus) }

// TwoplusValues returns every value currently in twoplus. Used by the
// infinite-loop guard (spec §4.D), which must inspect every candidate
// pivot value, not just a random sample of one.
func (idx *Index) TwoplusValues() []bitboard.Bits {
	out := make([]bitboard.Bits, len(idx.twoplus))
	for i, key := range idx.twoplus {
		out[i] = idx.uniques[key].value
	}
	return out
}

// Positions returns the (order-insensitive) component positions
// currently holding v, or nil if v is not tracked. The returned slice
// is owned by the index; callers must not mutate it.
func (idx *Index) Positions(v bitboard.Bits) []int {
	b, ok := idx.uniques[v.Key()]
	if !ok {
		return nil
	}
	return b.positions
}

// SampleValue draws a value uniformly at random from twoplus. ok is
// false iff twoplus is empty, the no-progress state of spec §7.
func (idx *Index) SampleValue(rng *rand.Rand) (v bitboard.Bits, ok bool) {
	if len(idx.twoplus) == 0 {
		return bitboard.Bits{}, false
	}
	key := idx.twoplus[rng.Intn(len(idx.twoplus))]
	return idx.uniques[key].value, true
}

// SamplePair draws an ordered pair (p, q) of distinct component
// positions holding v, uniform over the |bucket|*(|bucket|-1) ordered
// pairs per spec §4.D. ok is false if v is not in twoplus.
func (idx *Index) SamplePair(rng *rand.Rand, v bitboard.Bits) (p, q int, ok bool) {
	b, present := idx.uniques[v.Key()]
	if !present || len(b.positions) < 2 {
		return 0, 0, false
	}
	table := orderedPairs(len(b.positions))
	pair := table[rng.Intn(len(table))]
	return b.positions[pair[0]], b.positions[pair[1]], true
}

var (
	pairTableMu sync.Mutex
	pairTable   = make(map[int][][2]int)
)

// orderedPairs returns all k*(k-1) ordered pairs of distinct indices in
// [0,k), built from gonum's unordered Combinations(k,2) expanded to
// both orderings and memoized per k — the "precomputed index table"
// spec §4.D calls for, since k depends only on bucket size.
func orderedPairs(k int) [][2]int {
	pairTableMu.Lock()
	defer pairTableMu.Unlock()

	if table, ok := pairTable[k]; ok {
		return table
	}
	if k < 2 {
		pairTable[k] = nil
		return nil
	}

	unordered := combin.Combinations(k, 2)
	table := make([][2]int, 0, k*(k-1))
	for _, c := range unordered {
		table = append(table, [2]int{c[0], c[1]}, [2]int{c[1], c[0]})
	}
	pairTable[k] = table
	return table
}
