// Package tt implements the fixed-capacity, cluster-bucketed, lock-free
// transposition table shared by search and perft.
package tt

import "sync/atomic"

// ClusterSize is the number of entries sharing a hash bucket.
const ClusterSize = 4

// entry is a single transposition slot stored as two 64-bit words using the
// XOR trick: key holds (origKey ^ data), so a reader reconstructs
// origKey' = key ^ data and rejects the entry as a miss on any mismatch,
// including the mismatch produced by a torn concurrent read.
type entry struct {
	data atomic.Uint64
	key  atomic.Uint64
}

// load returns the stored payload and whether it reconstructs to want.
func (e *entry) load(want uint64) (data uint64, ok bool) {
	data = e.data.Load()
	key := e.key.Load()
	return data, key^data == want
}

// depth extracts the top-byte depth field shared by both payload encodings.
func (e *entry) depth() int {
	return int(e.data.Load() >> 56)
}

// store publishes a new payload under key. The tag word is written before
// the payload word so a reader racing the write sees either the fully old
// or fully new pair, or a torn mix that fails the key check above.
func (e *entry) store(key, data uint64) {
	e.key.Store(key ^ data)
	e.data.Store(data)
}

func (e *entry) clear() {
	e.key.Store(0)
	e.data.Store(0)
}

type cluster [ClusterSize]entry

// probe returns the first entry whose reconstructed key matches, else a
// synthetic empty payload (depth 0).
func (c *cluster) probe(key uint64) (data uint64, found bool) {
	for i := range c {
		if data, ok := c[i].load(key); ok {
			return data, true
		}
	}
	return 0, false
}

// write replaces the shallowest-depth entry in the cluster; no age field,
// no always-replace slot.
func (c *cluster) write(key, data uint64) {
	min := 0
	for i := 1; i < ClusterSize; i++ {
		if c[i].depth() < c[min].depth() {
			min = i
		}
	}
	c[min].store(key, data)
}

func (c *cluster) clear() {
	for i := range c {
		c[i].clear()
	}
}

// clusterBytes is sizeof(cluster): ClusterSize entries of two uint64 words.
const clusterBytes = ClusterSize * 16

// sizeForMB returns the number of clusters that fit in the given MB budget,
// at least one.
func sizeForMB(mb int) int {
	if mb <= 0 {
		mb = 1
	}
	size := (1 << 20) * mb / clusterBytes
	if size < 1 {
		size = 1
	}
	return size
}
