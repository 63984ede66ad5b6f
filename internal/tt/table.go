package tt

import (
	"math/bits"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

const (
	// SlotSize is the byte size of one slot: a key word and a data word.
	SlotSize = 16

	// MaxNodes is the largest node count a slot can hold.
	MaxNodes = 1<<56 - 1
	// MaxDepth is the largest depth a slot can hold.
	MaxDepth = 0xFF

	nodesOffset = 8
	depthMask   = 0xFF
)

// Entry is a decoded slot: the subtree rooted at the position with
// fingerprint Key, searched to Depth, holds Nodes leaves.
type Entry struct {
	Key   uint64
	Nodes uint64
	Depth uint8
}

// encode packs an entry into its two slot words. The key word carries the
// fingerprint xor the data word, so the pair checks itself on read.
func (e Entry) encode() (key, data uint64) {
	data = uint64(e.Depth) | (e.Nodes&MaxNodes)<<nodesOffset
	return e.Key ^ data, data
}

func decode(key, data uint64) Entry {
	return Entry{
		Key:   key ^ data,
		Nodes: data >> nodesOffset,
		Depth: uint8(data & depthMask),
	}
}

type slot struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// read returns the occupant if it belongs to key. A slot torn between two
// writers decodes to a fingerprint matching neither and reads as a miss.
func (s *slot) read(key uint64) (Entry, bool) {
	k := s.key.Load()
	d := s.data.Load()
	if k^d != key {
		return Entry{}, false
	}
	return decode(k, d), true
}

func (s *slot) readUnchecked() Entry {
	return decode(s.key.Load(), s.data.Load())
}

// write stores the data word before the key word.
func (s *slot) write(e Entry) {
	k, d := e.encode()
	s.data.Store(d)
	s.key.Store(k)
}

// Table is a fixed-size transposition table of perft node counts. Probe and
// Insert are safe for concurrent use without locks; Resize is not.
type Table struct {
	slots []slot
}

// New returns a table sized to megabytes.
func New(megabytes int) *Table {
	t := &Table{}
	t.Resize(megabytes)
	return t
}

// Resize reallocates the table to floor(megabytes * 2^20 / SlotSize) zeroed
// slots. A zero budget leaves a table where every probe misses and every
// insert is dropped.
func (t *Table) Resize(megabytes int) {
	if megabytes < 0 {
		megabytes = 0
	}
	n := (megabytes << 20) / SlotSize
	t.slots = make([]slot, n)

	log.Debug().Int("megabytes", megabytes).
		Int("num-slots", n).
		Str("allocated", humanize.IBytes(uint64(n)*SlotSize)).
		Msg("transposition-table-size")
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// Bytes returns the memory held by the slot array.
func (t *Table) Bytes() uint64 {
	return uint64(len(t.slots)) * SlotSize
}

// index maps key into [0, len) by multiply-shift.
func (t *Table) index(key uint64) uint64 {
	hi, _ := bits.Mul64(key, uint64(len(t.slots)))
	return hi
}

// Probe returns the entry stored for key, if the slot currently holds one.
func (t *Table) Probe(key uint64) (Entry, bool) {
	if len(t.slots) == 0 {
		return Entry{}, false
	}
	return t.slots[t.index(key)].read(key)
}

// Insert records nodes for key at depth. A slot holding a different
// position is always overwritten; a slot holding the same position is only
// overwritten by a strictly deeper result.
func (t *Table) Insert(key, nodes uint64, depth uint8) {
	if len(t.slots) == 0 || nodes > MaxNodes {
		return
	}
	s := &t.slots[t.index(key)]
	old := s.readUnchecked()

	if old.Key != key || depth > old.Depth {
		s.write(Entry{Key: key, Nodes: nodes, Depth: depth})
	}
}

// Usage returns the fraction of slots with a nonzero stored fingerprint.
func (t *Table) Usage() float64 {
	if len(t.slots) == 0 {
		return 0
	}
	used := 0
	for i := range t.slots {
		if t.slots[i].readUnchecked().Key != 0 {
			used++
		}
	}
	return float64(used) / float64(len(t.slots))
}
