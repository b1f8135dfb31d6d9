package assemble

import "sort"

// ─────────────────────────────────────────────────────────────
// Deferred sequence-ordered children
// Two-phase protocol: while records arrive, Put only buffers —
// mutations are last-write-wins per field, so arrival order never
// changes the result. Collate, called once at finish, sorts each
// parent's children ascending by sequence number.
// ─────────────────────────────────────────────────────────────

type seqKey[K comparable] struct {
	parent K
	seq    int
}

// SeqBuffer accumulates sequence-numbered children keyed by
// (parent, sequence) across potentially out-of-order record types.
type SeqBuffer[K comparable, C any] struct {
	buf   map[seqKey[K]]*C
	order []seqKey[K]
}

// NewSeqBuffer creates an empty buffer.
func NewSeqBuffer[K comparable, C any]() *SeqBuffer[K, C] {
	return &SeqBuffer[K, C]{buf: make(map[seqKey[K]]*C)}
}

// Put merges into the child buffered under (parent, seq), creating it
// if absent. More than one record type may contribute to the same
// child; each call re-reads and re-writes the buffered value.
func (b *SeqBuffer[K, C]) Put(parent K, seq int, merge func(*C)) {
	k := seqKey[K]{parent: parent, seq: seq}
	c, ok := b.buf[k]
	if !ok {
		c = new(C)
		b.buf[k] = c
		b.order = append(b.order, k)
	}
	merge(c)
}

// Len returns the number of buffered children.
func (b *SeqBuffer[K, C]) Len() int { return len(b.buf) }

// Collate returns each parent's children sorted ascending by sequence
// number. Ties are not expected; the sort is stable so they would at
// least keep arrival order.
func (b *SeqBuffer[K, C]) Collate() map[K][]*C {
	perParent := make(map[K][]seqKey[K])
	for _, k := range b.order {
		perParent[k.parent] = append(perParent[k.parent], k)
	}

	out := make(map[K][]*C, len(perParent))
	for parent, keys := range perParent {
		sort.SliceStable(keys, func(i, j int) bool { return keys[i].seq < keys[j].seq })
		children := make([]*C, 0, len(keys))
		for _, k := range keys {
			children = append(children, b.buf[k])
		}
		out[parent] = children
	}
	return out
}
