// Copyright 2024 The Sketch Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package handle implements a generational slot table: a parametric
// container that maps a Handle{Idx, Gen} to a payload of type T with O(1)
// create/destroy/lookup and detection of stale handles.
package handle

// MaxSlots is the largest capacity a Table may grow to. Idx is a uint16 and
// 0xFFFF is reserved for the Invalid sentinel and the free-list end, so slot
// indices run from 0 to 2^16-2.
const MaxSlots = 1<<16 - 1

// Invalid is the sentinel handle returned when a Table cannot allocate a
// new slot. Gen 0 never occurs on a live slot (fresh slots start at Gen 1),
// so Invalid can never alias a real handle.
var Invalid = Handle{Idx: 0xFFFF, Gen: 0}

// Handle identifies a slot in a Table by index and generation. Two handles
// compare equal iff both fields match.
type Handle struct {
	Idx uint16
	Gen uint32
}

// IsValid reports whether h is not the Invalid sentinel. It does not check
// whether h refers to a live slot in any particular Table; use Table.Alive
// for that.
func (h Handle) IsValid() bool {
	return h != Invalid
}

// slot holds one payload plus the bookkeeping needed to detect staleness
// and to thread the free list.
type slot[T any] struct {
	gen      uint32
	alive    bool
	nextFree uint16 // valid only when !alive
	payload  T
}

// noFree marks the end of the free-list chain.
const noFree uint16 = 0xFFFF

// Table is a generational slot table over payload type T. The zero value is
// not usable; construct one with New.
type Table[T any] struct {
	slots    []slot[T]
	freeHead uint16
	live     int
}

// New returns an empty Table whose backing array is pre-allocated for cap
// slots. The table holds no slots yet: the first Create, like every Create
// that finds the free list empty, adds a batch of slots through grow. cap
// may be zero.
func New[T any](cap int) *Table[T] {
	if cap < 0 {
		cap = 0
	}
	if cap > MaxSlots {
		cap = MaxSlots
	}
	return &Table[T]{
		slots:    make([]slot[T], 0, cap),
		freeHead: noFree,
	}
}

// Len returns the number of currently live slots.
func (t *Table[T]) Len() int {
	return t.live
}

// Cap returns the current backing capacity (never shrinks).
func (t *Table[T]) Cap() int {
	return len(t.slots)
}

// Create inserts init and returns a fresh handle. On exhaustion of the
// 2^16-1 capacity ceiling it returns the Invalid sentinel rather than
// growing further.
func (t *Table[T]) Create(init T) Handle {
	if t.freeHead == noFree {
		if !t.grow() {
			return Invalid
		}
	}
	idx := t.freeHead
	s := &t.slots[idx]
	t.freeHead = s.nextFree
	s.alive = true
	s.payload = init
	if s.gen == 0 {
		s.gen = 1 // generation 0 is reserved for the sentinel
	}
	t.live++
	return Handle{Idx: idx, Gen: s.gen}
}

// grow appends a geometric batch of fresh dead slots to the free list.
// Growth increment is max(64, cap/2), capped so the table never exceeds
// MaxSlots. Returns false if the table is already at MaxSlots.
func (t *Table[T]) grow() bool {
	cur := len(t.slots)
	if cur >= MaxSlots {
		return false
	}
	add := cur / 2
	if add < 64 {
		add = 64
	}
	if cur+add > MaxSlots {
		add = MaxSlots - cur
	}
	if add <= 0 {
		return false
	}
	t.slots = append(t.slots, make([]slot[T], add)...)
	// thread the new region onto the free list, last-appended slot first so
	// Create hands out the lowest new index first.
	for i := cur + add - 1; i >= cur; i-- {
		t.slots[i].gen = 1
		t.slots[i].nextFree = t.freeHead
		t.freeHead = uint16(i)
	}
	return true
}

// Alive reports whether h names a live slot: its index is in range, the
// slot is marked alive, and the generations match.
func (t *Table[T]) Alive(h Handle) bool {
	if int(h.Idx) >= len(t.slots) {
		return false
	}
	s := &t.slots[h.Idx]
	return s.alive && s.gen == h.Gen
}

// Get returns a pointer to h's payload and true if h is alive, or (nil,
// false) otherwise. The pointer is valid until the next Destroy of any
// handle sharing h's index, or until the table grows.
func (t *Table[T]) Get(h Handle) (*T, bool) {
	if !t.Alive(h) {
		return nil, false
	}
	return &t.slots[h.Idx].payload, true
}

// GetConst is the read-only counterpart of Get, returning a copy rather
// than a mutable pointer.
func (t *Table[T]) GetConst(h Handle) (T, bool) {
	p, ok := t.Get(h)
	if !ok {
		var zero T
		return zero, false
	}
	return *p, true
}

// Destroy marks h's slot dead, pushes it onto the free list, and bumps its
// generation so any outstanding copy of h becomes stale. Destroying a
// handle that is already stale or out of range is a no-op and returns
// false.
func (t *Table[T]) Destroy(h Handle) bool {
	if !t.Alive(h) {
		return false
	}
	s := &t.slots[h.Idx]
	var zero T
	s.payload = zero
	s.alive = false
	s.gen++ // wraps silently past 2^32-1; Create turns a wrapped 0 back into 1
	s.nextFree = t.freeHead
	t.freeHead = h.Idx
	t.live--
	return true
}

// Each calls fn for every live slot in ascending slot-index order, passing
// the handle that currently names it. This fixes the ordering callers
// that flatten a table into a dense vector rely on: stable for the
// duration of one scan, and stable across scans only if the set of live
// slots has not changed.
func (t *Table[T]) Each(fn func(h Handle, payload *T)) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.alive {
			fn(Handle{Idx: uint16(i), Gen: s.gen}, &s.payload)
		}
	}
}
