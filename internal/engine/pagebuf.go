package engine

import (
	"github.com/tuannm99/relcore/internal/obslog"
	"github.com/tuannm99/relcore/pkg/clockx"
)

// pageSlot caches one decoded page.
type pageSlot struct {
	occupied bool
	pageID   uint64
	ipid     uint32
	oid      uint32
	name     string
	nattrs   uint32
	pin      int32 // 0 or 1
	tuples   [][]int32
}

// pageBuffer is the fixed-capacity, clock-swept cache of decoded
// pages.
type pageBuffer struct {
	slots []pageSlot
	clock *clockx.Clock
	obs   obslog.Observer
}

func newPageBuffer(capacity int, obs obslog.Observer) *pageBuffer {
	return &pageBuffer{
		slots: make([]pageSlot, capacity),
		clock: clockx.New(capacity),
		obs:   obs,
	}
}

// lookup returns the index of the occupied slot caching (tableName, ipid).
func (pb *pageBuffer) lookup(tableName string, ipid uint32) (int, bool) {
	for i := range pb.slots {
		if pb.slots[i].occupied && pb.slots[i].name == tableName && pb.slots[i].ipid == ipid {
			return i, true
		}
	}
	return -1, false
}

// pinSlot marks slot as pinned and bumps its use count: a buffer hit
// sets pin=1 (idempotently) and increments use by one.
func (pb *pageBuffer) pinSlot(idx int) {
	pb.slots[idx].pin = 1
	pb.clock.Touch(idx)
	pb.clock.SetEvictable(idx, false)
}

// release unpins a slot without touching its use count.
func (pb *pageBuffer) release(idx int) {
	pb.slots[idx].pin = 0
	pb.clock.SetEvictable(idx, true)
}

// acquireSlot returns an index ready to receive a freshly decoded
// page: an empty slot if one exists, else the clock-sweep victim.
// Returns ErrBufferExhausted if every slot is pinned.
func (pb *pageBuffer) acquireSlot() (int, error) {
	for i := range pb.slots {
		if !pb.slots[i].occupied {
			return i, nil
		}
	}

	victim, ok := pb.clock.Evict()
	if !ok {
		return -1, ErrBufferExhausted
	}

	pb.obs.ReleasePage(pb.slots[victim].pageID)
	pb.slots[victim] = pageSlot{}
	return victim, nil
}

// fill populates an empty or just-evicted slot with a freshly decoded
// page and pins it with use=1.
func (pb *pageBuffer) fill(idx int, s pageSlot) {
	s.occupied = true
	s.pin = 1
	pb.slots[idx] = s
	pb.clock.Touch(idx)
	pb.clock.SetEvictable(idx, false)
}
