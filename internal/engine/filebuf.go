package engine

import (
	"fmt"
	"os"

	"go.uber.org/multierr"

	"github.com/tuannm99/relcore/internal/obslog"
)

// fileSlot caches one open file handle plus the table metadata the
// page reader needs to decode pages without re-touching the catalog.
type fileSlot struct {
	occupied bool
	oid      uint32
	name     string
	nattrs   uint32
	ntuples  uint32
	npages   uint32
	path     string
	file     *os.File
}

// fileBuffer is the fixed-capacity, round-robin-replaced cache of
// open file descriptors.
type fileBuffer struct {
	slots []fileSlot
	nvf   int // next victim file to evict
	obs   obslog.Observer
}

func newFileBuffer(limit int, obs obslog.Observer) *fileBuffer {
	return &fileBuffer{
		slots: make([]fileSlot, limit),
		obs:   obs,
	}
}

// lookup returns the index of the occupied slot caching tableName, by
// linear scan, and false on miss.
func (fb *fileBuffer) lookup(tableName string) (int, bool) {
	for i := range fb.slots {
		if fb.slots[i].occupied && fb.slots[i].name == tableName {
			return i, true
		}
	}
	return -1, false
}

// acquireSlot returns an index ready to receive a fresh fileSlot,
// evicting round-robin if every slot is occupied.
func (fb *fileBuffer) acquireSlot() int {
	for i := range fb.slots {
		if !fb.slots[i].occupied {
			return i
		}
	}

	victim := fb.nvf
	old := fb.slots[victim]
	if old.file != nil {
		_ = old.file.Close()
	}
	fb.obs.CloseFile(old.oid)
	fb.slots[victim] = fileSlot{}

	fb.nvf = (fb.nvf + 1) % len(fb.slots)
	return victim
}

// closeAll closes every occupied file handle exactly once, combining
// every close error encountered (not just the first) into one error.
func (fb *fileBuffer) closeAll() error {
	var err error
	for i := range fb.slots {
		if !fb.slots[i].occupied || fb.slots[i].file == nil {
			continue
		}
		if cerr := fb.slots[i].file.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("engine: close file for oid %d: %w", fb.slots[i].oid, cerr))
		}
		fb.slots[i] = fileSlot{}
	}
	return err
}
