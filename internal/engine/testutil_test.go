package engine

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/relcore/internal/catalog"
	"github.com/tuannm99/relcore/internal/config"
)

// writeTable writes tuples to "{dir}/{oid}" using the engine's on-disk
// page format, and returns the matching RawTable catalog row.
func writeTable(t *testing.T, dir string, oid uint32, name string, pageSize int, nattrs uint32, tuples [][]int32) catalog.RawTable {
	t.Helper()

	ntpp := uint32((pageSize - 8) / (int(nattrs) * 4))
	ntuples := uint32(len(tuples))

	var npages uint32
	if ntuples > 0 {
		npages = ntuples / ntpp
		if ntuples%ntpp != 0 {
			npages++
		}
	}

	buf := make([]byte, int(npages)*pageSize)
	for ipid := uint32(0); ipid < npages; ipid++ {
		off := int(ipid) * pageSize
		binary.LittleEndian.PutUint64(buf[off:off+8], uint64(ipid))

		start := ipid * ntpp
		end := start + ntpp
		if end > ntuples {
			end = ntuples
		}
		cur := off + 8
		for _, tup := range tuples[start:end] {
			for _, v := range tup {
				binary.LittleEndian.PutUint32(buf[cur:cur+4], uint32(v))
				cur += 4
			}
		}
	}

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, itoa(oid))
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	return catalog.RawTable{OID: oid, Name: name, NAttrs: nattrs, NTuples: ntuples}
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func newTestEngine(t *testing.T, pageSize, bufSlots, fileLimit int, tables []catalog.RawTable, dir string, obs *recordingObserver) *Engine {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.PageSize = pageSize
	cfg.Buffer.BufSlots = bufSlots
	cfg.Buffer.FileLimit = fileLimit

	var e *Engine
	var err error
	if obs != nil {
		e, err = New(cfg, dir, tables, obs)
	} else {
		e, err = New(cfg, dir, tables, nil)
	}
	require.NoError(t, err)
	return e
}

// recordingObserver counts each side-effect event for property-style
// log-accounting assertions.
type recordingObserver struct {
	opens, closes, reads, releases int
}

func (r *recordingObserver) OpenFile(uint32)    { r.opens++ }
func (r *recordingObserver) CloseFile(uint32)   { r.closes++ }
func (r *recordingObserver) ReadPage(uint64)    { r.reads++ }
func (r *recordingObserver) ReleasePage(uint64) { r.releases++ }

func allPinsZero(e *Engine) bool {
	for i := range e.pb.slots {
		if e.pb.slots[i].occupied && e.pb.slots[i].pin != 0 {
			return false
		}
	}
	return true
}
