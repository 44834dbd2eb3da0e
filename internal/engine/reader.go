package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tuannm99/relcore/internal/catalog"
)

// readViaFileSlot decodes page ipid of the table cached at file
// buffer slot fid, using its already-open handle.
func (e *Engine) readViaFileSlot(fid int, ipid uint32) (int, error) {
	fs := &e.fb.slots[fid]

	ntip := ntuplesInPage(ipid, e.ntppOf(fs.nattrs), fs.npages, fs.ntuples)

	buf, err := readPageBytes(fs.file, e.cfg.Storage.PageSize, ipid, fs.nattrs, ntip)
	if err != nil {
		return -1, err
	}
	pageID, tuples := decodePage(buf, fs.nattrs, ntip)

	pidx, err := e.pb.acquireSlot()
	if err != nil {
		return -1, err
	}
	e.pb.fill(pidx, pageSlot{
		pageID: pageID,
		ipid:   ipid,
		oid:    fs.oid,
		name:   fs.name,
		nattrs: fs.nattrs,
		tuples: tuples,
	})
	e.obs.ReadPage(pageID)

	return pidx, nil
}

// ntppOf recomputes tuples-per-page from a file slot's cached
// metadata; file slots don't separately cache ntpp since it is a pure
// function of (page_size, nattrs).
func (e *Engine) ntppOf(nattrs uint32) uint32 {
	return uint32((e.cfg.Storage.PageSize - 8) / (int(nattrs) * 4))
}

// readViaDisk opens tableName fresh from disk, decodes page ipid, and
// installs a new file buffer slot for subsequent reads.
func (e *Engine) readViaDisk(tableName string, ipid uint32) (int, error) {
	desc, ok := catalog.Lookup(e.descs, tableName)
	if !ok {
		return -1, ErrUnknownTable
	}

	path := filepath.Join(e.databaseRoot, fmt.Sprintf("%d", desc.OID))
	f, err := os.Open(path)
	if err != nil {
		return -1, fmt.Errorf("engine: open %s: %w", path, err)
	}
	e.obs.OpenFile(desc.OID)

	ntip := ntuplesInPage(ipid, desc.NTPP, desc.NPages, desc.NTuples)

	buf, err := readPageBytes(f, e.cfg.Storage.PageSize, ipid, desc.NAttrs, ntip)
	if err != nil {
		_ = f.Close()
		return -1, err
	}
	pageID, tuples := decodePage(buf, desc.NAttrs, ntip)
	e.obs.ReadPage(pageID)

	pidx, err := e.pb.acquireSlot()
	if err != nil {
		_ = f.Close()
		return -1, err
	}
	e.pb.fill(pidx, pageSlot{
		pageID: pageID,
		ipid:   ipid,
		oid:    desc.OID,
		name:   desc.Name,
		nattrs: desc.NAttrs,
		tuples: tuples,
	})

	fidx := e.fb.acquireSlot()
	e.fb.slots[fidx] = fileSlot{
		occupied: true,
		oid:      desc.OID,
		name:     desc.Name,
		nattrs:   desc.NAttrs,
		ntuples:  desc.NTuples,
		npages:   desc.NPages,
		path:     path,
		file:     f,
	}

	return pidx, nil
}
