package engine

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ntuplesInPage returns how many tuples the page at ipid actually
// holds: ntpp for every page but the last, which may be partial.
func ntuplesInPage(ipid, ntpp, npages, ntuples uint32) uint32 {
	if ipid < npages-1 {
		return ntpp
	}
	return ntuples - ntpp*(npages-1)
}

// readPageBytes seeks to the absolute page offset and reads the raw
// page-header-plus-tuples region: 8 bytes of page id, then
// ntip*nattrs signed 32-bit integers.
func readPageBytes(f *os.File, pageSize int, ipid uint32, nattrs, ntip uint32) ([]byte, error) {
	size := 8 + int(ntip)*int(nattrs)*4
	buf := make([]byte, size)

	offset := int64(ipid) * int64(pageSize)
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("engine: seek page %d: %w", ipid, err)
	}
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, fmt.Errorf("engine: read page %d: %w", ipid, err)
	}
	return buf, nil
}

// decodePage splits a raw page buffer (as read by readPageBytes) into
// its 64-bit page id and a row-major tuple matrix.
func decodePage(buf []byte, nattrs, ntip uint32) (pageID uint64, tuples [][]int32) {
	pageID = binary.LittleEndian.Uint64(buf[0:8])

	tuples = make([][]int32, ntip)
	off := 8
	for y := range tuples {
		row := make([]int32, nattrs)
		for x := range row {
			row[x] = int32(binary.LittleEndian.Uint32(buf[off : off+4]))
			off += 4
		}
		tuples[y] = row
	}
	return pageID, tuples
}
