package engine

import "github.com/tuannm99/relcore/internal/catalog"

// Join implements the equijoin operator: chooses between block nested
// loop join and simple hash join by comparing the combined page
// footprint against the page buffer's capacity, and always emits t1's
// attributes before t2's regardless of which side ends up as the
// outer/build side.
func (e *Engine) Join(idx1 int, t1 string, idx2 int, t2 string) (*Relation, error) {
	d1, ok := catalog.Lookup(e.descs, t1)
	if !ok {
		return nil, ErrUnknownTable
	}
	d2, ok := catalog.Lookup(e.descs, t2)
	if !ok {
		return nil, ErrUnknownTable
	}
	if idx1 < 0 || uint32(idx1) >= d1.NAttrs || idx2 < 0 || uint32(idx2) >= d2.NAttrs {
		return nil, ErrInvalidAttr
	}

	result := &Relation{NAttrs: d1.NAttrs + d2.NAttrs}

	buf := e.cfg.Buffer.BufSlots
	if int(d1.NPages+d2.NPages) > buf {
		if buf < 2 {
			return nil, ErrNoProgress
		}
		rows, err := e.blockNestedLoop(idx1, d1, idx2, d2, buf)
		if err != nil {
			return nil, err
		}
		result.Tuples = rows
		return result, nil
	}

	rows, err := e.simpleHashJoin(idx1, d1, idx2, d2)
	if err != nil {
		return nil, err
	}
	result.Tuples = rows
	return result, nil
}

func ceilDiv(a, b uint32) uint32 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// blockNestedLoop joins d1/d2 by holding up to buf-1 outer pages
// pinned while streaming the inner side past them once per chunk.
func (e *Engine) blockNestedLoop(idx1 int, d1 catalog.TableDescriptor, idx2 int, d2 catalog.TableDescriptor, buf int) ([][]int32, error) {
	chunkCap := uint32(buf - 1)

	chunks1 := ceilDiv(d1.NPages, chunkCap)
	cost1 := d1.NPages + d2.NPages*chunks1

	chunks2 := ceilDiv(d2.NPages, chunkCap)
	cost2 := d2.NPages + d1.NPages*chunks2

	var (
		nchunks                  uint32
		outerName, innerName     string
		outerNPages, innerNPages uint32
		outerIdx, innerIdx       int
		outerIsT1                bool
	)

	if cost1 <= cost2 {
		nchunks = chunks1
		outerName, outerNPages, outerIdx = d1.Name, d1.NPages, idx1
		innerName, innerNPages, innerIdx = d2.Name, d2.NPages, idx2
		outerIsT1 = true
	} else {
		nchunks = chunks2
		outerName, outerNPages, outerIdx = d2.Name, d2.NPages, idx2
		innerName, innerNPages, innerIdx = d1.Name, d1.NPages, idx1
		outerIsT1 = false
	}

	var rows [][]int32

	for c := uint32(0); c < nchunks; c++ {
		w := minU32(outerNPages-c*chunkCap, chunkCap)

		outerSlots := make([]int, w)
		for j := uint32(0); j < w; j++ {
			pidx, err := e.requestPage(outerName, c*chunkCap+j)
			if err != nil {
				return nil, err
			}
			outerSlots[j] = pidx
		}

		for k := uint32(0); k < innerNPages; k++ {
			innerIdxSlot, err := e.requestPage(innerName, k)
			if err != nil {
				return nil, err
			}
			innerSlot := &e.pb.slots[innerIdxSlot]

			for _, outerSlotIdx := range outerSlots {
				outerSlot := &e.pb.slots[outerSlotIdx]

				for _, otup := range outerSlot.tuples {
					for _, itup := range innerSlot.tuples {
						if otup[outerIdx] != itup[innerIdx] {
							continue
						}
						rows = append(rows, combineT1T2(otup, itup, outerIsT1))
					}
				}
			}

			e.pb.release(innerIdxSlot)
		}

		for _, s := range outerSlots {
			e.pb.release(s)
		}
	}

	return rows, nil
}

// combineT1T2 orders (outerTuple, innerTuple) as t1||t2 regardless of
// which physical side is the outer.
func combineT1T2(outerTup, innerTup []int32, outerIsT1 bool) []int32 {
	t1Tup, t2Tup := innerTup, outerTup
	if outerIsT1 {
		t1Tup, t2Tup = outerTup, innerTup
	}
	row := make([]int32, 0, len(t1Tup)+len(t2Tup))
	row = append(row, t1Tup...)
	row = append(row, t2Tup...)
	return row
}

// simpleHashJoin partitions t1 (always the build/outer side) into 2
// buckets by the parity of the join attribute, then probes with t2.
func (e *Engine) simpleHashJoin(idx1 int, d1 catalog.TableDescriptor, idx2 int, d2 catalog.TableDescriptor) ([][]int32, error) {
	var partitions [2][][]int32

	for ipid := uint32(0); ipid < d1.NPages; ipid++ {
		pidx, err := e.requestPage(d1.Name, ipid)
		if err != nil {
			return nil, err
		}
		slot := &e.pb.slots[pidx]
		for _, tup := range slot.tuples {
			p := hashPartition(tup[idx1])
			row := make([]int32, len(tup))
			copy(row, tup)
			partitions[p] = append(partitions[p], row)
		}
		e.pb.release(pidx)
	}

	var rows [][]int32

	for ipid := uint32(0); ipid < d2.NPages; ipid++ {
		pidx, err := e.requestPage(d2.Name, ipid)
		if err != nil {
			return nil, err
		}
		slot := &e.pb.slots[pidx]
		for _, tup := range slot.tuples {
			p := hashPartition(tup[idx2])
			for _, build := range partitions[p] {
				if build[idx1] != tup[idx2] {
					continue
				}
				row := make([]int32, 0, len(build)+len(tup))
				row = append(row, build...)
				row = append(row, tup...)
				rows = append(rows, row)
			}
		}
		e.pb.release(pidx)
	}

	return rows, nil
}

// hashPartition implements h(v) = v mod 2; the same function is
// applied on both sides so partition membership is symmetric under
// any sign convention for negative v.
func hashPartition(v int32) int {
	p := v % 2
	if p < 0 {
		p = -p
	}
	return int(p)
}
