package engine

import "github.com/tuannm99/relcore/internal/catalog"

// Select implements the equality-selection operator: scans table one
// page at a time in ascending ipid, keeping every tuple whose
// attribute at idx equals condVal, in physical scan order.
func (e *Engine) Select(idx int, condVal int32, tableName string) (*Relation, error) {
	desc, ok := catalog.Lookup(e.descs, tableName)
	if !ok {
		return nil, ErrUnknownTable
	}
	if idx < 0 || uint32(idx) >= desc.NAttrs {
		return nil, ErrInvalidAttr
	}

	result := &Relation{NAttrs: desc.NAttrs}

	for ipid := uint32(0); ipid < desc.NPages; ipid++ {
		pidx, err := e.requestPage(tableName, ipid)
		if err != nil {
			return nil, err
		}

		slot := &e.pb.slots[pidx]
		for _, tup := range slot.tuples {
			if tup[idx] == condVal {
				row := make([]int32, desc.NAttrs)
				copy(row, tup)
				result.Tuples = append(result.Tuples, row)
			}
		}

		e.pb.release(pidx)
	}

	return result, nil
}
