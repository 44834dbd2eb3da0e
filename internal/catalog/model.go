// Package catalog loads the static external table list and projects
// it into the per-table page geometry the engine needs.
package catalog

import "fmt"

// RawTable is one row of the external catalog input: oid, name,
// attribute count, and tuple count. This is the only shape the engine
// core consumes — where the row came from (file, database, RPC) is
// outside the core's concern.
type RawTable struct {
	OID     uint32 `yaml:"oid" mapstructure:"oid"`
	Name    string `yaml:"name" mapstructure:"name"`
	NAttrs  uint32 `yaml:"nattrs" mapstructure:"nattrs"`
	NTuples uint32 `yaml:"ntuples" mapstructure:"ntuples"`
}

// maxNameLen mirrors the original C engine's char name[10] (9 printable
// bytes + NUL); the page-on-disk path is keyed by oid, not name, but
// the buffer slots still copy the name verbatim for lookups.
const maxNameLen = 9

// TableDescriptor is the derived, static-per-session projection of one
// catalog row, computed once by Project.
type TableDescriptor struct {
	OID     uint32
	Name    string
	NAttrs  uint32
	NTuples uint32
	NTPP    uint32 // tuples per page
	NPages  uint32
}

// Project derives the per-table page geometry for every raw catalog
// row: ntpp = floor((page_size-8) / (nattrs*4)), npages =
// ceil(ntuples/ntpp).
func Project(rows []RawTable, pageSize int) ([]TableDescriptor, error) {
	out := make([]TableDescriptor, 0, len(rows))
	for _, r := range rows {
		if len(r.Name) == 0 || len(r.Name) > maxNameLen {
			return nil, fmt.Errorf("catalog: table %q: name must be 1..%d bytes", r.Name, maxNameLen)
		}
		if r.NAttrs == 0 {
			return nil, fmt.Errorf("catalog: table %q: nattrs must be > 0", r.Name)
		}
		rowBytes := int(r.NAttrs) * 4
		if pageSize-8 < rowBytes {
			return nil, fmt.Errorf("catalog: table %q: page_size %d too small for %d attrs", r.Name, pageSize, r.NAttrs)
		}
		ntpp := uint32((pageSize - 8) / rowBytes)

		var npages uint32
		if r.NTuples == 0 {
			npages = 0
		} else {
			npages = r.NTuples / ntpp
			if r.NTuples%ntpp != 0 {
				npages++
			}
		}

		out = append(out, TableDescriptor{
			OID:     r.OID,
			Name:    r.Name,
			NAttrs:  r.NAttrs,
			NTuples: r.NTuples,
			NTPP:    ntpp,
			NPages:  npages,
		})
	}
	return out, nil
}

// Lookup returns the descriptor with the given exact name, and false
// on miss — the one piece of catalog-projection behavior the engine
// calls directly at operator entry.
func Lookup(descs []TableDescriptor, name string) (TableDescriptor, bool) {
	for _, d := range descs {
		if d.Name == name {
			return d, true
		}
	}
	return TableDescriptor{}, false
}
