package engine

import "errors"

var (
	// ErrUnknownTable is returned when an operator is given a table
	// name the catalog projection does not recognize.
	ErrUnknownTable = errors.New("engine: unknown table")

	// ErrInvalidAttr is returned when a join/selection attribute index
	// falls outside [0, nattrs).
	ErrInvalidAttr = errors.New("engine: attribute index out of range")

	// ErrBufferExhausted is returned when the page buffer's clock
	// sweep cannot find a victim because every slot is pinned. The
	// original C engine spins forever here; this port fails loudly
	// instead.
	ErrBufferExhausted = errors.New("engine: buffer exhausted (all page slots pinned)")

	// ErrNoProgress is returned when block nested loop join is chosen
	// with buf_slots < 2: the outer chunk width B-1 would be 0, so
	// the join can never read an outer page.
	ErrNoProgress = errors.New("engine: buf_slots < 2, block nested loop join cannot make progress")
)
