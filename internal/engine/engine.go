// Package engine implements the two-tier buffered page access layer
// and the selection/join operators that run on top of it. An Engine
// bundles the buffers, the catalog projection, and the event-log
// observer as one explicit value rather than the process-wide globals
// the original C implementation relied on.
//
// An Engine is not safe for concurrent use: it is a single-threaded,
// synchronous execution model with no internal locking.
package engine

import (
	"github.com/tuannm99/relcore/internal/catalog"
	"github.com/tuannm99/relcore/internal/config"
	"github.com/tuannm99/relcore/internal/obslog"
)

// Engine is the explicit handle bundling both buffer arrays, the
// catalog projection, and the observer.
type Engine struct {
	cfg          *config.Config
	databaseRoot string
	descs        []catalog.TableDescriptor
	obs          obslog.Observer

	fb *fileBuffer
	pb *pageBuffer
}

// New computes the catalog projection and allocates both buffers. obs
// may be nil, in which case events are discarded.
func New(cfg *config.Config, databaseRoot string, tables []catalog.RawTable, obs obslog.Observer) (*Engine, error) {
	descs, err := catalog.Project(tables, cfg.Storage.PageSize)
	if err != nil {
		return nil, err
	}
	if obs == nil {
		obs = obslog.Nop{}
	}

	return &Engine{
		cfg:          cfg,
		databaseRoot: databaseRoot,
		descs:        descs,
		obs:          obs,
		fb:           newFileBuffer(cfg.Buffer.FileLimit, obs),
		pb:           newPageBuffer(cfg.Buffer.BufSlots, obs),
	}, nil
}

// Close frees every tuple matrix in use and closes every open file
// handle exactly once.
func (e *Engine) Close() error {
	for i := range e.pb.slots {
		e.pb.slots[i] = pageSlot{}
	}
	return e.fb.closeAll()
}
