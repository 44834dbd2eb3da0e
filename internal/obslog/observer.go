// Package obslog defines the buffer layer's side-effect log channel
// as a pluggable Observer, plus a no-op and a slog-backed default
// implementation.
package obslog

import "log/slog"

// Observer receives the four buffer-layer side-effect events. The
// core engine only ever calls these at well-defined points in the
// buffer request path — it never branches on their return value,
// since there is none.
type Observer interface {
	OpenFile(oid uint32)
	CloseFile(oid uint32)
	ReadPage(pageID uint64)
	ReleasePage(pageID uint64)
}

// Nop discards every event. It is the zero value and needs no
// constructor.
type Nop struct{}

func (Nop) OpenFile(uint32)    {}
func (Nop) CloseFile(uint32)   {}
func (Nop) ReadPage(uint64)    {}
func (Nop) ReleasePage(uint64) {}

var logPrefix = "engine: "

// Slog logs every event at debug level via log/slog, matching the
// bufferpool package's logDebugPrefix convention.
type Slog struct {
	log *slog.Logger
}

func NewSlog(log *slog.Logger) Slog {
	if log == nil {
		log = slog.Default()
	}
	return Slog{log: log}
}

func (s Slog) OpenFile(oid uint32) {
	s.log.Debug(logPrefix+"log_open_file", "oid", oid)
}

func (s Slog) CloseFile(oid uint32) {
	s.log.Debug(logPrefix+"log_close_file", "oid", oid)
}

func (s Slog) ReadPage(pageID uint64) {
	s.log.Debug(logPrefix+"log_read_page", "pageid", pageID)
}

func (s Slog) ReleasePage(pageID uint64) {
	s.log.Debug(logPrefix+"log_release_page", "pageid", pageID)
}
