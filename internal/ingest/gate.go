package ingest

import "sync/atomic"

// Gate carries a cancel request from a controller to a running pipeline.
// A nil *Gate is never cancelled.
type Gate struct {
	cancelled atomic.Bool
}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) RequestCancel() {
	if g == nil {
		return
	}
	g.cancelled.Store(true)
}

func (g *Gate) Cancelled() bool {
	return g != nil && g.cancelled.Load()
}
