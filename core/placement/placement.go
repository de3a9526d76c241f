package placement

import (
	"sync/atomic"

	"github.com/pyropy/chunkstore/core/model"
)

// RoundRobin spreads chunks over nodes using a single shared counter.
// It carries no notion of node health, capacity or placement history.
// Safe for unbounded concurrent callers.
type RoundRobin struct {
	next atomic.Uint64
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Select picks the next node in rotation. Callers must guarantee nodes
// is non-empty. Counter wraparound is harmless since only the remainder
// matters.
func (r *RoundRobin) Select(nodes []model.DataNode) model.DataNode {
	idx := r.next.Add(1) - 1
	return nodes[idx%uint64(len(nodes))]
}
