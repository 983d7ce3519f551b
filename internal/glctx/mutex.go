// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"sync"
	"sync/atomic"
)

// recursiveMutex is a re-entrant lock: the goroutine holding it may lock
// it again without deadlocking. Context creation needs this because
// creation activates contexts, and activation takes the same lock when
// called on its own.
//
// depth is only touched by the owning goroutine, so it needs no atomic
// access; owner is read by contending goroutines and is atomic.
type recursiveMutex struct {
	mu    sync.Mutex
	owner uint64
	depth int
}

func (m *recursiveMutex) Lock() {
	id := goid()
	if atomic.LoadUint64(&m.owner) == id {
		m.depth++
		return
	}
	m.mu.Lock()
	atomic.StoreUint64(&m.owner, id)
	m.depth = 1
}

func (m *recursiveMutex) Unlock() {
	if atomic.LoadUint64(&m.owner) != goid() {
		panic("glctx: recursive mutex unlocked by a goroutine that does not hold it")
	}
	m.depth--
	if m.depth == 0 {
		atomic.StoreUint64(&m.owner, 0)
		m.mu.Unlock()
	}
}
