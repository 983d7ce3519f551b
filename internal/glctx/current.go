// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import (
	"runtime"
	"sync"
)

// current is one goroutine's activation record. It is created lazily on
// the first activation touching the goroutine and reclaimed when it
// returns to the zero state. Only the owning goroutine mutates its record,
// so no lock guards the fields; the map access itself is guarded.
type current struct {
	id        uint64    // identity of the context current on this goroutine, 0 if none
	ctx       *Context  // the context itself, nil if none
	transient uint      // nesting count of transient activations
	owned     *Graphics // non-nil while a transient scope holds the shared context
}

var (
	currentMu sync.RWMutex
	currents  = make(map[uint64]*current)
)

// goid returns the calling goroutine's ID, parsed from the runtime.Stack
// header ("goroutine 123 [running]:"). The ID is stable for the lifetime
// of the goroutine.
func goid() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

// currentRecord returns the calling goroutine's activation record,
// creating it if absent.
func currentRecord() *current {
	g := goid()
	currentMu.RLock()
	c := currents[g]
	currentMu.RUnlock()
	if c != nil {
		return c
	}
	c = &current{}
	currentMu.Lock()
	currents[g] = c
	currentMu.Unlock()
	return c
}

// lookupRecord returns the calling goroutine's activation record, or nil
// if the goroutine has never activated a context.
func lookupRecord() *current {
	currentMu.RLock()
	c := currents[goid()]
	currentMu.RUnlock()
	return c
}

// reclaimRecord drops the calling goroutine's record once it has returned
// to the zero state, so records do not accumulate as goroutines come and
// go. The next activation recreates it.
func reclaimRecord(c *current) {
	if c.id != 0 || c.transient != 0 || c.owned != nil {
		return
	}
	currentMu.Lock()
	delete(currents, goid())
	currentMu.Unlock()
}

// ActiveContext returns the context current on the calling goroutine, or
// nil if there is none.
func ActiveContext() *Context {
	if c := lookupRecord(); c != nil {
		return c.ctx
	}
	return nil
}

// ActiveContextID returns the identity of the context current on the
// calling goroutine, or 0 if there is none.
func ActiveContextID() uint64 {
	if c := lookupRecord(); c != nil {
		return c.id
	}
	return 0
}

// HasActiveContext reports whether any context is current on the calling
// goroutine.
func HasActiveContext() bool {
	return ActiveContextID() != 0
}
