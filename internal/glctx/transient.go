// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import "github.com/menuet/VRSFML/errstream"

// AcquireTransient guarantees some context is current on the calling
// goroutine until the matching ReleaseTransient. If one already is, or an
// enclosing transient scope is open, only a nesting count changes. If
// not, the anchor context goes current and the creation lock is held
// until the outermost release, so resource work never observes the
// anchor being handed to another goroutine.
//
// Acquire and release pair on one goroutine. An unpaired release panics.
func (g *Graphics) AcquireTransient() error {
	rec := currentRecord()
	if rec.transient == 0 && rec.id == 0 {
		g.mu.Lock()
		if err := g.shared.SetActive(true); err != nil {
			g.mu.Unlock()
			reclaimRecord(rec)
			return err
		}
		rec.owned = g
	}
	rec.transient++
	return nil
}

// ReleaseTransient closes the innermost transient scope opened by
// AcquireTransient on the calling goroutine.
func (g *Graphics) ReleaseTransient() {
	rec := lookupRecord()
	if rec == nil || rec.transient == 0 {
		panic("glctx: transient release without matching acquire")
	}
	rec.transient--
	if rec.transient == 0 && rec.owned != nil {
		owned := rec.owned
		rec.owned = nil
		if err := owned.shared.SetActive(false); err != nil {
			errstream.Printf("could not release the shared context after transient use: %v", err)
		}
		owned.mu.Unlock()
	}
	reclaimRecord(rec)
}

// Ensure guarantees a context is current on the calling goroutine and
// returns the matching release, creating the process-wide graphics on
// first use. Typical use:
//
//	release, err := glctx.Ensure()
//	if err != nil {
//		return err
//	}
//	defer release()
func Ensure() (func(), error) {
	g, err := Shared()
	if err != nil {
		return nil, err
	}
	if err := g.AcquireTransient(); err != nil {
		return nil, err
	}
	return g.ReleaseTransient, nil
}
