// SPDX-License-Identifier: Unlicense OR MIT

package glctx

import "sync"

// Unshared is a native GL object that platform rules bind to one specific
// context rather than to the share group (framebuffer objects, vertex
// array objects, sync objects).
type Unshared interface {
	// ReleaseUnshared destroys the native object. The registry invokes it
	// with the owning context current; it must not call back into the
	// registry.
	ReleaseUnshared()
}

type unsharedEntry struct {
	contextID uint64
	obj       Unshared
}

type unsharedObjects struct {
	entries []unsharedEntry
}

// unsharedSlot is the process-wide home of the unshared-object list. Live
// contexts hold references to the list; when the last context is
// destroyed the list is dropped and a later context creation starts a
// fresh one. The slot mutex is deliberately distinct from the context
// creation lock: object registration happens far more often than context
// creation and must not contend with it.
var unsharedSlot struct {
	mu   sync.Mutex
	refs int
	list *unsharedObjects
}

// retainUnsharedList returns the live unshared-object list, creating it
// if all previous owners are gone, and records the caller as an owner.
func retainUnsharedList() *unsharedObjects {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		s.list = new(unsharedObjects)
	}
	s.refs++
	return s.list
}

// releaseUnsharedList drops one ownership reference. The list is
// abandoned when the last owner goes away; any entries still in it were
// registered with no live context and cannot be released against one.
func releaseUnsharedList() {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		s.list = nil
	}
}

// RegisterUnshared records obj as owned by the context current on the
// calling goroutine. Callers must have a context current, normally by
// holding a transient activation. If no context is live anywhere in the
// process the registration is silently dropped; the object is already
// orphaned.
func RegisterUnshared(obj Unshared) {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return
	}
	s.list.entries = append(s.list.entries, unsharedEntry{contextID: ActiveContextID(), obj: obj})
}

// UnregisterUnshared removes obj from the registry and releases it,
// provided the context that owns it is current on the calling goroutine.
// Otherwise the call is a no-op: the object can only be released while
// its owning context is current, and it will be released in bulk when
// that context is destroyed.
func UnregisterUnshared(obj Unshared) {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return
	}
	id := ActiveContextID()
	for i, e := range s.list.entries {
		if e.contextID == id && e.obj == obj {
			s.list.entries = append(s.list.entries[:i], s.list.entries[i+1:]...)
			obj.ReleaseUnshared()
			return
		}
	}
}

// purge removes every entry owned by contextID, invoking each object's
// release as it goes. Called with the dying context current.
func (u *unsharedObjects) purge(contextID uint64) {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := u.entries[:0]
	for _, e := range u.entries {
		if e.contextID == contextID {
			e.obj.ReleaseUnshared()
		} else {
			kept = append(kept, e)
		}
	}
	u.entries = kept
}

// unsharedCount reports the number of live registry entries. Test hook.
func unsharedCount() int {
	s := &unsharedSlot
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list == nil {
		return 0
	}
	return len(s.list.entries)
}
