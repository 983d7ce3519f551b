// SPDX-License-Identifier: Unlicense OR MIT

// Package graphics wraps the GL resources whose lifetimes ride on the
// process share group: textures, vertex buffers and render textures.
// Resources can be created, mutated and destroyed from any goroutine;
// each operation briefly guarantees a current context through the
// context core's transient activation.
//
// Rasterization is out of scope. The package manages native object
// lifetimes and exposes the handles and the pure geometry (Sprite) that
// a renderer builds on.
package graphics

import "sync/atomic"

// cacheIDCounter issues identities for texture content generations.
// Renderers cache per-texture state keyed by CacheID; a fresh id after
// every storage or pixel change invalidates those caches.
var cacheIDCounter uint64

func nextCacheID() uint64 {
	return atomic.AddUint64(&cacheIDCounter, 1)
}
