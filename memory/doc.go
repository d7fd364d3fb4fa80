// Package memory provides the allocation primitives shared by every container
// in this module: byte-accounting resources, typed allocators, element
// lifecycle hooks, and the uninitialized-range toolkit.
//
// # Storage model
//
// An Allocator[T] hands out []T blocks. A slot in such a block is either
// constructed (it holds a live element that will be destroyed exactly once)
// or unconstructed (it holds the zero value and owns nothing). Containers
// track which slots are constructed; the allocator never does.
//
// # Lifecycle hooks
//
// Element types opt into non-trivial construction and destruction by
// implementing any of:
//
//	Cloner[T]    Clone() (T, error)   copy construction, may fail
//	Initializer  (*T).Init() error     default construction, may fail
//	Destroyer    (*T).Destroy()        destruction
//
// Types without hooks are copied by assignment and destroyed by zeroing.
// Relocation (moving a constructed value into unconstructed storage) never
// runs a hook and never fails.
//
// # Uninitialized-range toolkit
//
// The Uninitialized* functions construct a whole destination range or none
// of it. When construction of slot k fails, slots [0, k) are destroyed and a
// *ConstructionError reporting k is returned. ConstructSegments extends the
// same guarantee to segmented destinations such as deque buffers.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use.
package memory
