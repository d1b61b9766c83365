// Package handle implements the resource-scoped descriptor tables of
// spec.md §3.5 / §4.1 / Design Notes "Handle allocation": file descriptors
// come from a fixed-size pool (index + handle-base = handle value);
// directory descriptors are heap-allocated with lifetime opendir→closedir.
// Each backend picks its own Base so HYFS (spec.md §4.4, §5) can route a
// call to the right backend purely by comparing the handle against that
// backend's disjoint range.
package handle

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// FilePool is a fixed-capacity table of file descriptors of type T. A
// descriptor is "allocated" once Open, and "free" again once Close'd;
// index+Base is the Handle value clients see.
type FilePool[T any] struct {
	Base    capability.Handle
	slots   []T
	used    []bool
}

// NewFilePool creates a pool of capacity descriptors, handle numbers
// starting at base.
func NewFilePool[T any](base capability.Handle, capacity int) *FilePool[T] {
	return &FilePool[T]{Base: base, slots: make([]T, capacity), used: make([]bool, capacity)}
}

// Owns reports whether h falls within this pool's handle range.
func (p *FilePool[T]) Owns(h capability.Handle) bool {
	return h >= p.Base && int(h-p.Base) < len(p.slots)
}

// Alloc finds an unused slot, marks it used, and returns its handle.
func (p *FilePool[T]) Alloc() (capability.Handle, *T, error) {
	for i := range p.used {
		if !p.used[i] {
			p.used[i] = true
			p.slots[i] = *new(T)
			return p.Base + capability.Handle(i), &p.slots[i], nil
		}
	}
	return 0, nil, ifserrors.OutOfFileDescs
}

// Get returns the descriptor for h, or FileNotOpen/InvalidHandle.
func (p *FilePool[T]) Get(h capability.Handle) (*T, error) {
	if !p.Owns(h) {
		return nil, ifserrors.InvalidHandle
	}
	i := int(h - p.Base)
	if !p.used[i] {
		return nil, ifserrors.FileNotOpen
	}
	return &p.slots[i], nil
}

// Free releases the slot backing h.
func (p *FilePool[T]) Free(h capability.Handle) error {
	if !p.Owns(h) {
		return ifserrors.InvalidHandle
	}
	i := int(h - p.Base)
	if !p.used[i] {
		return ifserrors.FileNotOpen
	}
	p.used[i] = false
	p.slots[i] = *new(T)
	return nil
}
