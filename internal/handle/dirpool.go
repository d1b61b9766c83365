package handle

import (
	"github.com/sillyhouse/ifs/internal/capability"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// DirPool heap-allocates directory descriptors keyed by a monotonically
// increasing handle, matching spec.md §3.5 ("Directory descriptor ...
// heap-allocated; lifetime = opendir→closedir") — unlike FilePool there
// is no fixed capacity, since directory traversal can nest arbitrarily
// deep without exhausting a small descriptor table.
type DirPool[T any] struct {
	Base capability.Handle
	next capability.Handle
	open map[capability.Handle]*T
}

func NewDirPool[T any](base capability.Handle) *DirPool[T] {
	return &DirPool[T]{Base: base, next: base, open: make(map[capability.Handle]*T)}
}

func (p *DirPool[T]) Owns(h capability.Handle) bool {
	_, ok := p.open[h]
	return ok || h >= p.Base
}

func (p *DirPool[T]) Alloc(v *T) capability.Handle {
	h := p.next
	p.next++
	p.open[h] = v
	return h
}

func (p *DirPool[T]) Get(h capability.Handle) (*T, error) {
	v, ok := p.open[h]
	if !ok {
		return nil, ifserrors.InvalidHandle
	}
	return v, nil
}

func (p *DirPool[T]) Free(h capability.Handle) error {
	if _, ok := p.open[h]; !ok {
		return ifserrors.InvalidHandle
	}
	delete(p.open, h)
	return nil
}
