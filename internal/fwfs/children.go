package fwfs

import (
	"github.com/sillyhouse/ifs/internal/blockdev"
	"github.com/sillyhouse/ifs/internal/ifserrors"
)

// childIterator walks the child table of a named object one record at a
// time (spec.md §3.4, "Child enumeration"): a record occupies
// contentOffset+contentSize bytes, and iteration ends when the cursor
// reaches the end of the child table.
type childIterator struct {
	part blockdev.Partition
	base int64
	end  uint32 // absolute id one past the last child byte
	pos  uint32 // absolute id of the next child to read
}

func newChildIterator(part blockdev.Partition, base int64, parent header) (*childIterator, error) {
	tableOff, err := childTableOffset(part, base, parent)
	if err != nil {
		return nil, err
	}
	return &childIterator{
		part: part,
		base: base,
		end:  parent.nextID(),
		pos:  parent.contentOffset + tableOff,
	}, nil
}

// next returns the next child's header, or ifserrors.EndOfObjects once the
// table is exhausted.
func (it *childIterator) next() (header, error) {
	if it.pos >= it.end {
		return header{}, ifserrors.EndOfObjects
	}
	h, err := readHeader(it.part, it.base, it.pos)
	if err != nil {
		return header{}, err
	}
	it.pos = h.nextID()
	return h, nil
}

// eachChild invokes fn for every raw child record (inline or reference,
// named or not) until fn returns a non-nil error or the table is
// exhausted; ifserrors.EndOfObjects from fn is not propagated to the
// caller, matching the reader's internal "not an error" sentinel
// (spec.md §7, "EndOfObjects: Internal reader signal; not surfaced").
func eachChild(part blockdev.Partition, base int64, parent header, fn func(h header) error) error {
	it, err := newChildIterator(part, base, parent)
	if err != nil {
		return err
	}
	for {
		child, err := it.next()
		if err == ifserrors.EndOfObjects {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(child); err != nil {
			return err
		}
	}
}

// namedChildren visits only named children (resolving references), the
// subset readdir/path-resolution care about; non-named records
// (attributes, data, references to non-named objects) are skipped per
// spec.md §3.4.
func namedChildren(part blockdev.Partition, base int64, parent header, fn func(name string, h header) error) error {
	return eachChild(part, base, parent, func(child header) error {
		resolved := child
		if child.tag.IsRef() {
			r, err := resolveRef(part, base, child, parent.id)
			if err != nil {
				return err
			}
			resolved = r
		}
		if !resolved.isNamed() {
			return nil
		}
		name, err := readName(part, base, resolved)
		if err != nil {
			return err
		}
		return fn(name, resolved)
	})
}
