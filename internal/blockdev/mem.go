package blockdev

// MemPartition is an in-memory Partition, used by tests and by the
// archive writer when building an image that is then mounted in the same
// process (round-trip testing, spec.md §8 property 1).
type MemPartition struct {
	data      []byte
	blockSize int
}

// NewMemPartition allocates a zero-filled in-memory partition of the given
// size and erase-block size.
func NewMemPartition(size int, blockSize int) *MemPartition {
	return &MemPartition{data: make([]byte, size), blockSize: blockSize}
}

func (p *MemPartition) Read(off int64, buf []byte) error {
	if err := checkExtent(off, int64(len(buf)), int64(len(p.data))); err != nil {
		return err
	}
	copy(buf, p.data[off:off+int64(len(buf))])
	return nil
}

func (p *MemPartition) Write(off int64, buf []byte) error {
	if err := checkExtent(off, int64(len(buf)), int64(len(p.data))); err != nil {
		return err
	}
	copy(p.data[off:off+int64(len(buf))], buf)
	return nil
}

func (p *MemPartition) EraseRange(off int64, length int64) error {
	if err := checkExtent(off, length, int64(len(p.data))); err != nil {
		return err
	}
	for i := off; i < off+length; i++ {
		p.data[i] = 0xFF
	}
	return nil
}

func (p *MemPartition) Size() int64   { return int64(len(p.data)) }
func (p *MemPartition) BlockSize() int { return p.blockSize }

// Bytes exposes the raw backing buffer, e.g. for writing it out to disk or
// asserting byte-for-byte equality in round-trip tests.
func (p *MemPartition) Bytes() []byte { return p.data }
