package hostfs

import (
	"bytes"
	"encoding/gob"
	"path"
	"sync"

	"github.com/spf13/afero"

	"github.com/sillyhouse/ifs/internal/ifserrors"
	"github.com/sillyhouse/ifs/internal/ifstype"
)

// metaPath is the reserved sidecar file this backend uses to carry
// attributes a POSIX filesystem has no native slot for (xattrs, the
// FWFS-style ACL/compression records, and HYFS's persisted hide-list).
const metaPath = "/.ifs-meta.gob"

// metaStore is a path-keyed table of attribute maps, gob-encoded to a
// single sidecar file and kept in memory between loads. It is deliberately
// simple: this repo has no domain library in the retrieval pack for this
// concern, so it is implemented directly against encoding/gob (see
// DESIGN.md).
type metaStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	data map[string]map[ifstype.AttributeTag][]byte
}

func newMetaStore(fs afero.Fs) *metaStore {
	return &metaStore{fs: fs}
}

func (m *metaStore) load() error {
	if m.data != nil {
		return nil
	}
	m.data = make(map[string]map[ifstype.AttributeTag][]byte)
	f, err := m.fs.Open(metaPath)
	if err != nil {
		return nil // no sidecar yet: empty table
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return ifserrors.ReadFailure
	}
	if buf.Len() == 0 {
		return nil
	}
	if err := gob.NewDecoder(&buf).Decode(&m.data); err != nil {
		return ifserrors.BadFileSystem
	}
	return nil
}

func (m *metaStore) save() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(m.data); err != nil {
		return ifserrors.WriteFailure
	}
	return atomicWrite(m.fs, metaPath, buf.Bytes())
}

func normKey(p string) string {
	p = path.Clean("/" + p)
	return p
}

func (m *metaStore) get(p string, tag ifstype.AttributeTag) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.load(); err != nil {
		return nil, err
	}
	attrs, ok := m.data[normKey(p)]
	if !ok {
		return nil, ifserrors.NotFound
	}
	v, ok := attrs[tag]
	if !ok {
		return nil, ifserrors.NotFound
	}
	return v, nil
}

func (m *metaStore) set(p string, tag ifstype.AttributeTag, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.load(); err != nil {
		return err
	}
	key := normKey(p)
	attrs, ok := m.data[key]
	if !ok {
		attrs = make(map[ifstype.AttributeTag][]byte)
		m.data[key] = attrs
	}
	attrs[tag] = value
	return m.save()
}

func (m *metaStore) enum(p string) (map[ifstype.AttributeTag][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.load(); err != nil {
		return nil, err
	}
	return m.data[normKey(p)], nil
}

// remove drops all recorded attributes for p, e.g. when the path is deleted.
func (m *metaStore) remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.load(); err != nil {
		return err
	}
	delete(m.data, normKey(p))
	return m.save()
}
