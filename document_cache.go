package sonparser

import (
	"os"
	"sync"
	"time"
)

// DocumentCache provides thread-safe caching of decoded documents per file
// path. An entry is reused while the modification time and size of the file
// are unchanged. Failed loads are not kept.
//
// Cached values are shared between callers and must not be modified.
type DocumentCache struct {
	cache sync.Map // map[string]*documentEntry
}

// documentEntry holds one decoded document and the file state it was
// decoded from.
type documentEntry struct {
	modTime time.Time
	size    int64

	once  sync.Once
	value any
	err   error
}

// NewDocumentCache creates an empty cache.
func NewDocumentCache() *DocumentCache {
	return &DocumentCache{}
}

func (de *documentEntry) matches(info os.FileInfo) bool {
	return de.modTime.Equal(info.ModTime()) && de.size == info.Size()
}

// GetOrLoad returns the document cached for path when it still matches
// info, or calls load once to fill the entry. hit reports whether the value
// came from an earlier load.
func (dc *DocumentCache) GetOrLoad(path string, info os.FileInfo, load func() (any, error)) (value any, hit bool, err error) {
	fresh := &documentEntry{modTime: info.ModTime(), size: info.Size()}
	for {
		actual, loaded := dc.cache.LoadOrStore(path, fresh)
		entry := actual.(*documentEntry)

		// The file changed since the entry was stored
		if loaded && !entry.matches(info) {
			dc.cache.CompareAndSwap(path, entry, fresh)
			continue
		}

		entry.once.Do(func() {
			entry.value, entry.err = load()
		})
		if entry.err != nil {
			dc.cache.CompareAndDelete(path, entry)
		}
		return entry.value, entry != fresh, entry.err
	}
}

// Delete removes the entry for path.
func (dc *DocumentCache) Delete(path string) {
	dc.cache.Delete(path)
}

// Clear removes all entries.
func (dc *DocumentCache) Clear() {
	dc.cache.Range(func(key, _ any) bool {
		dc.cache.Delete(key)
		return true
	})
}

// Len returns the number of entries.
func (dc *DocumentCache) Len() int {
	n := 0
	dc.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
