package segtable

import (
	"container/list"
	"sync"

	"github.com/smraw-go/smraw/pkg/ioadapter"
)

// Pool is the lazy file-handle LRU from spec.md §4.3: a capacity-bound
// cache from segment index to an open ioadapter.File, used so a Handle
// never needs more simultaneously open file descriptors than its pool
// capacity regardless of how many segments the image has.
//
// No third-party LRU library in the example pack is wired to an os.File
// lifecycle (see DESIGN.md), so this is hand-rolled against
// container/list the way the teacher hand-rolls its own single-active-
// segment bookkeeping rather than reaching for a cache library.
type Pool struct {
	mu       sync.Mutex
	capacity int
	opener   ioadapter.FileIO
	names    map[int]string
	mode     ioadapter.Mode

	order   *list.List
	entries map[int]*list.Element
}

type poolEntry struct {
	index int
	file  ioadapter.File
}

// NewPool returns a Pool bound to capacity simultaneously open handles,
// opening segment files by the names given to Register through opener.
func NewPool(capacity int, opener ioadapter.FileIO, mode ioadapter.Mode) *Pool {
	if capacity <= 0 {
		capacity = 1
	}
	return &Pool{
		capacity: capacity,
		opener:   opener,
		mode:     mode,
		names:    make(map[int]string),
		order:    list.New(),
		entries:  make(map[int]*list.Element),
	}
}

// Register associates a segment index with its on-disk name, so Get can
// open it lazily on first access. The write path calls this as segments
// are appended; the read path registers every segment up front.
func (p *Pool) Register(index int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names[index] = name
}

// Get returns the open handle for segment index, opening it (and
// evicting the least-recently-used entry if the pool is at capacity)
// on a miss, and promoting it to most-recently-used either way.
func (p *Pool) Get(index int) (ioadapter.File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.entries[index]; ok {
		p.order.MoveToFront(el)
		return el.Value.(*poolEntry).file, nil
	}

	name := p.names[index]
	f, err := p.opener.Open(name, p.mode)
	if err != nil {
		return nil, err
	}

	if p.order.Len() >= p.capacity {
		p.evictOldest()
	}

	el := p.order.PushFront(&poolEntry{index: index, file: f})
	p.entries[index] = el
	return f, nil
}

// evictOldest closes and drops the least-recently-used open handle. The
// caller must hold p.mu.
func (p *Pool) evictOldest() {
	back := p.order.Back()
	if back == nil {
		return
	}
	entry := back.Value.(*poolEntry)
	_ = entry.file.Close()
	delete(p.entries, entry.index)
	p.order.Remove(back)
}

// CloseAll closes every currently open handle, used by Handle.Close.
// Close errors are collected but do not stop later entries from being
// closed; the first one encountered is returned.
func (p *Pool) CloseAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var first error
	for el := p.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*poolEntry)
		if err := entry.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	p.order.Init()
	p.entries = make(map[int]*list.Element)
	return first
}
