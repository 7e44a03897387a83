package download

import "sync"

// pathLocks hands out one mutex per storage path so concurrent workers never
// operate on the same target.
type pathLocks struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*sync.Mutex)}
}

func (p *pathLocks) get(path string) *sync.Mutex {
	p.mu.RLock()
	m, ok := p.locks[path]
	p.mu.RUnlock()
	if ok {
		return m
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.locks[path]; ok {
		return m
	}
	m = &sync.Mutex{}
	p.locks[path] = m
	return m
}

func (p *pathLocks) len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.locks)
}
