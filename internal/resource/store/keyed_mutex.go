package store

import (
	"sync"

	"github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

// keyedMutex serialises mutations per record id; entries are dropped once nobody holds them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.ID]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[domain.ID]*refLock)}
}

func (k *keyedMutex) Lock(id domain.ID) (unlock func()) {
	k.mu.Lock()
	l := k.locks[id]
	if l == nil {
		l = &refLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) held() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
