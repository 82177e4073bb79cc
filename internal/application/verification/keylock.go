package verification

import (
	"sync"
	"time"
)

type lockEntry struct {
	mu       sync.Mutex
	lastUsed time.Time
}

// keyLock serializes code lifecycle operations per (channel, identifier)
// pair inside one process. Cross-process safety comes from the store's
// conditional writes; this lock just keeps the common case free of
// condition failures. Stale entries are swept in the background.
type keyLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

func newKeyLock() *keyLock {
	kl := &keyLock{entries: make(map[string]*lockEntry)}
	go kl.cleanup()
	return kl
}

func (kl *keyLock) lock(key string) *lockEntry {
	kl.mu.Lock()
	e, ok := kl.entries[key]
	if !ok {
		e = &lockEntry{}
		kl.entries[key] = e
	}
	e.lastUsed = time.Now()
	kl.mu.Unlock()

	e.mu.Lock()
	return e
}

func (kl *keyLock) unlock(e *lockEntry) {
	e.mu.Unlock()
}

// cleanup removes entries idle longer than 10 minutes.
func (kl *keyLock) cleanup() {
	for {
		time.Sleep(5 * time.Minute)
		kl.mu.Lock()
		for key, e := range kl.entries {
			if time.Since(e.lastUsed) > 10*time.Minute && e.mu.TryLock() {
				e.mu.Unlock()
				delete(kl.entries, key)
			}
		}
		kl.mu.Unlock()
	}
}
