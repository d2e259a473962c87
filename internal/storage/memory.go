package storage

import "sync"

// MemoryBackend keeps documents in memory. Data is lost on restart.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string]Document)}
}

func (m *MemoryBackend) Load(name string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[name]
	if !ok {
		return Document{}, nil
	}
	return doc.clone(), nil
}

func (m *MemoryBackend) Save(name string, doc Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = doc.clone()
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
