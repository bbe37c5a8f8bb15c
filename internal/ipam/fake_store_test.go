package ipam

import (
	"context"
	"errors"
	"sync"

	"ipmanager/internal/models"
)

// memStore: потокобезопасный фейк Store для тестов сервиса и HTTP.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	rows   []models.IPEntry
	err    error
	writes int
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (m *memStore) List(context.Context) ([]models.IPEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.IPEntry(nil), m.rows...), nil
}

func (m *memStore) Get(_ context.Context, id uint) (*models.IPEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.rows {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Insert(_ context.Context, e *models.IPEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes++
	e.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memStore) Update(_ context.Context, id uint, apply func(*models.IPEntry)) (*models.IPEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.writes++
			apply(&m.rows[i])
			m.rows[i].ID = id
			r := m.rows[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.writes++
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

var errBoom = errors.New("disk on fire")
