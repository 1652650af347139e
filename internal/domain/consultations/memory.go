package consultations

import (
	"context"
	"sync"
	"time"
)

// Memory — in-memory реализация Store (dev-режим и тесты).
type Memory struct {
	mu   sync.Mutex
	next int64
	reqs []Request
}

func NewMemory() *Memory { return &Memory{next: 1} }

func (m *Memory) Create(_ context.Context, r Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.next
	m.next++
	m.reqs = append(m.reqs, r)
	return nil
}

func (m *Memory) ListCreatedAfter(_ context.Context, t time.Time) ([]Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Request
	for _, r := range m.reqs {
		if !r.CreatedAt.Before(t) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.reqs)), nil
}
