package dialog

import (
	"context"
	"sync"
	"time"
)

// Memory — in-memory реализация Store для dev-режима и тестов.
type Memory struct {
	mu    sync.Mutex
	items map[int64]*Item
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[int64]*Item), now: time.Now}
}

func (m *Memory) Get(_ context.Context, chatID int64) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[chatID]
	if !ok {
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	cp := *it
	p := Payload{}
	for k, v := range it.Payload {
		p[k] = v
	}
	cp.Payload = p
	return &cp, nil
}

func (m *Memory) Set(_ context.Context, chatID int64, state State, payload Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if payload == nil {
		payload = Payload{}
	}
	m.items[chatID] = &Item{ChatID: chatID, State: state, Payload: payload, UpdatedAt: m.now()}
	return nil
}

func (m *Memory) Reset(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, chatID)
	return nil
}

func (m *Memory) ResetStale(_ context.Context, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-ttl)
	var n int64
	for id, it := range m.items {
		if it.State != StateIdle && it.UpdatedAt.Before(cutoff) {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}
