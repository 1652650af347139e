package claims

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory — in-memory реализация Store (dev-режим и тесты).
type Memory struct {
	mu      sync.Mutex
	claimed map[int64]map[string]struct{}
	events  []Event
	pending map[int64]Pending
}

func NewMemory() *Memory {
	return &Memory{
		claimed: make(map[int64]map[string]struct{}),
		pending: make(map[int64]Pending),
	}
}

func (m *Memory) MarkClaimed(_ context.Context, chatID int64, itemKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.claimed[chatID]
	if !ok {
		set = make(map[string]struct{})
		m.claimed[chatID] = set
	}
	set[itemKey] = struct{}{}
	return nil
}

func (m *Memory) ListClaimed(_ context.Context, chatID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.claimed[chatID] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) CountClaimed(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, set := range m.claimed {
		n += int64(len(set))
	}
	return n, nil
}

func (m *Memory) RecordEvent(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) ListEventsAfter(_ context.Context, t time.Time) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, ev := range m.events {
		if !ev.CreatedAt.Before(t) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *Memory) SetPending(_ context.Context, p Pending) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[p.ChatID] = p
	return nil
}

func (m *Memory) GetPending(_ context.Context, chatID int64) (*Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pending[chatID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) DeletePending(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, chatID)
	return nil
}

func (m *Memory) ListPending(_ context.Context) ([]Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Pending, 0, len(m.pending))
	for _, p := range m.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) CountPending(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pending)), nil
}
