package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/childpsy/adaptation-bot/internal/i18n"
)

// Memory — in-memory реализация Store (dev-режим и тесты).
type Memory struct {
	mu    sync.Mutex
	byID  map[int64]*User
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[int64]*User), now: time.Now}
}

func (m *Memory) Upsert(_ context.Context, tg Telegram) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[tg.ChatID]
	if !ok {
		u = &User{
			ChatID:    tg.ChatID,
			Language:  i18n.Default,
			CreatedAt: m.now(),
		}
		m.byID[tg.ChatID] = u
	}
	u.Username = tg.Username
	u.FirstName = tg.FirstName
	u.LastName = tg.LastName
	u.LastActivity = m.now()
	cp := *u
	return &cp, nil
}

func (m *Memory) Get(_ context.Context, chatID int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[chatID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) SetLanguage(_ context.Context, chatID int64, lang i18n.Lang) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[chatID]; ok {
		u.Language = lang
		u.LastActivity = m.now()
	}
	return nil
}

func (m *Memory) SetInstagram(_ context.Context, chatID int64, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[chatID]; ok {
		u.Instagram = handle
		u.LastActivity = m.now()
	}
	return nil
}

func (m *Memory) Touch(_ context.Context, chatID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[chatID]; ok {
		u.LastActivity = at
	}
	return nil
}

func (m *Memory) List(_ context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListCreatedAfter(ctx context.Context, t time.Time) ([]User, error) {
	all, _ := m.List(ctx)
	out := all[:0]
	for _, u := range all {
		if !u.CreatedAt.Before(t) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}
