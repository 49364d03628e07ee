package handlers_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tasks_api/internal/domain"
	"tasks_api/internal/repository"
	"tasks_api/internal/ws"
)

// clock hands out strictly increasing timestamps so ordering is deterministic.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type memTasks struct {
	mu   sync.Mutex
	clk  *clock
	seq  int64
	rows map[int64]domain.Task
	err  error
}

func newMemTasks(clk *clock) *memTasks {
	return &memTasks{clk: clk, rows: make(map[int64]domain.Task)}
}

func (m *memTasks) Create(_ context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.seq++
	now := m.clk.tick()
	t.ID = m.seq
	t.IsCompleted = false
	t.CreatedAt, t.UpdatedAt = now, now
	m.rows[t.ID] = *t
	return nil
}

func (m *memTasks) List(_ context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	res := make([]*domain.Task, 0, len(m.rows))
	for _, t := range m.rows {
		t := t
		res = append(res, &t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (m *memTasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (m *memTasks) Update(_ context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cur, ok := m.rows[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title, cur.Description, cur.Deadline, cur.IsCompleted = t.Title, t.Description, t.Deadline, t.IsCompleted
	cur.UpdatedAt = m.clk.tick()
	m.rows[t.ID] = cur
	*t = cur
	return nil
}

func (m *memTasks) SetCompleted(_ context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cur, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cur.IsCompleted = true
	cur.UpdatedAt = m.clk.tick()
	m.rows[id] = cur
	return &cur, nil
}

func (m *memTasks) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

type memUsers struct {
	mu   sync.Mutex
	clk  *clock
	seq  int64
	rows map[int64]domain.User
}

func newMemUsers(clk *clock) *memUsers {
	return &memUsers{clk: clk, rows: make(map[int64]domain.User)}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u.ID = m.seq
	u.CreatedAt = m.clk.tick()
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) List(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]*domain.User, 0, len(m.rows))
	for _, u := range m.rows {
		u := u
		res = append(res, &u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Username, cur.Email, cur.Password = u.Username, u.Email, u.Password
	m.rows[u.ID] = cur
	*u = cur
	return nil
}

func (m *memUsers) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recordedEvents) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errBoom = errors.New("connection reset by peer")
