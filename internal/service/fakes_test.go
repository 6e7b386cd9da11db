package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var testLog = zerolog.New(io.Discard)

// memStore is an in-memory ApprovalStore. InTx holds the store mutex for the
// whole callback, which serialises transactions the way row locks would, and
// restores a snapshot when the callback fails.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	classes  map[uuid.UUID]*model.ClassRequest
	credits  map[uuid.UUID]*model.CreditRequest
	guests   []model.GuestListEntry
	adjusted int
	txErr    error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[uuid.UUID]*model.User{},
		classes: map[uuid.UUID]*model.ClassRequest{},
		credits: map[uuid.UUID]*model.CreditRequest{},
	}
}

func (m *memStore) addUser(name string, role model.Role, credits int) *model.User {
	u := &model.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: role, Credits: credits}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addClass(userID uuid.UUID, date, clock string) *model.ClassRequest {
	r := &model.ClassRequest{ID: uuid.New(), UserID: userID, Date: date, Time: clock, Status: model.StatusPending, CreatedAt: time.Now()}
	m.classes[r.ID] = r
	return r
}

func (m *memStore) addCredit(userID uuid.UUID, amount int) *model.CreditRequest {
	r := &model.CreditRequest{ID: uuid.New(), UserID: userID, Amount: amount, ProofMessage: "paid", PaymentMethod: model.DefaultPaymentMethod, Status: model.StatusPending, CreatedAt: time.Now()}
	m.credits[r.ID] = r
	return r
}

func (m *memStore) user(id uuid.UUID) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.users[id]
}

func (m *memStore) classStatus(id uuid.UUID) model.RequestStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.classes[id].Status
}

func (m *memStore) creditStatus(id uuid.UUID) model.RequestStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credits[id].Status
}

type memSnapshot struct {
	users   map[uuid.UUID]model.User
	classes map[uuid.UUID]model.ClassRequest
	credits map[uuid.UUID]model.CreditRequest
	guests  int
	adjust  int
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		users:   map[uuid.UUID]model.User{},
		classes: map[uuid.UUID]model.ClassRequest{},
		credits: map[uuid.UUID]model.CreditRequest{},
		guests:  len(m.guests),
		adjust:  m.adjusted,
	}
	for k, v := range m.users {
		s.users[k] = *v
	}
	for k, v := range m.classes {
		s.classes[k] = *v
	}
	for k, v := range m.credits {
		s.credits[k] = *v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	for k, v := range s.users {
		v := v
		m.users[k] = &v
	}
	for k, v := range s.classes {
		v := v
		m.classes[k] = &v
	}
	for k, v := range s.credits {
		v := v
		m.credits[k] = &v
	}
	m.guests = m.guests[:s.guests]
	m.adjusted = s.adjust
}

func (m *memStore) InTx(ctx context.Context, fn func(tx ApprovalTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.txErr != nil {
		return m.txErr
	}
	snap := m.snapshot()
	if err := fn(memTx{m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) DeclineClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	if r.Status != model.StatusPending {
		return &cp, repository.ErrNotPending
	}
	now := time.Now()
	r.Status, r.ResolvedAt = model.StatusDeclined, &now
	cp = *r
	return &cp, nil
}

func (m *memStore) DeclineCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.credits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	if r.Status != model.StatusPending {
		return &cp, repository.ErrNotPending
	}
	now := time.Now()
	r.Status, r.ResolvedAt = model.StatusDeclined, &now
	cp = *r
	return &cp, nil
}

// memTx runs with memStore.mu already held.
type memTx struct{ m *memStore }

func (t memTx) LockClassRequest(ctx context.Context, id uuid.UUID) (*model.ClassRequest, error) {
	r, ok := t.m.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (t memTx) LockCreditRequest(ctx context.Context, id uuid.UUID) (*model.CreditRequest, error) {
	r, ok := t.m.credits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (t memTx) LockUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := t.m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (t memTx) AdjustCredits(ctx context.Context, userID uuid.UUID, delta int) (*model.User, error) {
	u, ok := t.m.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Credits += delta
	t.m.adjusted++
	cp := *u
	return &cp, nil
}

func (t memTx) ResolveClassRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.ClassRequest, error) {
	r, ok := t.m.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.Status != model.StatusPending {
		return nil, repository.ErrNotPending
	}
	now := time.Now()
	r.Status, r.ResolvedAt = status, &now
	cp := *r
	return &cp, nil
}

func (t memTx) ResolveCreditRequest(ctx context.Context, id uuid.UUID, status model.RequestStatus) (*model.CreditRequest, error) {
	r, ok := t.m.credits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.Status != model.StatusPending {
		return nil, repository.ErrNotPending
	}
	now := time.Now()
	r.Status, r.ResolvedAt = status, &now
	cp := *r
	return &cp, nil
}

func (t memTx) InsertGuestListEntry(ctx context.Context, e *model.GuestListEntry) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	t.m.guests = append(t.m.guests, *e)
	return nil
}

type hookCall struct {
	req  model.ClassRequest
	user model.User
}

type fakeHook struct {
	mu    sync.Mutex
	calls []hookCall
	err   error
}

func (h *fakeHook) OnClassApproved(ctx context.Context, req *model.ClassRequest, user *model.User) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, hookCall{req: *req, user: *user})
	return h.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []model.RequestEvent
}

func (p *fakePublisher) Publish(ctx context.Context, e model.RequestEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Name: "Anirban", Email: "admin@example.com", Role: model.RoleAdmin}
}

// fakeKV implements the string commands the services use. Every other
// Cmdable method panics through the nil embedded interface.
type fakeKV struct {
	redis.Cmdable
	mu   sync.Mutex
	data map[string]string
	gets int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}
