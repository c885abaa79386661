package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory unit of work. Writes are queued and applied on SaveChanges, like
// the Postgres implementation.
// ---------------------------------------------------------------------------

type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*domain.User
	texts       map[int64]*domain.Text
	predictions map[int64]*domain.Prediction
	securities  map[string]*domain.Security

	saveErr error // if set, SaveChanges discards pending writes and returns it
	saves   int
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]*domain.User),
		texts:       make(map[int64]*domain.Text),
		predictions: make(map[int64]*domain.Prediction),
		securities:  make(map[string]*domain.Security),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) seedUser(name, email string) *domain.User {
	u := &domain.User{ID: s.id(), Name: name, Email: email}
	s.users[u.ID] = u
	return u
}

func (s *memStore) seedText(userID int64, content string) *domain.Text {
	t := &domain.Text{ID: s.id(), UserID: userID, Content: content}
	s.texts[t.ID] = t
	return t
}

func (s *memStore) seedPrediction(textID, userID int64, result string, probability float64) *domain.Prediction {
	tid, uid := textID, userID
	p := &domain.Prediction{ID: s.id(), TextID: &tid, UserID: &uid, Result: result, Probability: probability}
	s.predictions[p.ID] = p
	return p
}

type memFactory struct{ store *memStore }

func (f memFactory) New() ports.UnitOfWork { return &memUoW{store: f.store} }

type memUoW struct {
	store   *memStore
	pending []func() error
}

func (u *memUoW) enqueue(op func() error) { u.pending = append(u.pending, op) }

func (u *memUoW) Users() ports.UserRepository             { return memUsers{u} }
func (u *memUoW) Texts() ports.TextRepository             { return memTexts{u} }
func (u *memUoW) Predictions() ports.PredictionRepository { return memPredictions{u} }
func (u *memUoW) Securities() ports.SecurityRepository    { return memSecurities{u} }

func (u *memUoW) SaveChanges(_ context.Context) (int, error) {
	ops := u.pending
	u.pending = nil

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.saveErr != nil {
		return 0, u.store.saveErr
	}
	u.store.saves++
	for i, op := range ops {
		if err := op(); err != nil {
			return i, err
		}
	}
	return len(ops), nil
}

func (u *memUoW) SaveChangesAsync(ctx context.Context) <-chan ports.SaveResult {
	ch := make(chan ports.SaveResult, 1)
	n, err := u.SaveChanges(ctx)
	ch <- ports.SaveResult{Affected: n, Err: err}
	close(ch)
	return ch
}

func (u *memUoW) BeginTransaction(context.Context) error { return nil }
func (u *memUoW) Commit(ctx context.Context) error {
	_, err := u.SaveChanges(ctx)
	return err
}
func (u *memUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

// ── users ────────────────────────────────────────────────────────────────────

type memUsers struct{ u *memUoW }

func (r memUsers) GetAll(_ context.Context) ([]*domain.User, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.User
	for _, u := range s.users {
		clone := *u
		clone.TextCount = 0
		for _, t := range s.texts {
			if t.UserID == u.ID {
				clone.TextCount++
			}
		}
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	clone := *u
	return &clone, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (r memUsers) Add(user *domain.User) {
	r.u.enqueue(func() error {
		user.ID = r.u.store.id()
		clone := *user
		r.u.store.users[user.ID] = &clone
		return nil
	})
}

func (r memUsers) Update(user *domain.User) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.users[user.ID]; !ok {
			return domain.NewNotFoundError("user", user.ID)
		}
		clone := *user
		r.u.store.users[user.ID] = &clone
		return nil
	})
}

func (r memUsers) Delete(id int64) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.users[id]; !ok {
			return domain.NewNotFoundError("user", id)
		}
		delete(r.u.store.users, id)
		for tid, t := range r.u.store.texts {
			if t.UserID == id {
				delete(r.u.store.texts, tid)
			}
		}
		return nil
	})
}

// ── texts ────────────────────────────────────────────────────────────────────

type memTexts struct{ u *memUoW }

func (r memTexts) GetAll(_ context.Context) ([]*domain.Text, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Text
	for _, t := range s.texts {
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memTexts) GetByID(_ context.Context, id int64) (*domain.Text, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.texts[id]
	if !ok {
		return nil, domain.NewNotFoundError("text", id)
	}
	clone := *t
	return &clone, nil
}

func (r memTexts) Add(text *domain.Text) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.users[text.UserID]; !ok {
			return domain.NewBusinessError("user %d does not exist", text.UserID)
		}
		text.ID = r.u.store.id()
		clone := *text
		r.u.store.texts[text.ID] = &clone
		return nil
	})
}

func (r memTexts) Update(text *domain.Text) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.texts[text.ID]; !ok {
			return domain.NewNotFoundError("text", text.ID)
		}
		clone := *text
		r.u.store.texts[text.ID] = &clone
		return nil
	})
}

// Delete leaves predictions in place with a nil TextID, as the foreign key does.
func (r memTexts) Delete(id int64) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.texts[id]; !ok {
			return domain.NewNotFoundError("text", id)
		}
		delete(r.u.store.texts, id)
		for _, p := range r.u.store.predictions {
			if p.TextID != nil && *p.TextID == id {
				p.TextID = nil
			}
		}
		return nil
	})
}

// ── predictions ──────────────────────────────────────────────────────────────

type memPredictions struct{ u *memUoW }

func (r memPredictions) GetAll(_ context.Context) ([]*domain.Prediction, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Prediction
	for _, p := range s.predictions {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPredictions) GetByID(_ context.Context, id int64) (*domain.Prediction, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.predictions[id]
	if !ok {
		return nil, domain.NewNotFoundError("prediction", id)
	}
	clone := *p
	return &clone, nil
}

func (r memPredictions) TrainingExamples(ctx context.Context) ([]domain.TrainingExample, error) {
	return nil, errors.New("not used by services")
}

func (r memPredictions) Add(p *domain.Prediction) {
	r.u.enqueue(func() error {
		p.ID = r.u.store.id()
		clone := *p
		r.u.store.predictions[p.ID] = &clone
		return nil
	})
}

func (r memPredictions) Delete(id int64) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.predictions[id]; !ok {
			return domain.NewNotFoundError("prediction", id)
		}
		delete(r.u.store.predictions, id)
		return nil
	})
}

func (r memPredictions) DeleteByText(textID int64) {
	r.u.enqueue(func() error {
		for id, p := range r.u.store.predictions {
			if p.TextID != nil && *p.TextID == textID {
				delete(r.u.store.predictions, id)
			}
		}
		return nil
	})
}

// ── securities ───────────────────────────────────────────────────────────────

type memSecurities struct{ u *memUoW }

func (r memSecurities) GetByLogin(_ context.Context, login string) (*domain.Security, error) {
	s := r.u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.securities[login]
	if !ok {
		return nil, domain.NewNotFoundError("security", login)
	}
	clone := *sec
	return &clone, nil
}

func (r memSecurities) Add(sec *domain.Security) {
	r.u.enqueue(func() error {
		if _, ok := r.u.store.securities[sec.Login]; ok {
			return domain.NewBusinessError("login %s already exists", sec.Login)
		}
		sec.ID = r.u.store.id()
		clone := *sec
		r.u.store.securities[sec.Login] = &clone
		return nil
	})
}
