package questionnaire

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// keyedMutex hands out one lock per key. Locks are channels so that waiting
// respects context cancellation; entries are dropped once nobody holds or
// waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

func (k *keyedMutex) lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			k.release(key, l)
		}, nil
	case <-ctx.Done():
		k.release(key, l)
		return nil, ctx.Err()
	}
}

func (k *keyedMutex) release(key string, l *keyLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// Registry owns the questionnaire session of every identity. Calls for the
// same identity are serialized; different identities proceed in parallel.
type Registry struct {
	store  Store
	agent  *Agent
	locks  *keyedMutex
	logger *zap.Logger
	now    func() time.Time
}

func NewRegistry(store Store, agent *Agent, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		agent:  agent,
		locks:  newKeyedMutex(),
		logger: logger.Named("QuestionnaireRegistry"),
		now:    time.Now,
	}
}

// Start replaces any session of identity with a fresh one and returns its
// first question. Nothing is stored if that question cannot be produced.
func (r *Registry) Start(ctx context.Context, identity string) (Result, error) {
	unlock, err := r.locks.lock(ctx, identity)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	s := NewSession(identity, r.now())
	res, err := r.agent.Next(ctx, s, "")
	if err != nil {
		r.logger.Warn("Failed to start questionnaire", zap.String("identity", identity), zap.Error(err))
		return Result{}, err
	}
	s.UpdatedAt = r.now()
	if err := r.store.Put(ctx, s); err != nil {
		return Result{}, err
	}

	sessionsStartedTotal.Inc()
	r.logger.Info("Questionnaire started", zap.String("identity", identity))
	return res, nil
}

// Next records answer and returns the following question. On error the
// stored session is left as it was.
func (r *Registry) Next(ctx context.Context, identity, answer string) (Result, error) {
	unlock, err := r.locks.lock(ctx, identity)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	s, err := r.store.Get(ctx, identity)
	if err != nil {
		return Result{}, err
	}

	res, err := r.agent.Next(ctx, s, answer)
	if err != nil {
		r.logger.Warn("Failed to produce next question",
			zap.String("identity", identity), zap.Int("step", s.Step), zap.Error(err))
		return Result{}, err
	}
	s.UpdatedAt = r.now()
	if err := r.store.Put(ctx, s); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Summarize produces the recommendation for identity and closes the
// session. A failed summary keeps the session for another try.
func (r *Registry) Summarize(ctx context.Context, identity string) (string, *Session, error) {
	unlock, err := r.locks.lock(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	defer unlock()

	s, err := r.store.Get(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	summary, err := r.agent.Summarize(ctx, s)
	if err != nil {
		r.logger.Warn("Failed to summarize questionnaire", zap.String("identity", identity), zap.Error(err))
		return "", nil, err
	}
	if err := r.store.Delete(ctx, identity); err != nil {
		// the summary is already produced; a stale entry expires with its TTL
		r.logger.Error("Failed to delete finished session", zap.String("identity", identity), zap.Error(err))
	}

	r.logger.Info("Questionnaire summarized", zap.String("identity", identity), zap.Int("steps", s.Step))
	return summary, s, nil
}

// Active reports whether identity has a live session.
func (r *Registry) Active(ctx context.Context, identity string) (bool, error) {
	_, err := r.store.Get(ctx, identity)
	if errors.Is(err, ErrNoActiveSession) {
		return false, nil
	}
	return err == nil, err
}
