package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Acquire once the pool has been closed.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Pool holds a fixed set of sessions over one model for concurrent callers.
type Pool struct {
	sessions chan *Session
	size     int
	mu       sync.Mutex
	closed   bool
}

// NewPool creates size sessions for the model at modelPath. Sizes below 1 become 1.
func NewPool(modelPath string, size int, sig Signature) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		sessions: make(chan *Session, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		session, err := NewSession(modelPath, sig)
		if err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("creating session %d: %w", i, err)
		}
		pool.sessions <- session
	}

	return pool, nil
}

// Acquire takes a session, blocking until one is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case session, ok := <-p.sessions:
		if !ok {
			return nil, ErrPoolClosed
		}
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool, closing it if the pool is gone.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = s.Close()
		return
	}
	p.mu.Unlock()

	select {
	case p.sessions <- s:
	default:
		_ = s.Close()
	}
}

// Infer acquires a session, runs one sequence through it and releases it.
func (p *Pool) Infer(ctx context.Context, ids, mask []int64) ([]float32, error) {
	session, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(session)
	return session.Infer(ctx, ids, mask)
}

// Close closes all idle sessions. Sessions still out are closed on Release.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.sessions)

	var errs []error
	for session := range p.sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Size returns the number of sessions the pool was created with.
func (p *Pool) Size() int {
	return p.size
}
