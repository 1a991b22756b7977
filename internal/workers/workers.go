// Package workers provides a bounded goroutine pool for CPU-heavy
// cryptographic jobs. Argon2 derivation and post-quantum keypair
// generation run here so the interactive UI loop never blocks on them.
package workers

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Do after Shutdown has run.
var ErrPoolClosed = errors.New("workers: pool is closed")

// Pool runs submitted jobs on a fixed number of goroutines.
type Pool struct {
	jobs chan func()
	quit chan struct{}
	wg   sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	submitters sync.WaitGroup
}

// NewPool creates a pool with the given number of workers. Sizes below
// one are clamped to one.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		jobs: make(chan func(), size),
		quit: make(chan struct{}),
	}
}

// Run starts the worker goroutines. Call once.
func (p *Pool) Run() {
	for i := 0; i < cap(p.jobs); i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
}

// Do executes fn on the pool and blocks until it finishes or ctx is
// cancelled. When the context is cancelled before the job is picked up,
// the job never runs; when cancelled mid-job, the job still completes but
// its result is discarded.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	// Registering as a submitter under the mutex keeps the jobs channel
	// open until every in-flight send has finished.
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.submitters.Add(1)
	p.mu.Unlock()
	defer p.submitters.Done()

	done := make(chan error, 1)
	job := func() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		done <- fn()
	}

	select {
	case p.jobs <- job:
	case <-p.quit:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for in-flight ones to finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.quit)
	p.mu.Unlock()

	// The jobs channel may only close once no submitter can still be
	// blocked sending on it.
	p.submitters.Wait()
	close(p.jobs)

	p.wg.Wait()
}
