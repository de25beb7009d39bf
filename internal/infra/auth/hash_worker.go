package auth

import (
	"context"
	"sync"

	"habit/internal/domain/service"
	"habit/internal/errors"
)

// ErrHashWorkerClosed is returned for jobs submitted after Close.
var ErrHashWorkerClosed = errors.New("hash worker is closed")

var _ service.HashWorker = (*HashWorker)(nil)

type hashJob struct {
	ctx    context.Context
	run    func() service.HashResult
	result chan service.HashResult
}

// HashWorker is a fixed pool of goroutines computing and verifying password hashes.
type HashWorker struct {
	hasher service.PasswordHasher
	jobs   chan hashJob

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewHashWorker starts workers goroutines consuming a queue of queueSize jobs.
func NewHashWorker(hasher service.PasswordHasher, workers, queueSize int) *HashWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	w := &HashWorker{
		hasher: hasher,
		jobs:   make(chan hashJob, queueSize),
	}

	w.wg.Add(workers)
	for range workers {
		go w.run()
	}

	return w
}

// Submit enqueues a hash job. The returned channel is buffered and receives exactly one result.
// A full queue blocks until a slot frees up or ctx is done.
func (w *HashWorker) Submit(ctx context.Context, password string) <-chan service.HashResult {
	return w.submit(ctx, func() service.HashResult {
		hash, err := w.hasher.Hash(password)

		return service.HashResult{Hash: hash, Err: err}
	})
}

// SubmitVerify enqueues a verification job; the result carries Match.
func (w *HashWorker) SubmitVerify(ctx context.Context, password, hash string) <-chan service.HashResult {
	return w.submit(ctx, func() service.HashResult {
		return service.HashResult{Match: w.hasher.Verify(password, hash)}
	})
}

func (w *HashWorker) submit(ctx context.Context, run func() service.HashResult) <-chan service.HashResult {
	result := make(chan service.HashResult, 1)

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		result <- service.HashResult{Err: ErrHashWorkerClosed}

		return result
	}

	select {
	case w.jobs <- hashJob{ctx: ctx, run: run, result: result}:
	case <-ctx.Done():
		result <- service.HashResult{Err: errors.Wrap(ctx.Err(), "submit hash job")}
	}

	return result
}

// Hash submits a job and waits for its result or for ctx to be done.
func (w *HashWorker) Hash(ctx context.Context, password string) (string, error) {
	res, err := Await(ctx, w.Submit(ctx, password))
	if err != nil {
		return "", err
	}

	return res.Hash, nil
}

// Verify checks password against hash on the pool.
func (w *HashWorker) Verify(ctx context.Context, password, hash string) (bool, error) {
	res, err := Await(ctx, w.SubmitVerify(ctx, password, hash))
	if err != nil {
		return false, err
	}

	return res.Match, nil
}

// Close stops accepting jobs, finishes queued ones and waits for all workers to exit.
func (w *HashWorker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()

		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *HashWorker) run() {
	defer w.wg.Done()

	for job := range w.jobs {
		if err := job.ctx.Err(); err != nil {
			job.result <- service.HashResult{Err: errors.Wrap(err, "hash job cancelled")}

			continue
		}

		job.result <- job.run()
	}
}

// Await waits on a future, giving up when ctx is done. A failed job is returned as its error.
func Await(ctx context.Context, future <-chan service.HashResult) (service.HashResult, error) {
	select {
	case res := <-future:
		if res.Err != nil {
			return service.HashResult{}, res.Err
		}

		return res, nil
	case <-ctx.Done():
		return service.HashResult{}, errors.Wrap(ctx.Err(), "wait for password hash")
	}
}
