package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/dd0wney/socialgraph/pkg/logging"
)

// WorkerPool runs submitted tasks on a fixed set of goroutines. A task that
// panics does not take its worker down; the panic is logged and reported by
// Wait.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // guards closed against a concurrent Close
	closed    bool
	logger    logging.Logger

	panicMu sync.Mutex
	panics  []any
}

// ErrTaskPanicked is wrapped by the error Wait returns when a task panicked.
var ErrTaskPanicked = errors.New("task panicked")

// Option configures a WorkerPool.
type Option func(*WorkerPool)

// WithLogger logs recovered panics.
func WithLogger(logger logging.Logger) Option {
	return func(wp *WorkerPool) {
		wp.logger = logger
	}
}

// NewWorkerPool starts workers goroutines. Zero or fewer means GOMAXPROCS.
func NewWorkerPool(workers int, opts ...Option) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(pool)
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.execute(task)
	}
}

func (wp *WorkerPool) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			wp.logger.Error("worker task panicked", logging.Any("panic", r))
			wp.panicMu.Lock()
			wp.panics = append(wp.panics, r)
			wp.panicMu.Unlock()
		}
	}()
	task()
}

// Submit queues a task. It returns false once the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}
	wp.taskQueue <- task
	return true
}

// Close stops accepting tasks and waits for the queued ones. It is safe to
// call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}

// Wait closes the pool and reports any task panics.
func (wp *WorkerPool) Wait() error {
	wp.Close()

	wp.panicMu.Lock()
	defer wp.panicMu.Unlock()
	if len(wp.panics) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d task(s), first: %v", ErrTaskPanicked, len(wp.panics), wp.panics[0])
}

// Run executes tasks on a pool of at most workers goroutines and waits for
// all of them.
func Run(workers int, tasks ...func()) error {
	if workers <= 0 || workers > len(tasks) {
		workers = max(len(tasks), 1)
	}
	pool := NewWorkerPool(workers)
	for _, task := range tasks {
		pool.Submit(task)
	}
	return pool.Wait()
}
