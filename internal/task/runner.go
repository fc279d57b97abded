package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Common errors returned by the Runner.
var (
	ErrQueueFull    = errors.New("task queue is full")
	ErrRunnerClosed = errors.New("task runner is closed")
)

// Task is a unit of background work.
type Task interface {
	// ID returns the task's unique identifier, used for cancellation.
	ID() uuid.UUID

	// Kind returns the task type identifier for logging.
	Kind() string

	// Execute runs the task. The context is cancelled when the task is
	// cancelled or the runner shuts down.
	Execute(ctx context.Context) error
}

// RunnerConfig holds configuration for the Runner.
type RunnerConfig struct {
	// WorkerCount determines how many tasks may run concurrently.
	WorkerCount int

	// QueueSize is the buffer size of the submission queue.
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
// One worker is enough: there is at most one synthesis outstanding per user
// action, and serializing them keeps the TTS endpoint load predictable.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{WorkerCount: 1, QueueSize: 16}
}

// entry tracks the lifecycle of one submitted task.
type entry struct {
	cancelled bool
	cancel    context.CancelFunc // set once the task starts running
}

// Runner executes submitted tasks on a small worker pool and supports
// cancelling a task by ID whether it is still queued or already running.
type Runner struct {
	tasks      chan Task
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]*entry
	closed  bool
}

// NewRunner creates a Runner with the given configuration.
func NewRunner(cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 16
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Runner{
		tasks:      make(chan Task, cfg.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger,
		pending:    make(map[uuid.UUID]*entry),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker()
	}

	return r
}

// Submit enqueues a task for execution.
// Returns ErrQueueFull if the buffer is exhausted.
func (r *Runner) Submit(task Task) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRunnerClosed
	}
	r.pending[task.ID()] = &entry{}
	r.mu.Unlock()

	select {
	case r.tasks <- task:
		r.logger.Debug("task enqueued",
			"task_id", task.ID(),
			"task_kind", task.Kind())
		return nil
	default:
		r.mu.Lock()
		delete(r.pending, task.ID())
		r.mu.Unlock()
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(r.tasks))
	}
}

// Cancel stops the task with the given ID. A queued task is dropped before
// it runs; a running task has its context cancelled. Unknown IDs are
// ignored.
func (r *Runner) Cancel(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pending[id]
	if !ok {
		return
	}

	e.cancelled = true
	if e.cancel != nil {
		e.cancel()
	}
	r.logger.Debug("task cancelled", "task_id", id)
}

// Pending reports whether the task with the given ID is queued or running.
func (r *Runner) Pending(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.pending[id]
	return ok && !e.cancelled
}

// Stop cancels all work and waits for the workers to drain.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancelFunc()
	close(r.tasks)
	r.wg.Wait()
}

func (r *Runner) worker() {
	defer r.wg.Done()

	for task := range r.tasks {
		r.mu.Lock()
		e, ok := r.pending[task.ID()]
		if !ok || e.cancelled {
			delete(r.pending, task.ID())
			r.mu.Unlock()
			continue
		}
		taskCtx, cancel := context.WithCancel(r.ctx)
		e.cancel = cancel
		r.mu.Unlock()

		err := task.Execute(taskCtx)
		cancel()

		r.mu.Lock()
		delete(r.pending, task.ID())
		r.mu.Unlock()

		if err != nil {
			// Background failures are logged, never surfaced; the work
			// is fire-and-forget by contract.
			r.logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_kind", task.Kind(),
				"error", err)
		} else {
			r.logger.Debug("task completed",
				"task_id", task.ID(),
				"task_kind", task.Kind())
		}
	}
}
