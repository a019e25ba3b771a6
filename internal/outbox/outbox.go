// Package outbox decouples in-memory mutations from persistence. Callers
// mutate memory first, enqueue a persist task, and never block on the
// write completing. A failed write is logged and dropped; the in-memory
// state stays authoritative for the rest of the session.
package outbox

import (
	"sync"

	"github.com/asytuyf/genesis-vault/internal/logger"
)

// Task is a deferred persistence operation.
type Task struct {
	// Name identifies the write for logging.
	Name string
	// Persist performs the write.
	Persist func() error
}

// Outbox runs persist tasks on a single background worker, preserving
// enqueue order. A full queue falls back to running the task inline so no
// write is ever silently skipped before being attempted.
type Outbox struct {
	tasks chan Task
	done  chan struct{}
	once  sync.Once
}

// New creates an Outbox and starts its worker.
func New(depth int) *Outbox {
	if depth < 1 {
		depth = 1
	}
	o := &Outbox{
		tasks: make(chan Task, depth),
		done:  make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *Outbox) run() {
	defer close(o.done)
	for task := range o.tasks {
		execute(task)
	}
}

func execute(task Task) {
	if task.Persist == nil {
		return
	}
	if err := task.Persist(); err != nil {
		// Best-effort durability: the session continues on memory.
		logger.Warn("Persist failed", "task", task.Name, "error", err)
	}
}

// Enqueue schedules a persist task and returns immediately.
func (o *Outbox) Enqueue(task Task) {
	select {
	case o.tasks <- task:
	default:
		execute(task)
	}
}

// Close drains outstanding tasks and stops the worker. Safe to call more
// than once.
func (o *Outbox) Close() {
	o.once.Do(func() {
		close(o.tasks)
	})
	<-o.done
}
