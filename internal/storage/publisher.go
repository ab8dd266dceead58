package storage

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
)

// DefaultQueueSize is the number of pending writes a Publisher buffers.
const DefaultQueueSize = 64

// writeTimeout bounds a single database write.
const writeTimeout = 5 * time.Second

// job is one queued write. done, when set, runs after the write whether it
// succeeded or not, and also when the write is dropped.
type job struct {
	name string
	fn   func(ctx context.Context) error
	done func()
}

func (j job) finish() {
	if j.done != nil {
		j.done()
	}
}

// Publisher forwards simulation events to the Store from a single worker
// goroutine. Enqueueing never blocks: when the queue is full the write is
// dropped and logged. Failed writes are logged and not retried.
type Publisher struct {
	store  *Store
	logger *log.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	done   chan struct{}
}

var _ catapult.Recorder = (*Publisher)(nil)

// NewPublisher starts a worker writing to store.
func NewPublisher(store *Store, logger *log.Logger, size int) *Publisher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if size <= 0 {
		size = DefaultQueueSize
	}
	p := &Publisher{
		store:  store,
		logger: logger,
		queue:  make(chan job, size),
		done:   make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Publisher) loop() {
	defer close(p.done)
	for j := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := j.fn(ctx)
		cancel()
		j.finish()
		if err != nil {
			p.logger.Warn("write failed", "op", j.name, "err", err)
			continue
		}
		p.logger.Debug("write done", "op", j.name)
	}
}

func (p *Publisher) enqueue(j job) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.logger.Debug("publisher closed, dropping write", "op", j.name)
		j.finish()
		return
	}
	select {
	case p.queue <- j:
	default:
		p.logger.Warn("write queue full, dropping", "op", j.name)
		j.finish()
	}
}

// RunStarted queues the creation of a run row.
func (p *Publisher) RunStarted(id string, start time.Time) {
	p.enqueue(job{name: "create_run", fn: func(ctx context.Context) error {
		return p.store.CreateRun(ctx, id, start)
	}})
}

// RunFinished queues the final result of a run.
func (p *Publisher) RunFinished(res catapult.RunResult) {
	p.enqueue(job{name: "update_run", fn: func(ctx context.Context) error {
		return p.store.UpdateRun(ctx, res)
	}})
}

// ConfigChanged queues a write of the tunable parameters. done runs once the
// write is over or dropped.
func (p *Publisher) ConfigChanged(params config.Params, done func()) {
	p.enqueue(job{name: "save_config", done: done, fn: func(ctx context.Context) error {
		return p.store.SaveParams(ctx, params)
	}})
}

// Close stops accepting writes and waits for queued ones to finish.
func (p *Publisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}
