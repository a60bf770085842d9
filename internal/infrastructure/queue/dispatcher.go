// Package queue runs background fetch hooks on a fixed pool of workers.
package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobportal/portal-client/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type job struct {
	key  string
	task ports.FetchTask
}

// Dispatcher shards tasks over workers by key, so tasks for one collection
// run one at a time and in the order enqueued.
type Dispatcher struct {
	workers []chan job
	log     zerolog.Logger
	wg      sync.WaitGroup

	done     chan struct{}
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches the workers. They stop when ctx is cancelled; Wait blocks
// until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.stop()
	}()
}

func (d *Dispatcher) stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Enqueue hands task to the worker owning key. It blocks once that worker's
// buffer is full, and drops the task once the dispatcher has stopped.
func (d *Dispatcher) Enqueue(key string, task ports.FetchTask) {
	select {
	case <-d.done:
		d.dropped(key)
		return
	default:
	}
	select {
	case d.workers[d.shardIndex(key)] <- job{key: key, task: task}:
	case <-d.done:
		d.dropped(key)
	}
}

func (d *Dispatcher) dropped(key string) {
	d.log.Debug().Str("key", key).Msg("dispatcher stopped, fetch task dropped")
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			d.run(ctx, id, j)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, id int, j job) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("key", j.key).
				Int("worker_id", id).
				Msg("fetch task panicked")
		}
	}()
	j.task(ctx)
}

var _ ports.FetchQueue = (*Dispatcher)(nil)
