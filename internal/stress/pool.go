// Package stress hammers one SmartArray with many concurrent readers and
// writers from a fixed-size worker pool, and counts what the readers saw.
package stress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/marcodamonte/objectmodel/smartarray"
)

// Kind selects what a Task does to the array.
type Kind int

const (
	Read Kind = iota
	Write
)

func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Task is one access to the shared array. Index and Value are only used by
// writes.
type Task struct {
	Kind  Kind
	Index int
	Value int
}

// Config holds pool construction parameters.
type Config struct {
	// Workers is the number of goroutines running tasks concurrently.
	Workers int

	// QueueSize is the capacity of the task channel. 0 makes Submit wait
	// for a free worker.
	QueueSize int

	// ShutdownTimeout bounds how long Shutdown waits for queued tasks.
	// Defaults to 30 s.
	ShutdownTimeout time.Duration

	// Logger receives pool events. Nil discards them.
	Logger logrus.FieldLogger
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Workers <= 0 {
		out.Workers = 1
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = 30 * time.Second
	}
	if out.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		out.Logger = l
	}
	return out
}

// Metrics are live pool counters, updated atomically.
type Metrics struct {
	Submitted int64 // tasks accepted by Submit
	Reads     int64 // read passes completed
	Writes    int64 // writes applied
	Failed    int64 // tasks that returned an error
	Dropped   int64 // tasks rejected after shutdown or cancelled in Submit
	Torn      int64 // read passes whose element count did not match
}

// Pool runs Tasks against a single array.
//
//	p := stress.New(cfg, arr)
//	p.Submit(ctx, stress.Task{Kind: stress.Write, Index: 0, Value: 7})
//	p.Shutdown()
type Pool struct {
	cfg     Config
	arr     *smartarray.SmartArray[int]
	size    int
	tasks   chan Task
	wg      sync.WaitGroup
	metrics Metrics

	workerCtx     context.Context
	cancelWorkers context.CancelFunc

	once   sync.Once
	closed atomic.Bool
}

// Sentinel errors returned by the pool.
var (
	ErrPoolClosed      = errors.New("stress pool is closed")
	ErrShutdownTimeout = errors.New("shutdown timeout elapsed; workers were force-cancelled")
	ErrTornRead        = errors.New("read observed an inconsistent element count")
)

// New starts cfg.Workers goroutines. arr must keep a fixed length while the
// pool runs; readers treat any other length as a torn read.
func New(cfg Config, arr *smartarray.SmartArray[int]) *Pool {
	cfg = cfg.withDefaults()
	workerCtx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		cfg:           cfg,
		arr:           arr,
		size:          arr.Len(),
		tasks:         make(chan Task, cfg.QueueSize),
		workerCtx:     workerCtx,
		cancelWorkers: cancel,
	}

	p.cfg.Logger.WithFields(logrus.Fields{
		"workers": cfg.Workers,
		"queue":   cfg.QueueSize,
		"array":   arr.Name(),
	}).Debug("stress pool starting")

	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
	return p
}

// Submit queues t, blocking while the queue is full unless ctx ends first.
func (p *Pool) Submit(ctx context.Context, t Task) error {
	if p.closed.Load() {
		atomic.AddInt64(&p.metrics.Dropped, 1)
		return ErrPoolClosed
	}

	select {
	case p.tasks <- t:
		atomic.AddInt64(&p.metrics.Submitted, 1)
		return nil
	case <-ctx.Done():
		atomic.AddInt64(&p.metrics.Dropped, 1)
		return fmt.Errorf("submit %s cancelled: %w", t.Kind, ctx.Err())
	}
}

// Shutdown stops accepting tasks, drains the queue and waits for workers.
// If that takes longer than ShutdownTimeout the remaining tasks are skipped
// and ErrShutdownTimeout is returned. Later calls are no-ops.
//
// Submit must not be called concurrently with Shutdown.
func (p *Pool) Shutdown() error {
	var err error
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.tasks)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			p.cfg.Logger.Debug("stress pool drained")
		case <-time.After(p.cfg.ShutdownTimeout):
			p.cfg.Logger.WithField("timeout", p.cfg.ShutdownTimeout).Warn("stress pool shutdown timed out")
			p.cancelWorkers()
			<-done
			err = ErrShutdownTimeout
		}
		p.cancelWorkers()
	})
	return err
}

// Metrics returns a snapshot of the counters. Fields are individually
// consistent only.
func (p *Pool) Metrics() Metrics {
	return Metrics{
		Submitted: atomic.LoadInt64(&p.metrics.Submitted),
		Reads:     atomic.LoadInt64(&p.metrics.Reads),
		Writes:    atomic.LoadInt64(&p.metrics.Writes),
		Failed:    atomic.LoadInt64(&p.metrics.Failed),
		Dropped:   atomic.LoadInt64(&p.metrics.Dropped),
		Torn:      atomic.LoadInt64(&p.metrics.Torn),
	}
}

func (p *Pool) runWorker(id int) {
	defer p.wg.Done()
	log := p.cfg.Logger.WithField("worker", id)

	for t := range p.tasks {
		if p.workerCtx.Err() != nil {
			atomic.AddInt64(&p.metrics.Dropped, 1)
			continue
		}
		if err := p.run(t); err != nil {
			atomic.AddInt64(&p.metrics.Failed, 1)
			log.WithError(err).WithField("task", t.Kind).Warn("task failed")
		}
	}
}

func (p *Pool) run(t Task) error {
	switch t.Kind {
	case Read:
		n := 0
		for range p.arr.Values() {
			n++
		}
		atomic.AddInt64(&p.metrics.Reads, 1)
		if n != p.size {
			atomic.AddInt64(&p.metrics.Torn, 1)
			return fmt.Errorf("read %d of %d elements: %w", n, p.size, ErrTornRead)
		}
		return nil
	case Write:
		if err := p.arr.Write(t.Index, t.Value); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		atomic.AddInt64(&p.metrics.Writes, 1)
		return nil
	}
	return fmt.Errorf("unknown task kind %v", t.Kind)
}
