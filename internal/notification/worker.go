package notification

import (
	"context"
	"log"
)

// WorkerPool manages a pool of workers publishing appliance events.
type WorkerPool struct {
	size      int
	jobs      chan Event
	publisher Publisher
	onDrop    func(Event)
}

// NewWorkerPool creates a new worker pool with a queue of queueSize events.
func NewWorkerPool(size, queueSize int, publisher Publisher) *WorkerPool {
	return &WorkerPool{
		size:      size,
		jobs:      make(chan Event, queueSize),
		publisher: publisher,
	}
}

// OnDrop installs a callback invoked for every event TryDispatch discards.
func (wp *WorkerPool) OnDrop(fn func(Event)) {
	wp.onDrop = fn
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case ev := <-wp.jobs:
			if err := wp.publisher.Publish(ev); err != nil {
				log.Printf("Worker %d failed to publish %s event for %s: %v", id, ev.Kind, ev.ApplianceID, err)
			}
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// TryDispatch queues an event without blocking. It reports false and drops
// the event when the queue is full.
func (wp *WorkerPool) TryDispatch(ev Event) bool {
	select {
	case wp.jobs <- ev:
		return true
	default:
		log.Printf("Event queue full; dropping %s event for %s", ev.Kind, ev.ApplianceID)
		if wp.onDrop != nil {
			wp.onDrop(ev)
		}
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}
