package notifier

import (
	"context"

	"go.uber.org/zap"
)

type job struct {
	ctx       context.Context
	eventName string
	payload   map[string]any
}

// StartDispatcher makes FireAndForget asynchronous: notifications go into a
// bounded queue served by workers goroutines, and are dropped when it is full.
func (n *Notifier) StartDispatcher(workers, queueSize int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.jobs != nil || n.stopped {
		return
	}
	n.jobs = make(chan job, queueSize)

	for i := 0; i < workers; i++ {
		n.wg.Add(1)
		go n.worker(n.jobs)
	}

	n.logger.Info("Webhook dispatcher started",
		zap.Int("workers", workers),
		zap.Int("queue_size", queueSize))
}

// StopDispatcher stops accepting notifications and waits for queued ones to be sent.
// Later FireAndForget calls deliver synchronously.
func (n *Notifier) StopDispatcher() {
	n.mu.Lock()
	if n.jobs == nil || n.stopped {
		n.mu.Unlock()
		return
	}
	n.stopped = true
	close(n.jobs)
	n.jobs = nil
	n.mu.Unlock()

	n.wg.Wait()
	n.logger.Info("Webhook dispatcher stopped")
}

func (n *Notifier) worker(jobs <-chan job) {
	defer n.wg.Done()

	for j := range jobs {
		n.send(j.ctx, j.eventName, j.payload)
	}
}
