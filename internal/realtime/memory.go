package realtime

import (
	"context"
	"sync"

	"localizei-backend/internal/logger"
)

// subscriptionBuffer bounds how many undelivered events a slow subscriber
// can hold before new ones are dropped.
const subscriptionBuffer = 8

// MemoryBroker is an in-process Broker. It backs single-process deployments
// and tests, and serves as the local fan-out stage of the Postgres broker.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[*memorySubscription]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[*memorySubscription]struct{})}
}

func (b *MemoryBroker) Subscribe(ctx context.Context, transactionID string) (Subscription, error) {
	sub := &memorySubscription{
		broker:        b,
		transactionID: transactionID,
		ch:            make(chan StatusEvent, subscriptionBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[transactionID] == nil {
		b.subs[transactionID] = make(map[*memorySubscription]struct{})
	}
	b.subs[transactionID][sub] = struct{}{}
	return sub, nil
}

func (b *MemoryBroker) Publish(ctx context.Context, event StatusEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs[event.TransactionID] {
		select {
		case sub.ch <- event:
		default:
			logger.Warn("Dropping status event for slow subscriber", "transaction_id", event.TransactionID)
		}
	}
	return nil
}

func (b *MemoryBroker) remove(sub *memorySubscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.subs[sub.transactionID]
	if set == nil {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.transactionID)
	}
}

type memorySubscription struct {
	broker        *MemoryBroker
	transactionID string
	ch            chan StatusEvent
	closeOnce     sync.Once
}

func (s *memorySubscription) Updates() <-chan StatusEvent {
	return s.ch
}

func (s *memorySubscription) Close() {
	s.closeOnce.Do(func() {
		s.broker.remove(s)
		close(s.ch)
	})
}
