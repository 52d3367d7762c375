package service

import (
	"sync"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/tx"
)

// TransactionEvent is broadcast for every processed submission.
type TransactionEvent struct {
	Hash    string       `json:"tx_hash"`
	TxType  string       `json:"tx_type"`
	Account string       `json:"account"`
	Result  string       `json:"engine_result"`
	Applied bool         `json:"applied"`
	Meta    *tx.Metadata `json:"meta,omitempty"`
}

// EventPublisher fans transaction events out to subscribers. Slow
// subscribers drop events rather than stall submission.
type EventPublisher struct {
	mu          sync.Mutex
	subscribers map[uint64]chan TransactionEvent
	nextID      uint64
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		subscribers: make(map[uint64]chan TransactionEvent),
	}
}

// Subscribe registers a buffered event channel and returns it with an
// unsubscribe function.
func (p *EventPublisher) Subscribe() (<-chan TransactionEvent, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	ch := make(chan TransactionEvent, 64)
	p.subscribers[id] = ch
	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if sub, ok := p.subscribers[id]; ok {
			delete(p.subscribers, id)
			close(sub)
		}
	}
}

// PublishTransaction delivers an event to every subscriber that has
// buffer room.
func (p *EventPublisher) PublishTransaction(event TransactionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, sub := range p.subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (p *EventPublisher) SubscriberCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subscribers)
}
