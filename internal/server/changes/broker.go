// Package changes fans store mutations out to interested subscribers. A
// subscriber only learns that something changed for a user; it is expected
// to rebuild whatever it shows from the store.
package changes

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mindkeeper/internal/logging"
)

// Table names the store collection an event originated from.
type Table string

const (
	TableMoodLogs             Table = "mood_logs"
	TableQuestionnaireResults Table = "questionnaire_results"
	TableUserPreferences      Table = "user_preferences"
)

type Event struct {
	UserID string
	Table  Table
}

// Publisher is what write paths depend on.
type Publisher interface {
	Publish(ev Event)
}

// Subscription delivers events for a single user. C has capacity 1, so a
// burst of events collapses into one pending wakeup.
type Subscription struct {
	C <-chan Event

	ch     chan Event
	userID string
	broker *Broker
	once   sync.Once
}

// Close detaches the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.unsubscribe(s)
	})
}

type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	logger logging.Logger
}

func NewBroker(logger logging.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]map[*Subscription]struct{}),
		logger: logger.With("module", "changes"),
	}
}

func (b *Broker) Subscribe(userID string) *Subscription {
	ch := make(chan Event, 1)
	s := &Subscription{C: ch, ch: ch, userID: userID, broker: b}

	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[userID]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[userID] = set
	}
	set[s] = struct{}{}
	return s
}

func (b *Broker) unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set := b.subs[s.userID]
	delete(set, s)
	if len(set) == 0 {
		delete(b.subs, s.userID)
	}
}

// Publish never blocks. A subscriber that already has a pending event keeps
// it and the new one is dropped.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for s := range b.subs[ev.UserID] {
		select {
		case s.ch <- ev:
			delivered++
		default:
		}
	}
	b.logger.Debug(context.Background(), "change published", "user_id", ev.UserID, "table", string(ev.Table), "delivered", delivered)
}

// Subscribers returns the number of live subscriptions for userID.
func (b *Broker) Subscribers(userID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID])
}
