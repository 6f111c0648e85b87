package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/estate-listings/internal/logger"
)

const (
	ActionPropertyCreated      = "property_created"
	ActionCreditRefilled       = "credit_refilled"
	ActionUserRegistered       = "user_registered"
	ActionPaymentIntentCreated = "payment_intent_created"
)

type Event struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink is what workflows depend on; the dispatcher is the production one.
type Sink interface {
	Dispatch(ev Event)
}

type saver interface {
	Save(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	store saver
	log   *logger.Logger
	queue chan Event

	done      chan struct{}
	closeOnce sync.Once
}

func NewDispatcher(store saver, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.store.Save(context.Background(), ev); err != nil {
			d.log.Error().Err(err).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
	}
}

// Dispatch never blocks: when the queue is full the event is dropped so a
// slow audit table cannot hold up a request.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Dispatch(Event) {}
