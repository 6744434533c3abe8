package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Entity identifies the aggregate an event refers to.
type Entity string

const (
	EntityProduct   Entity = "product"
	EntityWarehouse Entity = "warehouse"
	EntitySlot      Entity = "slot"
	EntityOrder     Entity = "order"
)

// Op is the kind of change that happened to the entity.
type Op string

const (
	OpSaved   Op = "saved"
	OpDeleted Op = "deleted"
)

// Event describes a committed relational change. Key is the entity's
// business identifier (product/warehouse code, slot/order id as string).
type Event struct {
	Entity Entity
	Op     Op
	Key    string
}

// Handler reacts to an event. Handlers report success for logging only;
// their outcome never reaches the caller of Dispatch.
type Handler func(ctx context.Context, ev Event) bool

// Dispatcher fans committed changes out to registered handlers,
// synchronously and in registration order. A failing or panicking handler
// is logged and skipped; Dispatch itself never fails, so replication
// problems cannot undo or block the relational write that triggered them.
type Dispatcher struct {
	handlers map[Entity]map[Op][]Handler
	logger   *logrus.Entry
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Entity]map[Op][]Handler),
		logger:   logger.WithField("component", "events"),
	}
}

// Register adds a handler for the entity/op pair. Not safe for concurrent
// use with Dispatch; registration happens once at startup.
func (d *Dispatcher) Register(entity Entity, op Op, handler Handler) {
	if d.handlers[entity] == nil {
		d.handlers[entity] = make(map[Op][]Handler)
	}
	d.handlers[entity][op] = append(d.handlers[entity][op], handler)
}

// Dispatch runs every handler registered for the event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	for _, handler := range d.handlers[ev.Entity][ev.Op] {
		d.run(ctx, ev, handler)
	}
}

func (d *Dispatcher) run(ctx context.Context, ev Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithFields(logrus.Fields{
				"entity": ev.Entity,
				"op":     ev.Op,
				"key":    ev.Key,
				"panic":  r,
			}).Error("Event handler panicked")
		}
	}()

	if ok := handler(ctx, ev); !ok {
		d.logger.WithFields(logrus.Fields{
			"entity": ev.Entity,
			"op":     ev.Op,
			"key":    ev.Key,
		}).Warn("Event handler reported failure")
	}
}
