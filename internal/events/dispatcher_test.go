package events

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestDispatcher() *Dispatcher {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewDispatcher(logger)
}

func TestDispatch_RunsHandlersInRegistrationOrder(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	d.Register(EntityProduct, OpSaved, func(ctx context.Context, ev Event) bool {
		order = append(order, "first")
		return true
	})
	d.Register(EntityProduct, OpSaved, func(ctx context.Context, ev Event) bool {
		order = append(order, "second")
		return true
	})

	d.Dispatch(context.Background(), Event{Entity: EntityProduct, Op: OpSaved, Key: "PRD1"})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatch_OnlyMatchingHandlersRun(t *testing.T) {
	d := newTestDispatcher()

	var calls []string
	d.Register(EntityProduct, OpSaved, func(ctx context.Context, ev Event) bool {
		calls = append(calls, "product-saved")
		return true
	})
	d.Register(EntityProduct, OpDeleted, func(ctx context.Context, ev Event) bool {
		calls = append(calls, "product-deleted")
		return true
	})
	d.Register(EntityOrder, OpSaved, func(ctx context.Context, ev Event) bool {
		calls = append(calls, "order-saved")
		return true
	})

	d.Dispatch(context.Background(), Event{Entity: EntityProduct, Op: OpDeleted, Key: "PRD1"})

	assert.Equal(t, []string{"product-deleted"}, calls)
}

func TestDispatch_NoHandlersIsNoop(t *testing.T) {
	d := newTestDispatcher()

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), Event{Entity: EntityWarehouse, Op: OpSaved, Key: "BOG01"})
	})
}

func TestDispatch_RecoversHandlerPanic(t *testing.T) {
	d := newTestDispatcher()

	ran := false
	d.Register(EntityOrder, OpSaved, func(ctx context.Context, ev Event) bool {
		panic("boom")
	})
	d.Register(EntityOrder, OpSaved, func(ctx context.Context, ev Event) bool {
		ran = true
		return true
	})

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), Event{Entity: EntityOrder, Op: OpSaved, Key: "1"})
	})
	assert.True(t, ran, "handlers after a panicking one should still run")
}

func TestDispatch_EventPassedThrough(t *testing.T) {
	d := newTestDispatcher()

	var got Event
	d.Register(EntitySlot, OpSaved, func(ctx context.Context, ev Event) bool {
		got = ev
		return true
	})

	want := Event{Entity: EntitySlot, Op: OpSaved, Key: "42"}
	d.Dispatch(context.Background(), want)

	assert.Equal(t, want, got)
}
