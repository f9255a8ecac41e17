package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnvelope(t Type) Envelope {
	return New(t, "source-1", decimal.NewFromInt(250), "user-1", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
}

func TestBus_PublishDispatchesByType(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(PaymentReceived, func(_ context.Context, env Envelope) error {
		got = append(got, "payment:"+env.SourceID)
		return nil
	})
	bus.Subscribe(SalaryPaid, func(_ context.Context, env Envelope) error {
		got = append(got, "salary:"+env.SourceID)
		return nil
	})
	bus.SubscribeAll(func(_ context.Context, env Envelope) error {
		got = append(got, "all:"+string(env.Type))
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), validEnvelope(PaymentReceived)))

	assert.Equal(t, []string{"payment:source-1", "all:payment.received"}, got)
}

func TestBus_PublishJoinsHandlerErrors(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	calls := 0

	bus.Subscribe(PurchaseCompleted, func(context.Context, Envelope) error {
		calls++
		return boom
	})
	bus.SubscribeAll(func(context.Context, Envelope) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), validEnvelope(PurchaseCompleted))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "every handler runs even after a failure")
}

func TestBus_PublishRejectsInvalidEnvelope(t *testing.T) {
	bus := NewBus()
	called := false
	bus.SubscribeAll(func(context.Context, Envelope) error {
		called = true
		return nil
	})

	env := validEnvelope(PaymentReceived)
	env.Amount = decimal.Zero

	err := bus.Publish(context.Background(), env)

	assert.ErrorIs(t, err, ErrInvalidEnvelope)
	assert.False(t, called)
}

func TestEnvelope_WithAttrDoesNotShareMaps(t *testing.T) {
	base := validEnvelope(PaymentReceived)
	rental := base.WithAttr(AttrContractType, "RENTAL")
	sale := base.WithAttr(AttrContractType, "SALE")

	assert.Equal(t, "", base.Attr(AttrContractType))
	assert.Equal(t, "RENTAL", rental.Attr(AttrContractType))
	assert.Equal(t, "SALE", sale.Attr(AttrContractType))
}

func TestEnvelope_AttrFallsBackToMethod(t *testing.T) {
	env := validEnvelope(PaymentReceived)
	env.Method = "CASH"

	assert.Equal(t, "CASH", env.Attr(AttrMethod))
	assert.Equal(t, "BANK_TRANSFER", env.WithAttr(AttrMethod, "BANK_TRANSFER").Attr(AttrMethod))
}
