// Package events carries business events (invoices, payments, purchases, payroll)
// from the services that produce them to the automatic journal posting.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names a business event.
type Type string

const (
	ContractInvoiced  Type = "contract.invoiced"
	PaymentReceived   Type = "payment.received"
	PurchaseCompleted Type = "purchase.completed"
	SalaryPaid        Type = "salary.paid"
	SaleDelivered     Type = "sale.delivered"
)

// Attribute keys used by posting rules to pick accounts.
const (
	AttrMethod       = "method"
	AttrContractType = "contract_type"
)

var ErrInvalidEnvelope = errors.New("invalid event envelope")

// Envelope is the wire and in-process representation of a business event.
// SourceID identifies the business record (payment, purchase, ...) and is the idempotency key
// together with the event type.
type Envelope struct {
	EventID     string            `json:"eventID"`
	Type        Type              `json:"type"`
	OccurredAt  time.Time         `json:"occurredAt"`
	ActorID     string            `json:"actorID"`
	SourceID    string            `json:"sourceID"`
	Amount      decimal.Decimal   `json:"amount"`
	Method      string            `json:"method,omitempty"`
	Reference   string            `json:"reference"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// New builds an envelope with a fresh event ID.
func New(t Type, sourceID string, amount decimal.Decimal, actorID string, occurredAt time.Time) Envelope {
	return Envelope{
		EventID:    uuid.NewString(),
		Type:       t,
		OccurredAt: occurredAt,
		ActorID:    actorID,
		SourceID:   sourceID,
		Amount:     amount,
		Attributes: map[string]string{},
	}
}

// WithAttr sets an attribute and returns the envelope for chaining.
func (e Envelope) WithAttr(key, value string) Envelope {
	attrs := make(map[string]string, len(e.Attributes)+1)
	for k, v := range e.Attributes {
		attrs[k] = v
	}
	attrs[key] = value
	e.Attributes = attrs
	return e
}

// Attr returns an attribute value. The "method" key falls back to the Method field.
func (e Envelope) Attr(key string) string {
	if v, ok := e.Attributes[key]; ok {
		return v
	}
	if key == AttrMethod {
		return e.Method
	}
	return ""
}

// Validate checks the fields every consumer relies on.
func (e Envelope) Validate() error {
	switch {
	case e.Type == "":
		return fmt.Errorf("%w: type is required", ErrInvalidEnvelope)
	case e.SourceID == "":
		return fmt.Errorf("%w: sourceID is required", ErrInvalidEnvelope)
	case e.ActorID == "":
		return fmt.Errorf("%w: actorID is required", ErrInvalidEnvelope)
	case !e.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEnvelope)
	case e.OccurredAt.IsZero():
		return fmt.Errorf("%w: occurredAt is required", ErrInvalidEnvelope)
	}
	return nil
}

// Publisher hands an event to whatever dispatches it.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// HandlerFunc consumes one event.
type HandlerFunc func(ctx context.Context, env Envelope) error
