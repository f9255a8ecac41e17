package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/events"
)

// The builders below are shared by the services that emit events and by the replay path,
// so a replayed event is identical to the original one apart from its ID.

func contractInvoicedEvent(c domain.Contract, actorID string) events.Envelope {
	env := events.New(events.ContractInvoiced, c.ContractID, c.TotalAmount, actorID, eventTime(c.InvoicedAt, c.LastUpdatedAt))
	env.Reference = derefOr(c.InvoiceNumber, c.ContractNumber)
	env.Description = fmt.Sprintf("%s contract %s", c.ContractType, c.ContractNumber)
	return env.WithAttr(events.AttrContractType, string(c.ContractType))
}

func paymentReceivedEvent(p domain.Payment, c domain.Contract) events.Envelope {
	env := events.New(events.PaymentReceived, p.PaymentID, p.Amount, p.CreatedBy, p.PaymentDate)
	env.Method = string(p.Method)
	env.Reference = p.Reference
	if env.Reference == "" {
		env.Reference = derefOr(c.InvoiceNumber, c.ContractNumber)
	}
	env.Description = fmt.Sprintf("Payment for contract %s", c.ContractNumber)
	return env.WithAttr(events.AttrContractType, string(c.ContractType))
}

// saleDeliveredEvent carries the cost of the units that left stock with a completed sale.
func saleDeliveredEvent(c domain.Contract, cost decimal.Decimal, actorID string) events.Envelope {
	env := events.New(events.SaleDelivered, c.ContractID, cost, actorID, eventTime(c.CompletedAt, c.LastUpdatedAt))
	env.Reference = c.ContractNumber
	env.Description = fmt.Sprintf("Units delivered on sale %s", c.ContractNumber)
	return env
}

func purchaseCompletedEvent(p domain.Purchase, actorID string) events.Envelope {
	env := events.New(events.PurchaseCompleted, p.PurchaseID, p.TotalAmount, actorID, eventTime(p.CompletedAt, p.LastUpdatedAt))
	env.Method = string(p.PaymentMethod)
	env.Reference = p.PurchaseNumber
	env.Description = fmt.Sprintf("Purchase %s", p.PurchaseNumber)
	return env
}

func salaryPaidEvent(s domain.Salary, e domain.Employee, actorID string) events.Envelope {
	env := events.New(events.SalaryPaid, s.SalaryID, s.NetAmount, actorID, eventTime(s.PaidAt, s.LastUpdatedAt))
	if s.PaymentMethod != nil {
		env.Method = string(*s.PaymentMethod)
	}
	env.Reference = fmt.Sprintf("%s/%s", e.EmployeeCode, s.Period)
	env.Description = fmt.Sprintf("Salary %s for %s", s.Period, e.Name)
	return env.WithAttr("employee_code", e.EmployeeCode)
}

// saleCost values the items of a sale at the scaffolds' current unit cost.
func saleCost(items []domain.ContractItem, scaffolds map[string]domain.Scaffold) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if sc, ok := scaffolds[it.ScaffoldID]; ok {
			total = total.Add(sc.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return total
}

func eventTime(at *time.Time, fallback time.Time) time.Time {
	if at != nil && !at.IsZero() {
		return *at
	}
	return fallback
}

func derefOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
