package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "DRAFT"
	PurchaseCompleted PurchaseStatus = "COMPLETED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

// Purchase is an equipment order placed with a supplier.
type Purchase struct {
	PurchaseID     string          `json:"purchaseID"`
	PurchaseNumber string          `json:"purchaseNumber"`
	SupplierID     string          `json:"supplierID"`
	Status         PurchaseStatus  `json:"status"`
	OrderDate      time.Time       `json:"orderDate"`
	Items          []PurchaseItem  `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
	Notes          string          `json:"notes"`
	AuditFields
}

type PurchaseItem struct {
	ItemID     string          `json:"itemID"`
	PurchaseID string          `json:"purchaseID"`
	ScaffoldID string          `json:"scaffoldID"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}
