package domain

import "github.com/shopspring/decimal"

type ScaffoldCondition string

const (
	ConditionNew         ScaffoldCondition = "NEW"
	ConditionGood        ScaffoldCondition = "GOOD"
	ConditionDamaged     ScaffoldCondition = "DAMAGED"
	ConditionUnderRepair ScaffoldCondition = "UNDER_REPAIR"
)

func (c ScaffoldCondition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionDamaged, ConditionUnderRepair:
		return true
	}
	return false
}

// Scaffold is a rentable equipment item tracked by quantity.
// AvailableQuantity never exceeds TotalQuantity and never drops below zero.
type Scaffold struct {
	ScaffoldID        string            `json:"scaffoldID"`
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	Category          string            `json:"category"`
	Unit              string            `json:"unit"` // e.g. "pcs", "set"
	TotalQuantity     int               `json:"totalQuantity"`
	AvailableQuantity int               `json:"availableQuantity"`
	Condition         ScaffoldCondition `json:"condition"`
	DailyRentalPrice  decimal.Decimal   `json:"dailyRentalPrice"`
	SalePrice         decimal.Decimal   `json:"salePrice"`
	UnitCost          decimal.Decimal   `json:"unitCost"`
	IsActive          bool              `json:"isActive"`
	AuditFields
}

// RentedOut is the number of units currently out with customers.
func (s Scaffold) RentedOut() int {
	return s.TotalQuantity - s.AvailableQuantity
}

type StockMovementReason string

const (
	MovementPurchase     StockMovementReason = "PURCHASE"
	MovementRentalOut    StockMovementReason = "RENTAL_OUT"
	MovementRentalReturn StockMovementReason = "RENTAL_RETURN"
	MovementSale         StockMovementReason = "SALE"
	MovementAdjustment   StockMovementReason = "ADJUSTMENT"
)

// StockMovement records one quantity change of a scaffold. Quantity is signed: it is the
// change in total units when the total moved, otherwise the change in available units
// (reservations and returns).
type StockMovement struct {
	MovementID  string              `json:"movementID"`
	ScaffoldID  string              `json:"scaffoldID"`
	Quantity    int                 `json:"quantity"`
	Reason      StockMovementReason `json:"reason"`
	ReferenceID *string             `json:"referenceID,omitempty"`
	Notes       string              `json:"notes"`
	AuditFields
}

// StockChange is an in-transaction request to move stock for one scaffold.
type StockChange struct {
	ScaffoldID     string
	TotalDelta     int
	AvailableDelta int
	Reason         StockMovementReason
	ReferenceID    string
	Notes          string
	// UnitCost, when set, replaces the scaffold's unit cost (purchases).
	UnitCost *decimal.Decimal
}

// MovementQuantity is the signed quantity recorded on the movement row.
func (c StockChange) MovementQuantity() int {
	if c.TotalDelta != 0 {
		return c.TotalDelta
	}
	return c.AvailableDelta
}
