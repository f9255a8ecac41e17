package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/SscSPs/scaffold_erp/internal/platform/ledgerconfig"
)

// chartAccounts turns the chart into accounts to insert, parents before children.
// Codes already present keep their stored ID so children link to them.
func chartAccounts(chart *ledgerconfig.Chart, existing map[string]domain.Account, actorID string, now time.Time) []domain.Account {
	ids := make(map[string]string, len(chart.Accounts))
	for code, acc := range existing {
		ids[code] = acc.AccountID
	}
	for _, a := range chart.Accounts {
		if _, ok := ids[a.Code]; !ok {
			ids[a.Code] = uuid.NewString()
		}
	}

	byCode := make(map[string]ledgerconfig.ChartAccount, len(chart.Accounts))
	for _, a := range chart.Accounts {
		byCode[a.Code] = a
	}

	var out []domain.Account
	placed := make(map[string]bool, len(chart.Accounts))
	var place func(a ledgerconfig.ChartAccount)
	place = func(a ledgerconfig.ChartAccount) {
		if placed[a.Code] {
			return
		}
		placed[a.Code] = true
		if parent, ok := byCode[a.Parent]; ok {
			place(parent)
		}
		if _, ok := existing[a.Code]; ok {
			return
		}
		acc := domain.Account{
			AccountID:   ids[a.Code],
			Code:        a.Code,
			Name:        a.Name,
			AccountType: a.Type,
			Description: a.Description,
			IsActive:    true,
			IsSystem:    true,
			Balance:     decimal.Zero,
			AuditFields: domain.NewAuditFields(actorID, now),
		}
		if a.Parent != "" {
			parentID := ids[a.Parent]
			acc.ParentAccountID = &parentID
		}
		out = append(out, acc)
	}
	for _, a := range chart.Accounts {
		place(a)
	}
	return out
}
