package domain_test

import (
	"testing"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPermission_Grants(t *testing.T) {
	tests := []struct {
		name     string
		held     domain.Permission
		required domain.Permission
		want     bool
	}{
		{"wildcard grants all", domain.PermissionAll, domain.PermAccountingPost, true},
		{"exact match", domain.PermHRRead, domain.PermHRRead, true},
		{"area wildcard", "hr:*", domain.PermHRApprove, true},
		{"area wildcard other area", "hr:*", domain.PermPayrollWrite, false},
		{"different action", domain.PermCRMRead, domain.PermCRMWrite, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.held.Grants(tt.required))
		})
	}
}

func TestPermission_IsValid(t *testing.T) {
	assert.True(t, domain.Permission("*").IsValid())
	assert.True(t, domain.Permission("accounting:*").IsValid())
	assert.True(t, domain.PermReportsRead.IsValid())
	assert.False(t, domain.Permission("warehouse:*").IsValid())
	assert.False(t, domain.Permission("crm:delete").IsValid())
}

func TestRole_HasPermission(t *testing.T) {
	role := domain.Role{Name: "ACCOUNTANT", Permissions: []domain.Permission{"accounting:*", domain.PermReportsRead}}

	assert.True(t, role.HasPermission(domain.PermAccountingPost))
	assert.True(t, role.HasPermission(domain.PermReportsRead))
	assert.False(t, role.HasPermission(domain.PermHRRead))
}
