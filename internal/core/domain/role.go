package domain

import "strings"

// Permission is an "<area>:<action>" grant.
type Permission string

const PermissionAll Permission = "*"

const (
	PermCRMRead         Permission = "crm:read"
	PermCRMWrite        Permission = "crm:write"
	PermInventoryRead   Permission = "inventory:read"
	PermInventoryWrite  Permission = "inventory:write"
	PermContractsRead   Permission = "contracts:read"
	PermContractsWrite  Permission = "contracts:write"
	PermContractsSign   Permission = "contracts:sign"
	PermPurchasesRead   Permission = "purchases:read"
	PermPurchasesWrite  Permission = "purchases:write"
	PermHRRead          Permission = "hr:read"
	PermHRWrite         Permission = "hr:write"
	PermHRApprove       Permission = "hr:approve"
	PermPayrollWrite    Permission = "payroll:write"
	PermAccountingRead  Permission = "accounting:read"
	PermAccountingWrite Permission = "accounting:write"
	PermAccountingPost  Permission = "accounting:post"
	PermReportsRead     Permission = "reports:read"
	PermAdminUsers      Permission = "admin:users"
	PermAdminRoles      Permission = "admin:roles"
)

// KnownPermissions lists every grantable permission except the wildcard.
var KnownPermissions = []Permission{
	PermCRMRead, PermCRMWrite,
	PermInventoryRead, PermInventoryWrite,
	PermContractsRead, PermContractsWrite, PermContractsSign,
	PermPurchasesRead, PermPurchasesWrite,
	PermHRRead, PermHRWrite, PermHRApprove, PermPayrollWrite,
	PermAccountingRead, PermAccountingWrite, PermAccountingPost,
	PermReportsRead,
	PermAdminUsers, PermAdminRoles,
}

// IsValid accepts known permissions, "*" and area wildcards such as "hr:*".
func (p Permission) IsValid() bool {
	if p == PermissionAll {
		return true
	}
	if area, ok := strings.CutSuffix(string(p), ":*"); ok {
		for _, k := range KnownPermissions {
			if strings.HasPrefix(string(k), area+":") {
				return true
			}
		}
		return false
	}
	for _, k := range KnownPermissions {
		if k == p {
			return true
		}
	}
	return false
}

// Grants reports whether holding p allows required.
func (p Permission) Grants(required Permission) bool {
	if p == PermissionAll || p == required {
		return true
	}
	if area, ok := strings.CutSuffix(string(p), ":*"); ok {
		return strings.HasPrefix(string(required), area+":")
	}
	return false
}

const RoleAdmin = "ADMIN"

// Role is a named set of permissions assigned to users.
type Role struct {
	RoleID      string       `json:"roleID"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	AuditFields
}

// HasPermission reports whether any permission of the role grants required.
func (r Role) HasPermission(required Permission) bool {
	for _, p := range r.Permissions {
		if p.Grants(required) {
			return true
		}
	}
	return false
}
