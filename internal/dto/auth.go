package dto

import (
	"time"

	"github.com/SscSPs/scaffold_erp/internal/core/domain"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	UserID        string              `json:"userID"`
	Username      string              `json:"username"`
	Name          string              `json:"name"`
	IsActive      bool                `json:"isActive"`
	Roles         []string            `json:"roles"`
	Permissions   []domain.Permission `json:"permissions,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToUserResponse flattens the user's roles into names and a deduplicated permission list.
func ToUserResponse(u *domain.User) UserResponse {
	roles := make([]string, 0, len(u.Roles))
	seen := map[domain.Permission]struct{}{}
	var perms []domain.Permission
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
		for _, p := range r.Permissions {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				perms = append(perms, p)
			}
		}
	}
	return UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Name:          u.Name,
		IsActive:      u.IsActive,
		Roles:         roles,
		Permissions:   perms,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}

func ToUserResponses(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}

type CreateRoleRequest struct {
	Name        string              `json:"name" binding:"required,max=50"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions" binding:"required,min=1"`
}

type UpdateRolePermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions" binding:"required,min=1"`
}

type AssignRoleRequest struct {
	RoleID string `json:"roleID" binding:"required,uuid"`
}
