package domain

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	Roles        []Role `json:"roles,omitempty"`
	AuditFields
}
