package models

// User is a row of the users table. Roles are loaded separately through user_roles.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
