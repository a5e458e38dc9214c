package models

// User is a row of the users table joined with its role name.
type User struct {
	UserID         int64   `db:"user_id"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Email          string  `db:"email"`
	PasswordHash   string  `db:"password_hash"`
	RoleID         int64   `db:"role_id"`
	RoleName       *string `db:"role_name"`
	DepartmentID   *int64  `db:"department_id"`
	IsActive       bool    `db:"is_active"`
	WhatsappNumber *string `db:"whatsapp_number"`
}
