package domain

import "strings"

// Role is a coarse permission tier.
type Role int64

const (
	RoleAdministrator Role = 1
	RoleAssistant     Role = 2
	RoleFrontDesk     Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "Administrator"
	case RoleAssistant:
		return "Assistant"
	case RoleFrontDesk:
		return "FrontDesk"
	}
	return "Unknown"
}

// User represents a user of the application in the domain.
type User struct {
	UserID         int64   `json:"userID"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	PasswordHash   string  `json:"-"`
	RoleID         Role    `json:"roleID"`
	RoleName       string  `json:"roleName,omitempty"`
	DepartmentID   *int64  `json:"departmentID,omitempty"`
	IsActive       bool    `json:"isActive"`
	WhatsappNumber *string `json:"whatsappNumber,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Identity is the authenticated caller as supplied by the transport layer.
type Identity struct {
	UserID int64
	RoleID Role
}

// IsAdministrator reports whether the caller holds the Administrator role.
func (i Identity) IsAdministrator() bool {
	return i.RoleID == RoleAdministrator
}

// UserPatch is a sparse set of columns to update on one user.
type UserPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	PasswordHash   *string
	RoleID         *Role
	DepartmentID   *int64
	WhatsappNumber *string
	IsActive       *bool
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.PasswordHash == nil &&
		p.RoleID == nil && p.DepartmentID == nil && p.WhatsappNumber == nil && p.IsActive == nil
}
