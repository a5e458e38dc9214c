package mapping

import (
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		RoleID:         int64(d.RoleID),
		RoleName:       nilIfEmpty(d.RoleName),
		DepartmentID:   d.DepartmentID,
		IsActive:       d.IsActive,
		WhatsappNumber: d.WhatsappNumber,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		RoleID:         domain.Role(m.RoleID),
		RoleName:       deref(m.RoleName),
		DepartmentID:   m.DepartmentID,
		IsActive:       m.IsActive,
		WhatsappNumber: m.WhatsappNumber,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
