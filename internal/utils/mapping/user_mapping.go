package mapping

import (
	"database/sql"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		Name:         d.Name,
		Role:         string(d.Role),
		Status:       string(d.Status),
		Phone:        d.Phone,
		PhoneCode:    d.PhoneCode,
		Department:   d.Department,
		PasswordHash: sql.NullString{String: d.PasswordHash, Valid: d.PasswordHash != ""},
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         domain.UserRole(m.Role),
		Status:       domain.UserStatus(m.Status),
		Phone:        m.Phone,
		PhoneCode:    m.PhoneCode,
		Department:   m.Department,
		PasswordHash: m.PasswordHash.String,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
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
