package mapping

import (
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/models"
)

func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:    d.EntityID,
		Name:        d.Name,
		EntityType:  string(d.EntityType),
		Address:     d.Address,
		OwnerID:     d.OwnerID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:    m.EntityID,
		Name:        m.Name,
		EntityType:  domain.EntityType(m.EntityType),
		Address:     m.Address,
		OwnerID:     m.OwnerID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainEntitySlice(ms []models.Entity) []domain.Entity {
	ds := make([]domain.Entity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntity(m)
	}
	return ds
}

func ToModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:      d.UnitID,
		EntityID:    d.EntityID,
		Name:        d.Name,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:      m.UnitID,
		EntityID:    m.EntityID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainUnitSlice(ms []models.Unit) []domain.Unit {
	ds := make([]domain.Unit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUnit(m)
	}
	return ds
}
