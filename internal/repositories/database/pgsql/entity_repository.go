package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/models"
	"github.com/SscSPs/fin_manager_app/internal/utils/mapping"
)

type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(base BaseRepository) portsrepo.EntityRepositoryFacade {
	return &PgxEntityRepository{BaseRepository: base}
}

var _ portsrepo.EntityRepositoryFacade = (*PgxEntityRepository)(nil)

const entityColumns = `entity_id, name, entity_type, address, owner_id, created_at, updated_at`

func scanEntity(row rowScanner) (models.Entity, error) {
	var m models.Entity
	err := row.Scan(&m.EntityID, &m.Name, &m.EntityType, &m.Address, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *PgxEntityRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelEntity(entity)
	query := `INSERT INTO entities (` + entityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	if _, err := r.Pool.Exec(ctx, query, m.EntityID, m.Name, m.EntityType, m.Address, m.OwnerID, m.CreatedAt, m.UpdatedAt); err != nil {
		return mapPgError(fmt.Errorf("failed to save entity: %w", err))
	}
	return nil
}

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanEntity(r.Pool.QueryRow(ctx, `SELECT `+entityColumns+` FROM entities WHERE entity_id = $1;`, entityID))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find entity %s: %w", entityID, err))
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

func (r *PgxEntityRepository) ListEntities(ctx context.Context, limit int, offset int) ([]domain.Entity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	limit, offset = normalizePage(limit, offset)

	rows, err := r.Pool.Query(ctx, `SELECT `+entityColumns+` FROM entities ORDER BY name, entity_id LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to query entities: %w", err))
	}
	defer rows.Close()

	var ms []models.Entity
	for rows.Next() {
		m, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}
	return mapping.ToDomainEntitySlice(ms), nil
}

func (r *PgxEntityRepository) UpdateEntity(ctx context.Context, entity domain.Entity) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelEntity(entity)
	tag, err := r.Pool.Exec(ctx,
		`UPDATE entities SET name = $1, entity_type = $2, address = $3, updated_at = $4 WHERE entity_id = $5;`,
		m.Name, m.EntityType, m.Address, m.UpdatedAt, m.EntityID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update entity: %w", err))
	}
	return notFoundIfNoRows(tag, "entity", entity.EntityID)
}

// DeleteEntity removes the entity and, through ON DELETE CASCADE, its units. An entity
// still referenced by transactions fails with a foreign key violation.
func (r *PgxEntityRepository) DeleteEntity(ctx context.Context, entityID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM entities WHERE entity_id = $1;`, entityID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to delete entity: %w", err))
	}
	return notFoundIfNoRows(tag, "entity", entityID)
}

type PgxUnitRepository struct {
	BaseRepository
}

func newPgxUnitRepository(base BaseRepository) portsrepo.UnitRepositoryFacade {
	return &PgxUnitRepository{BaseRepository: base}
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

const unitColumns = `unit_id, entity_id, name, description, created_at, updated_at`

func scanUnit(row rowScanner) (models.Unit, error) {
	var m models.Unit
	err := row.Scan(&m.UnitID, &m.EntityID, &m.Name, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *PgxUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m := mapping.ToModelUnit(unit)
	query := `INSERT INTO units (` + unitColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := r.Pool.Exec(ctx, query, m.UnitID, m.EntityID, m.Name, m.Description, m.CreatedAt, m.UpdatedAt); err != nil {
		return mapPgError(fmt.Errorf("failed to save unit: %w", err))
	}
	return nil
}

func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	m, err := scanUnit(r.Pool.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE unit_id = $1;`, unitID))
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to find unit %s: %w", unitID, err))
	}
	unit := mapping.ToDomainUnit(m)
	return &unit, nil
}

func (r *PgxUnitRepository) ListUnitsByEntity(ctx context.Context, entityID string) ([]domain.Unit, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.Pool.Query(ctx, `SELECT `+unitColumns+` FROM units WHERE entity_id = $1 ORDER BY name, unit_id;`, entityID)
	if err != nil {
		return nil, mapPgError(fmt.Errorf("failed to query units: %w", err))
	}
	defer rows.Close()

	var ms []models.Unit
	for rows.Next() {
		m, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}
	return mapping.ToDomainUnitSlice(ms), nil
}

func (r *PgxUnitRepository) UpdateUnit(ctx context.Context, unit domain.Unit) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `UPDATE units SET name = $1, description = $2, updated_at = $3 WHERE unit_id = $4;`,
		unit.Name, unit.Description, unit.UpdatedAt, unit.UnitID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to update unit: %w", err))
	}
	return notFoundIfNoRows(tag, "unit", unit.UnitID)
}

func (r *PgxUnitRepository) DeleteUnit(ctx context.Context, unitID string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `DELETE FROM units WHERE unit_id = $1;`, unitID)
	if err != nil {
		return mapPgError(fmt.Errorf("failed to delete unit: %w", err))
	}
	return notFoundIfNoRows(tag, "unit", unitID)
}
