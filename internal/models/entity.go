package models

// Entity is a row of the entities table.
type Entity struct {
	EntityID   string `db:"entity_id"`
	Name       string `db:"name"`
	EntityType string `db:"entity_type"`
	Address    string `db:"address"`
	OwnerID    string `db:"owner_id"`
	AuditFields
}

// Unit is a row of the units table. Units cascade with their entity.
type Unit struct {
	UnitID      string `db:"unit_id"`
	EntityID    string `db:"entity_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}
