package domain

// EntityType classifies an Entity.
type EntityType string

const (
	EntityBusiness EntityType = "BUSINESS"
	EntityProperty EntityType = "PROPERTY"
)

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	return t == EntityBusiness || t == EntityProperty
}

// Entity is a business or property that owns units and transactions.
type Entity struct {
	EntityID   string     `json:"entityID"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"type"`
	Address    string     `json:"address"`
	OwnerID    string     `json:"ownerID"` // FK -> users.user_id
	AuditFields
}

// Unit is a sub-division of exactly one Entity. Units are removed with their entity.
type Unit struct {
	UnitID      string `json:"unitID"`
	EntityID    string `json:"entityID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}
