package domain

import "time"

// AuditFields holds standard timestamps for persisted rows.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
