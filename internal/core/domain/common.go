package domain

import "time"

// AuditFields holds the standard creation/update metadata embedded in every
// persisted entity.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
