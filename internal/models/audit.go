package models

import (
	"encoding/json"
	"net/netip"
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one change made through the tenant dashboard.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	TenantSlug string          `json:"tenant" db:"tenant_slug"`
	Actor      string          `json:"actor" db:"actor"`
	Action     string          `json:"action" db:"action"`
	Details    json.RawMessage `json:"details" db:"details"`
	IPAddress  *netip.Addr     `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
