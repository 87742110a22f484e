package models

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantPending   TenantStatus = "pending"
	TenantApproved  TenantStatus = "approved"
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

// Live reports whether a tenant in this status may render its site.
func (s TenantStatus) Live() bool {
	return s == TenantApproved || s == TenantActive
}

type Tenant struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Slug         string           `json:"slug" db:"slug"`
	Industry     string           `json:"industry" db:"industry"`
	BusinessName string           `json:"business_name" db:"business_name"`
	Phone        string           `json:"phone" db:"phone"`
	Email        string           `json:"email" db:"email"`
	ServiceAreas []ServiceArea    `json:"service_areas" db:"service_areas"`
	Content      ContentOverrides `json:"content" db:"content"`
	Status       TenantStatus     `json:"status" db:"status"`
	CustomDomain string           `json:"custom_domain,omitempty" db:"custom_domain"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// ContentOverrides holds the tenant-editable parts of a site. A blank leaf
// means "inherit the industry default".
type ContentOverrides struct {
	Brand     string    `json:"brand,omitempty"`
	Logo      Logo      `json:"logo"`
	Hero      Hero      `json:"hero"`
	SEO       SEO       `json:"seo"`
	Services  []Service `json:"services,omitempty"`
	FAQs      []FAQ     `json:"faqs,omitempty"`
	ThemeName string    `json:"theme_name,omitempty"`
}

type ServiceArea struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Primary bool   `json:"primary,omitempty"`
}
