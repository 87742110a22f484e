package models

type Mode string

const (
	ModeLiveTenant   Mode = "live_tenant"
	ModeTokenPreview Mode = "token_preview"
	ModeParamPreview Mode = "param_preview"
	ModePlatform     Mode = "platform"
)

func (m Mode) IsPreview() bool {
	return m == ModeTokenPreview || m == ModeParamPreview
}

func (m Mode) Valid() bool {
	switch m {
	case ModeLiveTenant, ModeTokenPreview, ModeParamPreview, ModePlatform:
		return true
	}
	return false
}

// ResolutionContext travels with a SiteConfig and tells downstream
// collaborators how it was produced. Form handlers must not perform real
// submissions when IsPreview is set.
type ResolutionContext struct {
	Mode       Mode   `json:"mode"`
	Identifier string `json:"identifier,omitempty"`
	IsPreview  bool   `json:"is_preview"`
	Admin      bool   `json:"admin,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
	Industry   string `json:"industry,omitempty"`
}

type PreviewPayload struct {
	Subject      string `json:"subject,omitempty"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	Industry     string `json:"industry"`
	TenantID     string `json:"tenant_id,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}
