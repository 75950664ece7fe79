package models

// AuditLog records API mutations.
type AuditLog struct {
	Base
	Action       string `gorm:"size:64;not null" json:"action"`
	ResourceType string `gorm:"size:32;not null;index" json:"resource_type"`
	ResourceID   string `gorm:"size:100" json:"resource_id"`
	IPAddress    string `gorm:"size:64" json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
