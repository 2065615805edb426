package models

type AuditLog struct {
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"`
	Actor        string `json:"actor"`
}
