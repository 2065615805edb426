package models

// Facility is a pure grouping entity for equipment and users in
// multi-tenant deployments.
type Facility struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
	Phone   string `json:"phone" db:"phone"`
}

func (f *Facility) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   f.Name,
		ResourceType: "facility",
	}
}
