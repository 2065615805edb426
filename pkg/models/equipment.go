package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Equipment is the external view of one tracked item, using the field
// names the frontend speaks (current/user instead of the column names).
type Equipment struct {
	ItemID    string            `json:"id"`
	Name      string            `json:"name"`
	Location  string            `json:"location"`
	Category  string            `json:"category"`
	Current   string            `json:"current"`
	User      string            `json:"user"`
	Status    string            `json:"status"`
	Note      string            `json:"note"`
	Image     string            `json:"image"`
	History   []json.RawMessage `json:"history"`
	CreatedAt time.Time         `json:"createdAt"`
}

// FlatEquipmentRecord mirrors the equipment table row. History stays a
// serialized blob until the record is transformed for output.
type FlatEquipmentRecord struct {
	ItemID     string        `db:"item_id"`
	Name       string        `db:"name"`
	Location   string        `db:"location"`
	Category   string        `db:"category"`
	Current    string        `db:"current_location"`
	User       string        `db:"user_location"`
	Status     string        `db:"status"`
	Note       string        `db:"note"`
	Image      string        `db:"image"`
	History    string        `db:"history"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	FacilityID sql.NullInt64 `db:"facility_id"`
}

// TransformToEquipment decodes the stored history blob. A corrupt blob
// degrades to an empty history rather than failing the whole read.
func (fr *FlatEquipmentRecord) TransformToEquipment() Equipment {
	history := []json.RawMessage{}
	if fr.History != "" {
		if err := json.Unmarshal([]byte(fr.History), &history); err != nil {
			history = []json.RawMessage{}
		}
	}

	return Equipment{
		ItemID:    fr.ItemID,
		Name:      fr.Name,
		Location:  fr.Location,
		Category:  fr.Category,
		Current:   fr.Current,
		User:      fr.User,
		Status:    fr.Status,
		Note:      fr.Note,
		Image:     fr.Image,
		History:   history,
		CreatedAt: fr.CreatedAt,
	}
}

func (e *Equipment) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   e.ItemID,
		ResourceType: "equipment",
	}
}
