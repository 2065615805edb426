package equipment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
)

// CreateRequest is the payload for registering a new record.
type CreateRequest struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	Category   string            `json:"category"`
	Image      string            `json:"image"`
	History    []json.RawMessage `json:"history"`
	FacilityID *int64            `json:"facilityId"`
}

// Validate checks every creation rule and returns the full list of
// violations so the caller can display them all at once.
func (r *CreateRequest) Validate() []string {
	var problems []string
	problems = validateItemID(r.ID, problems)
	problems = validateName(r.Name, problems)
	problems = validateCategory(r.Category, problems)
	problems = validateLocation(r.Location, problems)
	return problems
}

// Record builds the insert row. Name and id pass through Sanitize on
// their way to storage.
func (r *CreateRequest) Record() (goqu.Record, error) {
	history := "[]"
	if r.History != nil {
		raw, err := json.Marshal(r.History)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize history: %w", err)
		}
		history = string(raw)
	}

	rec := goqu.Record{
		"item_id":  Sanitize(strings.TrimSpace(r.ID)),
		"name":     Sanitize(r.Name),
		"location": r.Location,
		"category": r.Category,
		"image":    r.Image,
		"history":  history,
	}
	if r.FacilityID != nil {
		rec["facility_id"] = *r.FacilityID
	}
	return rec, nil
}

// UpdateRequest is a sparse update. Pointer fields distinguish "absent"
// from "set to empty"; its fields are the complete allow-list of what an
// update may touch — anything else in the payload never reaches storage.
type UpdateRequest struct {
	Name     *string            `json:"name"`
	Location *string            `json:"location"`
	Category *string            `json:"category"`
	Image    *string            `json:"image"`
	Current  *string            `json:"current"`
	User     *string            `json:"user"`
	Status   *string            `json:"status"`
	Note     *string            `json:"note"`
	History  *[]json.RawMessage `json:"history"`
}

// IsStructuralChange reports whether the update touches a field that
// defines what the record is (admin-only), as opposed to the circulation
// fields staff may change during normal borrow/return use.
func (r *UpdateRequest) IsStructuralChange() bool {
	return r.Name != nil || r.Location != nil || r.Category != nil || r.Image != nil
}

// Validate checks only the fields present in the request; absent fields
// are not checked, which is what makes sparse updates possible.
func (r *UpdateRequest) Validate() []string {
	var problems []string
	if r.Name != nil {
		problems = validateName(*r.Name, problems)
	}
	if r.Category != nil {
		problems = validateCategory(*r.Category, problems)
	}
	if r.Location != nil {
		problems = validateLocation(*r.Location, problems)
	}
	return problems
}

// Changes maps the present fields onto their columns. History is
// serialized before assignment; the repository stamps updated_at.
func (r *UpdateRequest) Changes() (goqu.Record, error) {
	changes := goqu.Record{}
	if r.Name != nil {
		changes["name"] = Sanitize(*r.Name)
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	if r.Image != nil {
		changes["image"] = *r.Image
	}
	if r.Current != nil {
		changes["current_location"] = *r.Current
	}
	if r.User != nil {
		changes["user_location"] = *r.User
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	if r.Note != nil {
		changes["note"] = *r.Note
	}
	if r.History != nil {
		raw, err := json.Marshal(*r.History)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize history: %w", err)
		}
		changes["history"] = string(raw)
	}
	return changes, nil
}

// ImportItem is one record in a full-replace import. Unlike updates it
// carries the circulation fields directly.
type ImportItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Location string            `json:"location"`
	Category string            `json:"category"`
	Current  string            `json:"current"`
	User     string            `json:"user"`
	Status   string            `json:"status"`
	Note     string            `json:"note"`
	Image    string            `json:"image"`
	History  []json.RawMessage `json:"history"`
}

func (i *ImportItem) Validate() []string {
	var problems []string
	problems = validateItemID(i.ID, problems)
	problems = validateName(i.Name, problems)
	problems = validateCategory(i.Category, problems)
	problems = validateLocation(i.Location, problems)
	return problems
}

func (i *ImportItem) Record() (goqu.Record, error) {
	history := "[]"
	if i.History != nil {
		raw, err := json.Marshal(i.History)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize history: %w", err)
		}
		history = string(raw)
	}

	status := i.Status
	if status == "" {
		status = "standby"
	}

	return goqu.Record{
		"item_id":          Sanitize(strings.TrimSpace(i.ID)),
		"name":             Sanitize(i.Name),
		"location":         i.Location,
		"category":         i.Category,
		"current_location": i.Current,
		"user_location":    i.User,
		"status":           status,
		"note":             i.Note,
		"image":            i.Image,
		"history":          history,
	}, nil
}
