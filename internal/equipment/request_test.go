package equipment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRequestChangesAllowList(t *testing.T) {
	req := UpdateRequest{
		User:    strPtr("Tanaka"),
		Current: strPtr("room 201"),
		Status:  strPtr("in-use"),
	}

	changes, err := req.Changes()
	require.NoError(t, err)

	// External names map onto their internal columns; nothing else is
	// staged.
	assert.Equal(t, "Tanaka", changes["user_location"])
	assert.Equal(t, "room 201", changes["current_location"])
	assert.Equal(t, "in-use", changes["status"])
	assert.Len(t, changes, 3)
}

func TestUpdateRequestChangesSerializesHistory(t *testing.T) {
	history := []json.RawMessage{
		json.RawMessage(`{"action":"borrow","by":"Tanaka"}`),
		json.RawMessage(`{"action":"return"}`),
	}
	req := UpdateRequest{History: &history}

	changes, err := req.Changes()
	require.NoError(t, err)

	stored, ok := changes["history"].(string)
	require.True(t, ok)

	var parsed []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stored), &parsed))
	assert.Len(t, parsed, 2)
}

func TestUpdateRequestSanitizesName(t *testing.T) {
	req := UpdateRequest{Name: strPtr(`Bed "A"`)}

	changes, err := req.Changes()
	require.NoError(t, err)
	assert.Equal(t, "Bed &quot;A&quot;", changes["name"])
}

func TestIsStructuralChange(t *testing.T) {
	tests := []struct {
		name       string
		request    UpdateRequest
		structural bool
	}{
		{"circulation only", UpdateRequest{User: strPtr("Tanaka"), Status: strPtr("in-use"), Note: strPtr("n")}, false},
		{"history replacement", UpdateRequest{History: &[]json.RawMessage{}}, false},
		{"name", UpdateRequest{Name: strPtr("x")}, true},
		{"category", UpdateRequest{Category: strPtr("walker")}, true},
		{"location", UpdateRequest{Location: strPtr("2F")}, true},
		{"image", UpdateRequest{Image: strPtr("img.png")}, true},
		{"mixed", UpdateRequest{User: strPtr("Tanaka"), Category: strPtr("walker")}, true},
		{"empty", UpdateRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.structural, tt.request.IsStructuralChange())
		})
	}
}

func TestCreateRequestRecordDefaults(t *testing.T) {
	req := CreateRequest{
		ID:       " WC-001 ",
		Name:     "Wheelchair A",
		Category: "wheelchair",
		Location: "1F",
	}

	rec, err := req.Record()
	require.NoError(t, err)

	assert.Equal(t, "WC-001", rec["item_id"])
	assert.Equal(t, "[]", rec["history"])
	_, hasFacility := rec["facility_id"]
	assert.False(t, hasFacility)
}

func TestImportItemRecordDefaultsStatus(t *testing.T) {
	item := ImportItem{
		ID:       "WC-001",
		Name:     "Wheelchair A",
		Category: "wheelchair",
		Location: "1F",
	}

	rec, err := item.Record()
	require.NoError(t, err)
	assert.Equal(t, "standby", rec["status"])

	item.Status = "in-use"
	rec, err = item.Record()
	require.NoError(t, err)
	assert.Equal(t, "in-use", rec["status"])
}
