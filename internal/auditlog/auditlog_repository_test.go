package auditlog

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/repository"
	pkgauditlog "github.com/FractiqLabs/StockEasy/pkg/auditlog"
	"github.com/FractiqLabs/StockEasy/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuditStore(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()
	db, driver := database.NewTestDB(t)
	return NewRepository(repository.NewRepository(db, driver)), db
}

func TestPersistLogRowShape(t *testing.T) {
	store, db := setupAuditStore(t)

	entry := models.AuditLog{
		ResourceID:   "WC-001",
		ResourceType: "equipment",
		Action:       "update",
		Actor:        "tester",
	}
	require.NoError(t, store.PersistLog(entry, map[string]interface{}{"status": "in-use"}))

	var resourceID, resourceType, action, actor, data string
	row := db.QueryRow(`SELECT resource_id, resource_type, action, actor, data FROM audit_logs`)
	require.NoError(t, row.Scan(&resourceID, &resourceType, &action, &actor, &data))

	assert.Equal(t, "WC-001", resourceID)
	assert.Equal(t, "equipment", resourceType)
	assert.Equal(t, "update", action)
	assert.Equal(t, "tester", actor)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "in-use", payload["status"])
}

func TestPersistLogNilData(t *testing.T) {
	store, db := setupAuditStore(t)

	entry := models.AuditLog{ResourceID: "WC-001", ResourceType: "equipment", Action: "delete"}
	require.NoError(t, store.PersistLog(entry, nil))

	var data string
	require.NoError(t, db.QueryRow(`SELECT data FROM audit_logs`).Scan(&data))
	assert.Equal(t, "{}", data)
}

func TestLogRecordsEquipmentMutation(t *testing.T) {
	store, db := setupAuditStore(t)
	logger := pkgauditlog.NewAuditLog(store)

	item := models.Equipment{ItemID: "WC-001"}
	logger.Log("create", "admin", map[string]interface{}{"name": "Wheelchair A"}, &item)

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM audit_logs
		WHERE resource_id = 'WC-001' AND resource_type = 'equipment' AND action = 'create' AND actor = 'admin'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLogIsBestEffort(t *testing.T) {
	store, db := setupAuditStore(t)
	logger := pkgauditlog.NewAuditLog(store)

	require.NoError(t, db.Close())

	// A failing store only hits the process log; the caller never sees it.
	item := models.Equipment{ItemID: "WC-001"}
	assert.NotPanics(t, func() {
		logger.Log("delete", "admin", nil, &item)
	})
}
