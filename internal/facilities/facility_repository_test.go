package facilities

import (
	"database/sql"
	"testing"

	"github.com/FractiqLabs/StockEasy/internal/database"
	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFacilityRepository(t *testing.T) (*FacilityRepository, *sql.DB) {
	t.Helper()
	db, driver := database.NewTestDB(t)
	return NewFacilityRepository(repository.NewRepository(db, driver)), db
}

func TestPersistAndGetFacilities(t *testing.T) {
	repo, _ := setupFacilityRepository(t)

	require.NoError(t, repo.PersistFacility(&models.Facility{Name: "West Wing", Address: "2-1 Sakura-cho", Phone: "045-000-0000"}))
	require.NoError(t, repo.PersistFacility(&models.Facility{Name: "East Wing"}))

	facilities, err := repo.GetFacilities()
	require.NoError(t, err)
	require.Len(t, facilities, 2)

	// Ordered by name.
	assert.Equal(t, "East Wing", facilities[0].Name)
	assert.Equal(t, "West Wing", facilities[1].Name)
	assert.Equal(t, "2-1 Sakura-cho", facilities[1].Address)
}

func TestDeleteFacilityCascades(t *testing.T) {
	repo, db := setupFacilityRepository(t)

	require.NoError(t, repo.PersistFacility(&models.Facility{Name: "Annex"}))

	facilities, err := repo.GetFacilities()
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	facilityID := facilities[0].ID

	_, err = db.Exec(`INSERT INTO equipment (item_id, name, location, category, facility_id) VALUES ('WC-001', 'Wheelchair', 'office', 'wheelchair', ?)`, facilityID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (username, password_hash, role, facility_id) VALUES ('staff-annex', 'x', 'staff', ?)`, facilityID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteFacility(int64(facilityID)))

	var equipmentCount, userCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM equipment`).Scan(&equipmentCount))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&userCount))
	assert.Equal(t, 0, equipmentCount)
	assert.Equal(t, 0, userCount)
}

func TestDeleteFacilityNotFound(t *testing.T) {
	repo, _ := setupFacilityRepository(t)

	err := repo.DeleteFacility(42)

	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "facility", notFound.Resource)
}
