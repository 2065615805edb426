package facilities

import (
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type Repository interface {
	GetFacilities() ([]models.Facility, error)
	PersistFacility(facility *models.Facility) error
	DeleteFacility(id int64) error
}

type FacilityRepository struct {
	r *repository.Repository
}

func NewFacilityRepository(r *repository.Repository) *FacilityRepository {
	return &FacilityRepository{r: r}
}

func (fr *FacilityRepository) GetFacilities() ([]models.Facility, error) {
	var facilities []models.Facility

	query := fr.r.GoquDBWrapper.
		From("facilities").
		Select("id", "name", "address", "phone").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&facilities); err != nil {
		return nil, fmt.Errorf("failed to fetch facilities: %w", err)
	}
	return facilities, nil
}

func (fr *FacilityRepository) PersistFacility(facility *models.Facility) error {
	query := fr.r.GoquDBWrapper.Insert("facilities").Rows(goqu.Record{
		"name":    facility.Name,
		"address": facility.Address,
		"phone":   facility.Phone,
	})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert facility: %w", err)
	}
	return nil
}

// DeleteFacility removes the facility; equipment and users scoped to it
// go with it through the cascading foreign keys.
func (fr *FacilityRepository) DeleteFacility(id int64) error {
	query := fr.r.GoquDBWrapper.
		Delete("facilities").
		Where(goqu.Ex{"id": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return &apperrors.NotFoundError{Resource: "facility"}
	}
	return nil
}
