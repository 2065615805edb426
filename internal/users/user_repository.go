package users

import (
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/doug-martin/goqu/v9"
)

// UserRepository reads and writes login credentials. Accounts are
// provisioned through the create-admin command, never over HTTP.
type UserRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{r: r}
}

func (ur *UserRepository) PersistUser(username string, passwordHash []byte, role roles.Role, facilityID *int64) error {
	rec := goqu.Record{
		"username":      username,
		"password_hash": string(passwordHash),
		"role":          role.String(),
	}
	if facilityID != nil {
		rec["facility_id"] = *facilityID
	}

	query := ur.r.GoquDBWrapper.Insert("users").Rows(rec)
	if _, err := query.Executor().Exec(); err != nil {
		if ur.r.IsUniqueViolation(err) {
			return apperrors.NewConflict(fmt.Sprintf("username %q already exists", username))
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetAdminByUsername finds an admin credential. A missing user comes
// back as NotFound, which login handlers flatten into a generic
// invalid-credentials response.
func (ur *UserRepository) GetAdminByUsername(username string) (*models.User, error) {
	var user models.User

	query := ur.r.GoquDBWrapper.
		From("users").
		Select("id", "username", "password_hash", "role", "facility_id").
		Where(goqu.Ex{"username": username, "role": roles.Admin.String()})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "user"}
	}
	return &user, nil
}

// GetStaffByFacility finds the staff credential scoped to a facility.
func (ur *UserRepository) GetStaffByFacility(facilityID int64) (*models.User, error) {
	var user models.User

	query := ur.r.GoquDBWrapper.
		From("users").
		Select("id", "username", "password_hash", "role", "facility_id").
		Where(goqu.Ex{"facility_id": facilityID, "role": roles.Staff.String()})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff user: %w", err)
	}
	if !found {
		return nil, &apperrors.NotFoundError{Resource: "user"}
	}
	return &user, nil
}
