package equipment

import (
	"encoding/json"
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/apperrors"
	"github.com/FractiqLabs/StockEasy/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// Repository is the storage contract the handler depends on; the
// concrete implementation below talks to the record store through goqu.
type Repository interface {
	GetEquipmentList() ([]models.Equipment, error)
	PersistEquipment(req *CreateRequest) error
	UpdateEquipment(itemID string, changes goqu.Record) error
	DeleteEquipment(itemID string) error
	ReplaceAll(items []ImportItem) error
	AppendHistory(itemID string, entry json.RawMessage) error
}

type EquipmentRepository struct {
	r *repository.Repository
}

func NewEquipmentRepository(r *repository.Repository) *EquipmentRepository {
	return &EquipmentRepository{r: r}
}

var equipmentColumns = []interface{}{
	"item_id", "name", "location", "category", "current_location",
	"user_location", "status", "note", "image", "history",
	"created_at", "updated_at", "facility_id",
}

// GetEquipmentList returns every record, newest-created first.
func (er *EquipmentRepository) GetEquipmentList() ([]models.Equipment, error) {
	var flat []models.FlatEquipmentRecord

	query := er.r.GoquDBWrapper.
		From("equipment").
		Select(equipmentColumns...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc())

	if err := query.Executor().ScanStructs(&flat); err != nil {
		return nil, fmt.Errorf("failed to fetch equipment list: %w", err)
	}

	list := make([]models.Equipment, 0, len(flat))
	for i := range flat {
		list = append(list, flat[i].TransformToEquipment())
	}
	return list, nil
}

func (er *EquipmentRepository) PersistEquipment(req *CreateRequest) error {
	rec, err := req.Record()
	if err != nil {
		return err
	}

	query := er.r.GoquDBWrapper.Insert("equipment").Rows(rec)
	if _, err := query.Executor().Exec(); err != nil {
		if er.r.IsUniqueViolation(err) {
			return apperrors.NewConflict("this ID is already in use")
		}
		return fmt.Errorf("failed to insert equipment record: %w", err)
	}
	return nil
}

// UpdateEquipment applies the staged changes in one statement and always
// stamps updated_at, regardless of which fields changed. Zero matched
// rows means the record does not exist and nothing was applied.
func (er *EquipmentRepository) UpdateEquipment(itemID string, changes goqu.Record) error {
	changes["updated_at"] = goqu.L("CURRENT_TIMESTAMP")

	query := er.r.GoquDBWrapper.
		Update("equipment").
		Set(changes).
		Where(goqu.Ex{"item_id": itemID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update equipment record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return &apperrors.NotFoundError{Resource: "equipment"}
	}
	return nil
}

func (er *EquipmentRepository) DeleteEquipment(itemID string) error {
	query := er.r.GoquDBWrapper.
		Delete("equipment").
		Where(goqu.Ex{"item_id": itemID})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete equipment record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return &apperrors.NotFoundError{Resource: "equipment"}
	}
	return nil
}

// ReplaceAll deletes every record and inserts the incoming set inside a
// single transaction: any failure leaves the previous data intact.
func (er *EquipmentRepository) ReplaceAll(items []ImportItem) error {
	return er.r.WithTransaction(func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("equipment").Executor().Exec(); err != nil {
			return fmt.Errorf("failed to clear equipment table: %w", err)
		}

		for i := range items {
			rec, err := items[i].Record()
			if err != nil {
				return err
			}
			if _, err := tx.Insert("equipment").Rows(rec).Executor().Exec(); err != nil {
				if er.r.IsUniqueViolation(err) {
					return apperrors.NewConflict(fmt.Sprintf("duplicate id %q in import", items[i].ID))
				}
				return fmt.Errorf("failed to import equipment record %q: %w", items[i].ID, err)
			}
		}
		return nil
	})
}

// AppendHistory adds one entry to a record's history inside a
// transaction, so concurrent appends cannot drop each other's entries
// the way whole-history replacement can.
func (er *EquipmentRepository) AppendHistory(itemID string, entry json.RawMessage) error {
	return er.r.WithTransaction(func(tx *goqu.TxDatabase) error {
		var stored string
		found, err := tx.From("equipment").
			Select("history").
			Where(goqu.Ex{"item_id": itemID}).
			ScanVal(&stored)
		if err != nil {
			return fmt.Errorf("failed to read equipment history: %w", err)
		}
		if !found {
			return &apperrors.NotFoundError{Resource: "equipment"}
		}

		history := []json.RawMessage{}
		if stored != "" {
			if err := json.Unmarshal([]byte(stored), &history); err != nil {
				history = []json.RawMessage{}
			}
		}
		history = append(history, entry)

		raw, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("failed to serialize history: %w", err)
		}

		_, err = tx.Update("equipment").
			Set(goqu.Record{
				"history":    string(raw),
				"updated_at": goqu.L("CURRENT_TIMESTAMP"),
			}).
			Where(goqu.Ex{"item_id": itemID}).
			Executor().Exec()
		if err != nil {
			return fmt.Errorf("failed to append history entry: %w", err)
		}
		return nil
	})
}
