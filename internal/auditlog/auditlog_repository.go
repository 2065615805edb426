package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type Repository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{r: r}
}

func (ar *Repository) PersistLog(entry models.AuditLog, data map[string]interface{}) error {
	payload := "{}"
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to serialize audit payload: %w", err)
		}
		payload = string(raw)
	}

	query := ar.r.GoquDBWrapper.Insert("audit_logs").Rows(goqu.Record{
		"resource_id":   entry.ResourceID,
		"resource_type": entry.ResourceType,
		"action":        entry.Action,
		"actor":         entry.Actor,
		"data":          payload,
	})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log entry: %w", err)
	}
	return nil
}
