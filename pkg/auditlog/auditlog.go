package auditlog

import (
	"log"

	"github.com/FractiqLabs/StockEasy/pkg/models"
)

// Auditable is implemented by entities that know how to describe
// themselves in an audit entry.
type Auditable interface {
	CreateLogView() models.AuditLog
}

// Logger records mutations. Persisting an entry is best-effort: a
// failing audit write is logged and never fails the mutation itself.
type Logger interface {
	Log(action string, actor string, data map[string]interface{}, item Auditable)
}

type Store interface {
	PersistLog(entry models.AuditLog, data map[string]interface{}) error
}

type Auditlog struct {
	store Store
}

func NewAuditLog(store Store) *Auditlog {
	return &Auditlog{store: store}
}

func (a *Auditlog) Log(action string, actor string, data map[string]interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.Action = action
	entry.Actor = actor

	if err := a.store.PersistLog(entry, data); err != nil {
		log.Println("Unable to create audit log entry for", entry.ResourceID, ":", err)
		return
	}
}
