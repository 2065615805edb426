package security

import (
	"fmt"
	"time"

	"github.com/FractiqLabs/StockEasy/internal/repository"
	"github.com/FractiqLabs/StockEasy/pkg/models"
	"github.com/FractiqLabs/StockEasy/pkg/roles"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// SessionRepository is the session-store contract handlers and the
// middleware depend on.
type SessionRepository interface {
	Create(username string, role roles.Role, facilityID *int64) (string, error)
	Get(token string) (*models.Session, error)
	Delete(token string) error
}

// SessionStore keeps sessions in the database, keyed by an opaque
// token. Nothing about a session lives in process-wide state.
type SessionStore struct {
	r   *repository.Repository
	ttl time.Duration
}

func NewSessionStore(r *repository.Repository, ttl time.Duration) *SessionStore {
	return &SessionStore{r: r, ttl: ttl}
}

func (s *SessionStore) Create(username string, role roles.Role, facilityID *int64) (string, error) {
	token := uuid.NewString()

	rec := goqu.Record{
		"token":      token,
		"username":   username,
		"role":       role.String(),
		"created_at": goqu.L("CURRENT_TIMESTAMP"),
		"last_seen":  goqu.L("CURRENT_TIMESTAMP"),
	}
	if facilityID != nil {
		rec["facility_id"] = *facilityID
	}

	query := s.r.GoquDBWrapper.Insert("sessions").Rows(rec)
	if _, err := query.Executor().Exec(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its session. Expired sessions are treated as
// absent and lazily purged.
func (s *SessionStore) Get(token string) (*models.Session, error) {
	var session models.Session

	query := s.r.GoquDBWrapper.
		From("sessions").
		Select("token", "username", "role", "facility_id", "created_at", "last_seen").
		Where(goqu.Ex{"token": token})

	found, err := query.Executor().ScanStruct(&session)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if !found {
		return nil, nil
	}

	if time.Since(session.CreatedAt) > s.ttl {
		if err := s.Delete(token); err != nil {
			return nil, err
		}
		return nil, nil
	}

	_, err = s.r.GoquDBWrapper.
		Update("sessions").
		Set(goqu.Record{"last_seen": goqu.L("CURRENT_TIMESTAMP")}).
		Where(goqu.Ex{"token": token}).
		Executor().Exec()
	if err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}

	return &session, nil
}

func (s *SessionStore) Delete(token string) error {
	_, err := s.r.GoquDBWrapper.
		Delete("sessions").
		Where(goqu.Ex{"token": token}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
