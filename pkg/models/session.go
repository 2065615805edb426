package models

import (
	"database/sql"
	"time"
)

// Session is one established login, keyed by an opaque token. The token
// is the only thing the client holds; everything else lives server-side.
type Session struct {
	Token      string        `db:"token"`
	Username   string        `db:"username"`
	Role       string        `db:"role"`
	FacilityID sql.NullInt64 `db:"facility_id"`
	CreatedAt  time.Time     `db:"created_at"`
	LastSeen   time.Time     `db:"last_seen"`
}
