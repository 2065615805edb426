package models

import "database/sql"

type User struct {
	ID           int           `json:"id" db:"id"`
	Username     string        `json:"username" db:"username"`
	PasswordHash string        `json:"-" db:"password_hash"`
	Role         string        `json:"role" db:"role"`
	FacilityID   sql.NullInt64 `json:"-" db:"facility_id"`
}
