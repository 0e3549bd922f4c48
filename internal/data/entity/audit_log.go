package entity

import "github.com/google/uuid"

// AuditLog is an append-only action record tied to a user.
type AuditLog struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	Action string    `db:"action"`
}
