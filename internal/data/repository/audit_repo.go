package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditRepository is append-only: entries are never updated or deleted.
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error)
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Create(ctx context.Context, entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create audit log",
			zap.Error(err),
			zap.String("user_id", entry.UserID.String()),
			zap.String("action", entry.Action),
		)
		return fmt.Errorf("create audit log: %w", err)
	}

	return nil
}

func (r *auditRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, created_at
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find audit logs by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find audit logs by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit log row", zap.Error(err))
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
