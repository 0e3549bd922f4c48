package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService exposes the append-only action trail.
type AuditService interface {
	Record(ctx context.Context, userID uuid.UUID, action string) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response.AuditEntryResponse, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
	log       *zap.Logger
}

func NewAuditService(auditRepo repository.AuditRepository, log *zap.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		log:       log.With(zap.String("service", "audit")),
	}
}

func (s *auditService) Record(ctx context.Context, userID uuid.UUID, action string) error {
	if action == "" {
		return fmt.Errorf("empty action: %w", repository.ErrInvalidInput)
	}

	entry := &entity.AuditLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		Action: action,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}

func (s *auditService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response.AuditEntryResponse, error) {
	entries, err := s.auditRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list audit entries",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	entryResponses := make([]response.AuditEntryResponse, len(entries))
	for i, entry := range entries {
		entryResponses[i] = response.AuditEntryToResponse(entry)
	}

	return entryResponses, nil
}
