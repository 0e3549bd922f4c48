package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Booking BookingService
	Payment PaymentService
	Audit   AuditService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Catalog: NewCatalogService(repo, log),
		Booking: NewBookingService(repo, config, log),
		Payment: NewPaymentService(repo, log),
		Audit:   NewAuditService(repo.Audit, log),
	}
}
