package payslip

import (
	"context"
	"errors"

	paysliperrors "go-payslip/internal/payslip/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string, userID string) ([]PayslipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
	MarkViewed(ctx context.Context, companyID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, companyID string, userID string) ([]PayslipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, paysliperrors.ErrInvalidCompanyID
	}

	records, err := s.repo.FindAllByCompany(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(records)
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidCompanyID
	}

	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PayslipResponse{}, paysliperrors.ErrPayslipNotFound
	}
	if err != nil {
		return PayslipResponse{}, err
	}

	return mapToResponse(*record)
}

func (s *service) MarkViewed(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(companyID); err != nil {
		return paysliperrors.ErrInvalidCompanyID
	}
	return s.repo.MarkViewed(ctx, companyID, id)
}
