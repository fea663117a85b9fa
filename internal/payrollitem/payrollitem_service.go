package payrollitem

import (
	"context"

	payrollitemerrors "go-payslip/internal/payrollitem/errors"

	"github.com/google/uuid"
)

//go:generate mockgen -source=payrollitem_service.go -destination=mock/payrollitem_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string) ([]ItemResponse, error)
	ReplaceAll(ctx context.Context, companyID string, req ReplaceItemsRequest) ([]ItemResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]ItemResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, payrollitemerrors.ErrInvalidCompanyID
	}

	items, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(items), nil
}

// ReplaceAll swaps the catalog wholesale. Item ids come from the mapping
// layer, so an unchanged mapping keeps an unchanged catalog.
func (s *service) ReplaceAll(ctx context.Context, companyID string, req ReplaceItemsRequest) ([]ItemResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollitemerrors.ErrInvalidCompanyID
	}

	items := make([]PayrollItem, len(req.Items))
	for i, p := range req.Items {
		if !ValidType(p.Type) {
			return nil, payrollitemerrors.ErrInvalidItemType
		}
		items[i] = PayrollItem{
			ID:        p.ID,
			CompanyID: companyUUID,
			Name:      p.Name,
			Type:      p.Type,
			CSVColumn: p.CSVColumn,
		}
	}

	if err := s.repo.DeleteAllByCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertAll(ctx, items); err != nil {
		return nil, err
	}

	return mapToListResponse(items), nil
}
