package services

import (
	"context"
	"strings"

	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BusinessService interface {
	GetBusiness(ctx context.Context, db *gorm.DB, businessID string) (*dto.BusinessDTO, error)
	UpdateBusiness(ctx context.Context, db *gorm.DB, businessID string, req *dto.UpdateBusinessRequest) (*dto.BusinessDTO, error)
}

type businessService struct {
	businessRepo repositories.BusinessRepository
}

func NewBusinessService(businessRepo repositories.BusinessRepository) BusinessService {
	return &businessService{businessRepo: businessRepo}
}

func (s *businessService) GetBusiness(ctx context.Context, db *gorm.DB, businessID string) (*dto.BusinessDTO, error) {
	business, err := s.businessRepo.FindByID(db, businessID)
	if err != nil {
		return nil, mapBusinessError(err)
	}
	out := dto.NewBusinessDTO(business)
	return &out, nil
}

func (s *businessService) UpdateBusiness(ctx context.Context, db *gorm.DB, businessID string, req *dto.UpdateBusinessRequest) (*dto.BusinessDTO, error) {
	business, err := s.businessRepo.FindByID(db, businessID)
	if err != nil {
		return nil, mapBusinessError(err)
	}

	business.Name = req.Name
	business.Description = req.Description
	business.Address = req.Address
	business.Phone = req.Phone
	business.Email = req.Email
	business.TaxID = req.TaxID
	if req.Currency != "" {
		business.Currency = strings.ToUpper(req.Currency)
	}

	if err := s.businessRepo.Update(db, business); err != nil {
		return nil, mapBusinessError(err)
	}

	out := dto.NewBusinessDTO(business)
	return &out, nil
}

func mapBusinessError(err error) error {
	if apperrors.Is(err, repositories.ErrBusinessNotFound) {
		return apperrors.ErrBusinessNotFound
	}
	return apperrors.InternalError(err)
}
