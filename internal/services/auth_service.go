package services

import (
	"context"
	"strings"

	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// CreateStaff adds an admin account to the caller's business
	CreateStaff(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateStaffRequest) (*dto.UserDTO, error)
	ListStaff(ctx context.Context, db *gorm.DB, businessID string) ([]dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	businessRepo repositories.BusinessRepository
	tokens       *auth.TokenIssuer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	businessRepo repositories.BusinessRepository,
	tokens *auth.TokenIssuer,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		tokens:       tokens,
	}
}

// Register creates the owner and the business in one transaction
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleOwner,
	}
	business := &models.Business{
		Name:     req.BusinessName,
		Currency: currency,
	}
	// the two rows reference each other
	user.ID = uuid.NewString()
	business.ID = uuid.NewString()
	user.BusinessID = business.ID
	business.UserID = user.ID

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.userRepo.ExistsByEmail(tx, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.businessRepo.Create(tx, business); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "business registered", "user_id", user.ID, "business_id", business.ID)
	return s.buildAuthResponse(user, business)
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	business, err := s.businessRepo.FindByID(db, user.BusinessID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBusinessNotFound) {
			return nil, apperrors.ErrNoBusinessContext
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user, business)
}

func (s *AuthServiceImpl) CreateStaff(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateStaffRequest) (*dto.UserDTO, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		BusinessID:   businessID,
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "staff account created", "staff_id", user.ID)
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) ListStaff(ctx context.Context, db *gorm.DB, businessID string) ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindByBusiness(db, businessID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	return out, nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User, business *models.Business) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, business.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        dto.NewUserDTO(user),
		Business:    dto.NewBusinessDTO(business),
	}, nil
}
