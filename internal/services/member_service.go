package services

import (
	"context"
	"strings"

	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/repositories"
	"memberhub_backend/internal/services/dto"
	"memberhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MemberService interface {
	CreateMember(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateMemberRequest) (*dto.MemberDTO, error)
	GetMember(ctx context.Context, db *gorm.DB, businessID, memberID string) (*dto.MemberDTO, error)
	ListMembers(ctx context.Context, db *gorm.DB, businessID string, query dto.MemberListQuery) (*dto.MemberListResponse, error)
	UpdateMember(ctx context.Context, db *gorm.DB, businessID, memberID string, req *dto.UpdateMemberRequest) (*dto.MemberDTO, error)
	DeactivateMember(ctx context.Context, db *gorm.DB, businessID, memberID string) error
}

type memberService struct {
	memberRepo repositories.MemberRepository
	notifier   NotificationService
}

func NewMemberService(memberRepo repositories.MemberRepository, notifier NotificationService) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		notifier:   notifier,
	}
}

func (s *memberService) CreateMember(ctx context.Context, db *gorm.DB, businessID string, req *dto.CreateMemberRequest) (*dto.MemberDTO, error) {
	member := &models.Member{
		BusinessID:  businessID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		IsActive:    true,
		Notes:       req.Notes,
	}

	if err := s.memberRepo.Create(db, member); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "member created", "member_id", member.ID)

	s.notifier.Notify(ctx, db, dto.CreateNotification{
		BusinessID:        businessID,
		Type:              models.NotificationTypeMemberAdded,
		Title:             "New member",
		Message:           member.FullName() + " joined",
		RelatedEntityType: "member",
		RelatedEntityID:   member.ID,
	})

	out := dto.NewMemberDTO(member)
	return &out, nil
}

func (s *memberService) GetMember(ctx context.Context, db *gorm.DB, businessID, memberID string) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByID(db, businessID, memberID)
	if err != nil {
		return nil, mapMemberError(err)
	}
	out := dto.NewMemberDTO(member)
	return &out, nil
}

func (s *memberService) ListMembers(ctx context.Context, db *gorm.DB, businessID string, query dto.MemberListQuery) (*dto.MemberListResponse, error) {
	criteria := repositories.MemberCriteria{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	members, total, err := s.memberRepo.FindPaged(db, businessID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	items := make([]dto.MemberDTO, 0, len(members))
	for i := range members {
		items = append(items, dto.NewMemberDTO(&members[i]))
	}

	return &dto.MemberListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: dto.TotalPages(total, pageSize),
	}, nil
}

func (s *memberService) UpdateMember(ctx context.Context, db *gorm.DB, businessID, memberID string, req *dto.UpdateMemberRequest) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.FindByID(db, businessID, memberID)
	if err != nil {
		return nil, mapMemberError(err)
	}

	member.FirstName = strings.TrimSpace(req.FirstName)
	member.LastName = strings.TrimSpace(req.LastName)
	member.Email = strings.TrimSpace(req.Email)
	member.Phone = strings.TrimSpace(req.Phone)
	member.Address = req.Address
	member.DateOfBirth = req.DateOfBirth
	member.Notes = req.Notes
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := s.memberRepo.Update(db, member); err != nil {
		return nil, mapMemberError(err)
	}

	out := dto.NewMemberDTO(member)
	return &out, nil
}

// DeactivateMember keeps history; members are never removed
func (s *memberService) DeactivateMember(ctx context.Context, db *gorm.DB, businessID, memberID string) error {
	if err := s.memberRepo.Deactivate(db, businessID, memberID); err != nil {
		return mapMemberError(err)
	}
	logger.CtxInfo(ctx, "member deactivated", "member_id", memberID)
	return nil
}

func mapMemberError(err error) error {
	if apperrors.Is(err, repositories.ErrMemberNotFound) {
		return apperrors.ErrMemberNotFound
	}
	return apperrors.InternalError(err)
}
