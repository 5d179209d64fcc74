package dto

import (
	"time"

	"memberhub_backend/internal/models"
)

type CreateMemberRequest struct {
	FirstName   string     `json:"first_name" validate:"required,max=100"`
	LastName    string     `json:"last_name" validate:"required,max=100"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Phone       string     `json:"phone" validate:"omitempty,max=50"`
	Address     string     `json:"address" validate:"omitempty,max=500"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Notes       string     `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateMemberRequest struct {
	CreateMemberRequest
	IsActive *bool `json:"is_active"`
}

type MemberListQuery struct {
	Page     int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
	Search   string `form:"search" json:"search" validate:"omitempty,max=100"`
}

type MemberDTO struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	IsActive    bool       `json:"is_active"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewMemberDTO(m *models.Member) MemberDTO {
	return MemberDTO{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		DateOfBirth: m.DateOfBirth,
		IsActive:    m.IsActive,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

type MemberListResponse struct {
	Items      []MemberDTO `json:"items"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
