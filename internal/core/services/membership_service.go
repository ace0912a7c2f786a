package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// MembershipService handles library member business logic
type MembershipService struct {
	memberRepo *repositories.MemberRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(memberRepo *repositories.MemberRepository) *MembershipService {
	return &MembershipService{memberRepo: memberRepo}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Status    string `json:"status,omitempty"`
}

// CreateMember registers a new member with a unique email
func (s *MembershipService) CreateMember(ctx context.Context, input *CreateMemberInput) (*models.Member, error) {
	if input.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	}
	if input.LastName == "" {
		return nil, fmt.Errorf("%w: last_name is required", domain.ErrValidation)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = models.MemberStatusActive
	}
	if status != models.MemberStatusActive && status != models.MemberStatusInactive {
		return nil, fmt.Errorf("%w: status must be 'active' or 'inactive'", domain.ErrValidation)
	}

	if exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicateEmail
	}

	member := &models.Member{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		MembershipDate: time.Now(),
		Status:         status,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		// Races past the pre-check land here via the driver
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return member, nil
}

// GetMember gets a member by ID
func (s *MembershipService) GetMember(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// SearchMembers searches members by name or email
func (s *MembershipService) SearchMembers(ctx context.Context, query string, limit int) ([]*models.Member, error) {
	return s.memberRepo.Search(ctx, query, limit)
}
