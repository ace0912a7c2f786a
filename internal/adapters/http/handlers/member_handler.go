package handlers

import (
	"errors"
	"strconv"
	"strings"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles library member endpoints
type MemberHandler struct {
	membershipService *services.MembershipService
	queryService      *services.QueryService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(membershipService *services.MembershipService, queryService *services.QueryService) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
		queryService:      queryService,
	}
}

// CreateMemberRequest represents create member request
type CreateMemberRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Create registers a new member
// @Summary Create member
// @Description Register a new library member (staff only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.FirstName) == "" {
		return response.BadRequest(c, "First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return response.BadRequest(c, "Last name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return response.BadRequest(c, "Email is required")
	}

	input := &services.CreateMemberInput{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Status:    strings.TrimSpace(req.Status),
	}

	member, err := h.membershipService.CreateMember(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicateEmail):
			return response.Conflict(c, domain.KindDuplicateKey, "A member with this email already exists")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member,
	})
}

// List lists members
// @Summary List members
// @Description List members ordered by last name, first name with all-time loan counts
// @Tags Members
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Match against name or email"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	// Search short-circuits the counted listing
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		members, err := h.membershipService.SearchMembers(c.Context(), search, params.Limit)
		if err != nil {
			return response.InternalServerError(c, "Failed to search members")
		}
		return response.Success(c, "Members retrieved successfully", fiber.Map{
			"members": members,
		})
	}

	members, total, err := h.queryService.ListMemberViews(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", pagination.NewResponse(members, params, total))
}

// GetByID gets a member by ID
// @Summary Get member by ID
// @Description Get a specific member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.membershipService.GetMember(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}
