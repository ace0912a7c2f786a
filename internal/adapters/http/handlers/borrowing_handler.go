package handlers

import (
	"errors"
	"strconv"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BorrowingHandler handles lending ledger endpoints
type BorrowingHandler struct {
	lendingService *services.LendingService
	queryService   *services.QueryService
}

// NewBorrowingHandler creates a new borrowing handler
func NewBorrowingHandler(lendingService *services.LendingService, queryService *services.QueryService) *BorrowingHandler {
	return &BorrowingHandler{
		lendingService: lendingService,
		queryService:   queryService,
	}
}

// CheckoutRequest represents checkout request
type CheckoutRequest struct {
	MemberID       uint `json:"member_id"`
	BookID         uint `json:"book_id"`
	LoanPeriodDays int  `json:"loan_period_days,omitempty"`
}

// Checkout lends a book copy to a member
// @Summary Checkout book
// @Description Lend one copy of a book to an active member (staff only)
// @Tags Borrowings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckoutRequest true "Checkout data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /borrowings [post]
func (h *BorrowingHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.BookID == 0 {
		return response.BadRequest(c, "Book ID is required")
	}

	input := &services.CheckoutInput{
		MemberID:       req.MemberID,
		BookID:         req.BookID,
		LoanPeriodDays: req.LoanPeriodDays,
	}

	borrowing, err := h.lendingService.Checkout(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrNoCopiesAvailable):
			return response.Conflict(c, domain.KindNoCopiesAvailable, "No copies of this book are available")
		case errors.Is(err, domain.ErrMemberInactive):
			return response.Unprocessable(c, domain.KindMemberInactive, "Member is not active")
		case errors.Is(err, domain.ErrBusy):
			return response.ServiceUnavailable(c, domain.KindBusy, "The catalog is busy, please retry")
		case errors.Is(err, domain.ErrTimeout):
			return response.ServiceUnavailable(c, domain.KindTimeout, "The operation timed out, please retry")
		default:
			return response.InternalServerError(c, "Failed to checkout book")
		}
	}

	return response.Created(c, "Book checked out successfully", fiber.Map{
		"borrowing": borrowing,
	})
}

// Return closes an open borrowing
// @Summary Return book
// @Description Return a borrowed copy and release it (staff only)
// @Tags Borrowings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Borrowing ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 500 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /borrowings/{id}/return [put]
func (h *BorrowingHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid borrowing ID")
	}

	borrowing, err := h.lendingService.Return(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrBorrowingNotFound):
			return response.NotFound(c, "Borrowing not found")
		case errors.Is(err, domain.ErrAlreadyReturned):
			return response.Conflict(c, domain.KindAlreadyReturned, "This borrowing was already returned")
		case errors.Is(err, domain.ErrBusy):
			return response.ServiceUnavailable(c, domain.KindBusy, "The catalog is busy, please retry")
		case errors.Is(err, domain.ErrTimeout):
			return response.ServiceUnavailable(c, domain.KindTimeout, "The operation timed out, please retry")
		case errors.Is(err, domain.ErrInternalInconsistency):
			return response.Error(c, fiber.StatusInternalServerError, domain.KindInternalInconsistency, "Copy counters do not match the ledger for this book")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"borrowing": borrowing,
	})
}

// List lists borrowings
// @Summary List borrowings
// @Description List borrowings newest first with member and book names and derived status
// @Tags Borrowings
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status" Enums(borrowed, returned, overdue)
// @Param member_id query int false "Filter by member ID"
// @Param book_id query int false "Filter by book ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /borrowings [get]
func (h *BorrowingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.BorrowingFilter{
		Now: time.Now(),
	}

	if status := c.Query("status"); status != "" {
		switch status {
		case models.BorrowingStatusBorrowed, models.BorrowingStatusReturned, models.BorrowingStatusOverdue:
			filter.Status = status
		default:
			return response.BadRequest(c, "Status must be one of borrowed, returned, overdue")
		}
	}

	if memberID := c.Query("member_id"); memberID != "" {
		id, _ := strconv.ParseUint(memberID, 10, 32)
		filter.MemberID = uint(id)
	}

	if bookID := c.Query("book_id"); bookID != "" {
		id, _ := strconv.ParseUint(bookID, 10, 32)
		filter.BookID = uint(id)
	}

	borrowings, total, err := h.queryService.ListBorrowingViews(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list borrowings")
	}

	return response.Success(c, "Borrowings retrieved successfully", pagination.NewResponse(borrowings, params, total))
}

// GetByID gets a borrowing by ID
// @Summary Get borrowing by ID
// @Description Get a specific borrowing with member and book names and derived status
// @Tags Borrowings
// @Accept json
// @Produce json
// @Param id path int true "Borrowing ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /borrowings/{id} [get]
func (h *BorrowingHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid borrowing ID")
	}

	borrowing, err := h.queryService.GetBorrowingView(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBorrowingNotFound):
			return response.NotFound(c, "Borrowing not found")
		case errors.Is(err, domain.ErrInternalInconsistency):
			return response.Error(c, fiber.StatusInternalServerError, domain.KindInternalInconsistency, "Borrowing references a missing member or book")
		default:
			return response.InternalServerError(c, "Failed to get borrowing")
		}
	}

	return response.Success(c, "Borrowing retrieved successfully", fiber.Map{
		"borrowing": borrowing,
	})
}
