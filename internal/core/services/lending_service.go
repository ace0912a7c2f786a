package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// LendingService handles checkout and return business logic. Both
// operations run inside a transaction and change copy counters only
// through conditional updates checked by affected rows, so the
// available count can never go negative or exceed the total, no
// matter how many requests race.
type LendingService struct {
	db             *gorm.DB
	loanPeriodDays int
}

// NewLendingService creates a new lending service
func NewLendingService(db *gorm.DB, loanPeriodDays int) *LendingService {
	if loanPeriodDays < 1 {
		loanPeriodDays = 14
	}
	return &LendingService{db: db, loanPeriodDays: loanPeriodDays}
}

// CheckoutInput represents checkout input
type CheckoutInput struct {
	MemberID       uint `json:"member_id" validate:"required"`
	BookID         uint `json:"book_id" validate:"required"`
	LoanPeriodDays int  `json:"loan_period_days,omitempty"`
}

// Checkout lends one copy of a book to a member. It fails with
// ErrMemberInactive for suspended members and ErrNoCopiesAvailable
// when the book has no free copies, the latter winning when both
// apply.
func (s *LendingService) Checkout(ctx context.Context, input *CheckoutInput) (*models.Borrowing, error) {
	if input.MemberID == 0 {
		return nil, fmt.Errorf("%w: member_id is required", domain.ErrValidation)
	}
	if input.BookID == 0 {
		return nil, fmt.Errorf("%w: book_id is required", domain.ErrValidation)
	}

	loanDays := input.LoanPeriodDays
	if loanDays < 0 {
		return nil, fmt.Errorf("%w: loan_period_days must be positive", domain.ErrValidation)
	}
	if loanDays == 0 {
		loanDays = s.loanPeriodDays
	}

	var borrowing *models.Borrowing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, input.MemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		var book models.Book
		if err := tx.First(&book, input.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}

		if book.AvailableCopies <= 0 {
			return domain.ErrNoCopiesAvailable
		}

		if !member.IsActive() {
			return domain.ErrMemberInactive
		}

		// Conditional decrement. Zero affected rows means another
		// transaction took the last copy first.
		result := tx.Model(&models.Book{}).
			Where("book_id = ? AND available_copies > 0", input.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNoCopiesAvailable
		}

		now := time.Now()
		borrowing = &models.Borrowing{
			MemberID:   input.MemberID,
			BookID:     input.BookID,
			BorrowDate: now,
			DueDate:    now.AddDate(0, 0, loanDays),
			Status:     models.BorrowingStatusBorrowed,
		}
		return tx.Create(borrowing).Error
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	return borrowing, nil
}

// Return closes an open borrowing and releases its copy. Returning
// the same borrowing twice fails with ErrAlreadyReturned and never
// increments the counter a second time.
func (s *LendingService) Return(ctx context.Context, borrowingID uint) (*models.Borrowing, error) {
	if borrowingID == 0 {
		return nil, fmt.Errorf("%w: borrowing id is required", domain.ErrValidation)
	}

	var returned models.Borrowing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var borrowing models.Borrowing
		if err := tx.First(&borrowing, borrowingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBorrowingNotFound
			}
			return err
		}

		if borrowing.Status == models.BorrowingStatusReturned {
			return domain.ErrAlreadyReturned
		}

		// Conditional status flip. Zero affected rows means another
		// transaction returned it first.
		now := time.Now()
		result := tx.Model(&models.Borrowing{}).
			Where("borrowing_id = ? AND status = ?", borrowingID, models.BorrowingStatusBorrowed).
			Updates(map[string]interface{}{
				"status":      models.BorrowingStatusReturned,
				"return_date": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAlreadyReturned
		}

		// Guarded increment, refused when it would push the counter
		// past total_copies. Zero rows here means the ledger and the
		// counters disagree, so the whole return is rolled back.
		result = tx.Model(&models.Book{}).
			Where("book_id = ? AND available_copies < total_copies", borrowing.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			log.Printf("❌ Copy counter mismatch on book %d: return of borrowing %d refused", borrowing.BookID, borrowingID)
			return domain.ErrInternalInconsistency
		}

		borrowing.Status = models.BorrowingStatusReturned
		borrowing.ReturnDate = &now
		returned = borrowing
		return nil
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	return &returned, nil
}

// translateStoreErr maps context deadlines and driver lock errors
// onto the domain taxonomy. Everything else passes through.
func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	if isLockContention(err) {
		return fmt.Errorf("%w: %v", domain.ErrBusy, err)
	}
	return err
}

// isLockContention recognizes lock wait and deadlock errors across
// the supported drivers by message, none of them export matching
// sentinel errors.
func isLockContention(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Lock wait timeout exceeded") ||
		strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not obtain lock") ||
		strings.Contains(msg, "canceling statement due to lock timeout") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
