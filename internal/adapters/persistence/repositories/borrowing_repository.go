package repositories

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// BorrowingRepository handles lending ledger data access
type BorrowingRepository struct {
	db *gorm.DB
}

// NewBorrowingRepository creates a new borrowing repository
func NewBorrowingRepository(db *gorm.DB) *BorrowingRepository {
	return &BorrowingRepository{db: db}
}

// GetByID gets a borrowing by ID with member and book preloaded
func (r *BorrowingRepository) GetByID(ctx context.Context, id uint) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Book").
		First(&borrowing, id).Error
	if err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// BorrowingFilter narrows borrowing listings. Status accepts the
// derived overdue value next to the stored ones.
type BorrowingFilter struct {
	Status   string
	MemberID uint
	BookID   uint
	Now      time.Time
}

// List lists borrowings newest first with member and book preloaded
func (r *BorrowingRepository) List(ctx context.Context, filter BorrowingFilter, offset, limit int) ([]*models.Borrowing, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Borrowing{})

	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter.Status {
	case models.BorrowingStatusOverdue:
		query = query.Where("status = ? AND due_date < ?", models.BorrowingStatusBorrowed, today)
	case models.BorrowingStatusBorrowed:
		query = query.Where("status = ? AND due_date >= ?", models.BorrowingStatusBorrowed, today)
	case models.BorrowingStatusReturned:
		query = query.Where("status = ?", models.BorrowingStatusReturned)
	}

	if filter.MemberID > 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.BookID > 0 {
		query = query.Where("book_id = ?", filter.BookID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var borrowings []*models.Borrowing
	err := query.
		Preload("Member").
		Preload("Book").
		Order("borrow_date DESC, borrowing_id DESC").
		Offset(offset).Limit(limit).
		Find(&borrowings).Error
	if err != nil {
		return nil, 0, err
	}

	return borrowings, total, nil
}

// ListOverdue lists open borrowings past due as of now, oldest due
// first, with member and book preloaded
func (r *BorrowingRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Borrowing, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var borrowings []*models.Borrowing
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Book").
		Where("status = ? AND due_date < ?", models.BorrowingStatusBorrowed, today).
		Order("due_date ASC, borrowing_id ASC").
		Find(&borrowings).Error
	if err != nil {
		return nil, err
	}
	return borrowings, nil
}

// CountOpenByMember counts open borrowings for a member
func (r *BorrowingRepository) CountOpenByMember(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Borrowing{}).
		Where("member_id = ? AND status = ?", memberID, models.BorrowingStatusBorrowed).
		Count(&count).Error
	return count, err
}
