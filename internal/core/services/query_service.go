package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"

	"gorm.io/gorm"
)

// QueryService serves the denormalized read views. It never writes,
// derived values like overdue are computed per request.
type QueryService struct {
	db            *gorm.DB
	bookRepo      *repositories.BookRepository
	borrowingRepo *repositories.BorrowingRepository
}

// NewQueryService creates a new query service
func NewQueryService(db *gorm.DB, bookRepo *repositories.BookRepository, borrowingRepo *repositories.BorrowingRepository) *QueryService {
	return &QueryService{
		db:            db,
		bookRepo:      bookRepo,
		borrowingRepo: borrowingRepo,
	}
}

// ListBookViews lists books ordered by title with category and
// author names resolved
func (s *QueryService) ListBookViews(ctx context.Context, filter repositories.BookFilter, offset, limit int) ([]*models.BookView, int64, error) {
	books, total, err := s.bookRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.BookView, 0, len(books))
	for _, book := range books {
		views = append(views, book.ToView())
	}
	return views, total, nil
}

// ListMemberViews lists members ordered by last then first name with
// their all-time borrowing counts
func (s *QueryService) ListMemberViews(ctx context.Context, offset, limit int) ([]*models.MemberView, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		MemberID        uint
		FirstName       string
		LastName        string
		Email           string
		Phone           string
		Address         string
		Status          string
		MembershipDate  time.Time
		TotalBorrowings int64
	}

	// Grouping by every selected column keeps the query valid under
	// MySQL's ONLY_FULL_GROUP_BY as well as Postgres and SQLite.
	err := s.db.WithContext(ctx).
		Table("members").
		Select("members.member_id, members.first_name, members.last_name, members.email, members.phone, members.address, members.status, members.membership_date, COUNT(borrowings.borrowing_id) AS total_borrowings").
		Joins("LEFT JOIN borrowings ON borrowings.member_id = members.member_id").
		Group("members.member_id, members.first_name, members.last_name, members.email, members.phone, members.address, members.status, members.membership_date").
		Order("members.last_name ASC, members.first_name ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]*models.MemberView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &models.MemberView{
			MemberID:        row.MemberID,
			Name:            row.FirstName + " " + row.LastName,
			Email:           row.Email,
			Phone:           row.Phone,
			Address:         row.Address,
			Status:          row.Status,
			MembershipDate:  row.MembershipDate,
			TotalBorrowings: row.TotalBorrowings,
		})
	}
	return views, total, nil
}

// ListBorrowingViews lists borrowings newest first with member and
// book names and the derived status
func (s *QueryService) ListBorrowingViews(ctx context.Context, filter repositories.BorrowingFilter, offset, limit int) ([]*models.BorrowingView, int64, error) {
	borrowings, total, err := s.borrowingRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	views := make([]*models.BorrowingView, 0, len(borrowings))
	for _, borrowing := range borrowings {
		if borrowing.Member == nil || borrowing.Book == nil {
			return nil, 0, fmt.Errorf("%w: borrowing %d references a missing member or book",
				domain.ErrInternalInconsistency, borrowing.BorrowingID)
		}
		views = append(views, borrowing.ToView(now))
	}
	return views, total, nil
}

// GetBorrowingView gets one borrowing with names and derived status
func (s *QueryService) GetBorrowingView(ctx context.Context, id uint) (*models.BorrowingView, error) {
	borrowing, err := s.borrowingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBorrowingNotFound
		}
		return nil, err
	}
	if borrowing.Member == nil || borrowing.Book == nil {
		return nil, fmt.Errorf("%w: borrowing %d references a missing member or book",
			domain.ErrInternalInconsistency, borrowing.BorrowingID)
	}
	return borrowing.ToView(time.Now()), nil
}

// OverdueReport lists open borrowings past due, oldest due first
func (s *QueryService) OverdueReport(ctx context.Context) ([]*models.OverdueView, error) {
	now := time.Now()
	borrowings, err := s.borrowingRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	report := make([]*models.OverdueView, 0, len(borrowings))
	for _, borrowing := range borrowings {
		if borrowing.Member == nil || borrowing.Book == nil {
			return nil, fmt.Errorf("%w: borrowing %d references a missing member or book",
				domain.ErrInternalInconsistency, borrowing.BorrowingID)
		}
		report = append(report, &models.OverdueView{
			BorrowingID: borrowing.BorrowingID,
			MemberName:  borrowing.Member.FullName(),
			MemberEmail: borrowing.Member.Email,
			BookTitle:   borrowing.Book.Title,
			ISBN:        borrowing.Book.ISBN,
			BorrowDate:  borrowing.BorrowDate,
			DueDate:     borrowing.DueDate,
			DaysOverdue: borrowing.DaysOverdue(now),
		})
	}
	return report, nil
}
