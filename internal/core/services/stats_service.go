package services

import (
	"context"
	"time"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// StatsService computes library-wide aggregates
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Stats is a point-in-time aggregate snapshot. TotalMembers counts
// active members only, mirroring who can actually borrow.
type Stats struct {
	TotalBooks       int64     `json:"total_books"`
	TotalAuthors     int64     `json:"total_authors"`
	TotalMembers     int64     `json:"total_members"`
	ActiveBorrowings int64     `json:"active_borrowings"`
	TotalCopies      int64     `json:"total_copies"`
	AvailableCopies  int64     `json:"available_copies"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// ComputeStats computes the snapshot on demand, nothing is cached or
// persisted. Any store error is propagated.
func (s *StatsService) ComputeStats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	stats := &Stats{}

	if err := db.Model(&models.Book{}).Count(&stats.TotalBooks).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Author{}).Count(&stats.TotalAuthors).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Member{}).
		Where("status = ?", models.MemberStatusActive).
		Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Borrowing{}).
		Where("status = ?", models.BorrowingStatusBorrowed).
		Count(&stats.ActiveBorrowings).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Book{}).
		Select("COALESCE(SUM(total_copies), 0)").
		Scan(&stats.TotalCopies).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Book{}).
		Select("COALESCE(SUM(available_copies), 0)").
		Scan(&stats.AvailableCopies).Error; err != nil {
		return nil, err
	}

	stats.GeneratedAt = time.Now().UTC()
	return stats, nil
}
