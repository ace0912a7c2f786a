package services

import (
	"context"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance: a daily overdue summary
// and expired refresh token cleanup. The sweep is read only, overdue
// stays derived from due_date and is never written back.
type CronService struct {
	cron          *cron.Cron
	borrowingRepo *repositories.BorrowingRepository
	tokenRepo     repositories.RefreshTokenRepository
	overdueSpec   string
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB, cfg *config.Config) *CronService {
	return &CronService{
		cron:          cron.New(),
		borrowingRepo: repositories.NewBorrowingRepository(db),
		tokenRepo:     repositories.NewRefreshTokenRepository(db),
		overdueSpec:   cfg.Lending.OverdueCron,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc(s.overdueSpec, s.overdueSweep); err != nil {
		log.Printf("⚠️ Overdue sweep not scheduled (bad spec '%s'): %v", s.overdueSpec, err)
	}

	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupExpiredTokens); err != nil {
		log.Printf("⚠️ Token cleanup not scheduled: %v", err)
	}

	s.cron.Start()
	log.Printf("🕒 Cron scheduler started [overdue sweep: %s]", s.overdueSpec)
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🕒 Cron scheduler stopped")
}

// overdueSweep logs the open borrowings currently past due
func (s *CronService) overdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	overdue, err := s.borrowingRepo.ListOverdue(ctx, now)
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("✅ Overdue sweep: nothing past due")
		return
	}

	log.Printf("⚠️ Overdue sweep: %d borrowings past due", len(overdue))
	for _, b := range overdue {
		memberEmail := "unknown"
		bookTitle := "unknown"
		if b.Member != nil {
			memberEmail = b.Member.Email
		}
		if b.Book != nil {
			bookTitle = b.Book.Title
		}
		log.Printf("   #%d %s -> %q due %s (%d days overdue)",
			b.BorrowingID, memberEmail, bookTitle,
			b.DueDate.Format("2006-01-02"), b.DaysOverdue(now))
	}
}

// cleanupExpiredTokens removes refresh tokens past their expiry
func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens cleaned up")
}
