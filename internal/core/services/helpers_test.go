package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated sqlite database for one test, migrated
// and configured the same way as the real store. A single connection
// makes concurrent transactions queue instead of tripping sqlite's
// file locking.
func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "library.db") + "?_busy_timeout=5000&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newCatalogService(db *gorm.DB) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewBookRepository(db),
		repositories.NewAuthorRepository(db),
		repositories.NewCategoryRepository(db),
	)
}

func newMembershipService(db *gorm.DB) *services.MembershipService {
	return services.NewMembershipService(repositories.NewMemberRepository(db))
}

func newQueryService(db *gorm.DB) *services.QueryService {
	return services.NewQueryService(db,
		repositories.NewBookRepository(db),
		repositories.NewBorrowingRepository(db),
	)
}

func givenCategory(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{CategoryName: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func givenAuthor(t testing.TB, db *gorm.DB, firstName, lastName string) *models.Author {
	t.Helper()
	author := &models.Author{FirstName: firstName, LastName: lastName}
	require.NoError(t, db.Create(author).Error)
	return author
}

func givenBook(t testing.TB, db *gorm.DB, title, isbn string, total, available int) *models.Book {
	t.Helper()
	book := &models.Book{
		ISBN:            isbn,
		Title:           title,
		TotalCopies:     total,
		AvailableCopies: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func givenMember(t testing.TB, db *gorm.DB, firstName, lastName, email, status string) *models.Member {
	t.Helper()
	member := &models.Member{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		MembershipDate: time.Now(),
		Status:         status,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

// givenBorrowing writes a ledger row directly, bypassing the lending
// service, so tests can shape dates and status freely.
func givenBorrowing(t testing.TB, db *gorm.DB, b *models.Borrowing) *models.Borrowing {
	t.Helper()
	if b.Status == "" {
		b.Status = models.BorrowingStatusBorrowed
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func daysFromNow(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

// assertCopyInvariant checks that a book whose copies all started on
// the shelf keeps its available count in [0, total] with the gap
// equal to its open borrowings.
func assertCopyInvariant(t testing.TB, db *gorm.DB, bookID uint) {
	t.Helper()

	var book models.Book
	require.NoError(t, db.First(&book, bookID).Error)

	var open int64
	require.NoError(t, db.Model(&models.Borrowing{}).
		Where("book_id = ? AND status = ?", bookID, models.BorrowingStatusBorrowed).
		Count(&open).Error)

	require.GreaterOrEqual(t, book.AvailableCopies, 0)
	require.LessOrEqual(t, book.AvailableCopies, book.TotalCopies)
	require.EqualValues(t, book.TotalCopies-book.AvailableCopies, open)
}
