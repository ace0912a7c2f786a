package services_test

import (
	"context"
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ComputeStats_CountsTheWholeLibrary(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := services.NewStatsService(db)

	givenAuthor(t, db, "Ursula", "Le Guin")
	givenAuthor(t, db, "Frank", "Herbert")

	dune := givenBook(t, db, "Dune", "9780441172719", 5, 3)
	givenBook(t, db, "Sapiens", "9780062316097", 2, 0)
	givenBook(t, db, "The Dispossessed", "9780060512750", 1, 1)

	ada := givenMember(t, db, "Ada", "Lovelace", "ada@example.com", models.MemberStatusActive)
	givenMember(t, db, "Alan", "Turing", "alan@example.com", models.MemberStatusActive)
	givenMember(t, db, "Grace", "Hopper", "grace@example.com", models.MemberStatusInactive)

	returnDate := daysFromNow(-1)
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: ada.MemberID, BookID: dune.BookID,
		BorrowDate: daysFromNow(-3), DueDate: daysFromNow(11),
	})
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: ada.MemberID, BookID: dune.BookID,
		BorrowDate: daysFromNow(-6), DueDate: daysFromNow(8),
	})
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: ada.MemberID, BookID: dune.BookID,
		BorrowDate: daysFromNow(-30), DueDate: daysFromNow(-16),
		ReturnDate: &returnDate, Status: models.BorrowingStatusReturned,
	})

	// act
	stats, err := svc.ComputeStats(context.Background())

	// assert
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalBooks)
	assert.EqualValues(t, 2, stats.TotalAuthors)
	assert.EqualValues(t, 2, stats.TotalMembers, "inactive members do not count")
	assert.EqualValues(t, 2, stats.ActiveBorrowings, "returned borrowings do not count")
	assert.EqualValues(t, 8, stats.TotalCopies)
	assert.EqualValues(t, 4, stats.AvailableCopies)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func Test_ComputeStats_OnEmptyLibrary(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewStatsService(db)

	stats, err := svc.ComputeStats(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.TotalBooks)
	assert.EqualValues(t, 0, stats.TotalMembers)
	assert.EqualValues(t, 0, stats.TotalCopies, "empty sums must read as zero")
	assert.EqualValues(t, 0, stats.AvailableCopies)
}
