package services_test

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ListBookViews_ResolvesNamesAndOrdersByTitle(t *testing.T) {
	// setup: arrange through the write side, read through the views
	db := newTestDB(t)
	svc := newQueryService(db)
	ctx := context.Background()

	category := givenCategory(t, db, "Science Fiction")
	leGuin := givenAuthor(t, db, "Ursula", "Le Guin")

	_, err := newCatalogService(db).CreateBook(ctx, &services.CreateBookInput{
		ISBN:        "9780060512750",
		Title:       "The Dispossessed",
		TotalCopies: 2,
		CategoryID:  &category.CategoryID,
		AuthorIDs:   []uint{leGuin.AuthorID},
	})
	require.NoError(t, err)
	givenBook(t, db, "Dune", "9780441172719", 1, 1)

	// act
	views, total, err := svc.ListBookViews(ctx, repositories.BookFilter{}, 0, 20)

	// assert
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, views, 2)

	assert.Equal(t, "Dune", views[0].Title)
	assert.Equal(t, "", views[0].CategoryName)
	assert.Empty(t, views[0].Authors)

	assert.Equal(t, "The Dispossessed", views[1].Title)
	assert.Equal(t, "Science Fiction", views[1].CategoryName)
	assert.Equal(t, []string{"Ursula Le Guin"}, views[1].Authors)
}

func Test_ListBookViews_AppliesFilters(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)
	ctx := context.Background()

	fiction := givenCategory(t, db, "Science Fiction")
	history := givenCategory(t, db, "History")

	dune := &models.Book{ISBN: "9780441172719", Title: "Dune", TotalCopies: 1, AvailableCopies: 0, CategoryID: &fiction.CategoryID}
	require.NoError(t, db.Create(dune).Error)
	sapiens := &models.Book{ISBN: "9780062316097", Title: "Sapiens", TotalCopies: 2, AvailableCopies: 2, CategoryID: &history.CategoryID}
	require.NoError(t, db.Create(sapiens).Error)

	// available only
	views, total, err := svc.ListBookViews(ctx, repositories.BookFilter{AvailableOnly: true}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)
	assert.Equal(t, "Sapiens", views[0].Title)

	// search by title fragment
	views, _, err = svc.ListBookViews(ctx, repositories.BookFilter{Search: "une"}, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Dune", views[0].Title)

	// category
	views, _, err = svc.ListBookViews(ctx, repositories.BookFilter{CategoryID: history.CategoryID}, 0, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Sapiens", views[0].Title)
}

func Test_ListMemberViews_CountsAllTimeBorrowings(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)

	book := givenBook(t, db, "Dune", "9780441172719", 5, 5)
	smith := givenMember(t, db, "Alice", "Smith", "alice@example.com", models.MemberStatusActive)
	givenMember(t, db, "Bob", "Jones", "bob@example.com", models.MemberStatusActive)

	returnDate := daysFromNow(-1)
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: smith.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-20), DueDate: daysFromNow(-6),
		ReturnDate: &returnDate, Status: models.BorrowingStatusReturned,
	})
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: smith.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-3), DueDate: daysFromNow(11),
	})

	// act
	views, total, err := svc.ListMemberViews(context.Background(), 0, 20)

	// assert
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, views, 2)

	assert.Equal(t, "Bob Jones", views[0].Name)
	assert.EqualValues(t, 0, views[0].TotalBorrowings)

	assert.Equal(t, "Alice Smith", views[1].Name)
	assert.EqualValues(t, 2, views[1].TotalBorrowings, "returned borrowings still count")
}

func Test_ListBorrowingViews_DerivesStatusAndOrdersNewestFirst(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)

	book := givenBook(t, db, "Dune", "9780441172719", 5, 5)
	member := givenMember(t, db, "Ada", "Lovelace", "ada@example.com", models.MemberStatusActive)

	returnDate := daysFromNow(-8)
	returned := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-30), DueDate: daysFromNow(-16),
		ReturnDate: &returnDate, Status: models.BorrowingStatusReturned,
	})
	overdue := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-20), DueDate: daysFromNow(-6),
	})
	current := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-2), DueDate: daysFromNow(12),
	})

	// act
	views, total, err := svc.ListBorrowingViews(context.Background(), repositories.BorrowingFilter{}, 0, 20)

	// assert
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, views, 3)

	assert.Equal(t, current.BorrowingID, views[0].BorrowingID)
	assert.Equal(t, models.BorrowingStatusBorrowed, views[0].Status)
	assert.Equal(t, overdue.BorrowingID, views[1].BorrowingID)
	assert.Equal(t, models.BorrowingStatusOverdue, views[1].Status, "open borrowings past due read as overdue")
	assert.Equal(t, returned.BorrowingID, views[2].BorrowingID)
	assert.Equal(t, models.BorrowingStatusReturned, views[2].Status)

	assert.Equal(t, "Ada Lovelace", views[0].MemberName)
	assert.Equal(t, "Dune", views[0].BookTitle)
	assert.Equal(t, "9780441172719", views[0].ISBN)
}

func Test_ListBorrowingViews_FiltersByDerivedStatus(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)

	book := givenBook(t, db, "Dune", "9780441172719", 5, 5)
	member := givenMember(t, db, "Ada", "Lovelace", "ada@example.com", models.MemberStatusActive)

	returnDate := daysFromNow(-8)
	returned := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-30), DueDate: daysFromNow(-16),
		ReturnDate: &returnDate, Status: models.BorrowingStatusReturned,
	})
	overdue := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-20), DueDate: daysFromNow(-6),
	})
	current := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-2), DueDate: daysFromNow(12),
	})

	now := time.Now()
	tests := []struct {
		status string
		wantID uint
	}{
		{models.BorrowingStatusBorrowed, current.BorrowingID},
		{models.BorrowingStatusOverdue, overdue.BorrowingID},
		{models.BorrowingStatusReturned, returned.BorrowingID},
	}

	// act + assert: the three filters partition the ledger
	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			views, total, err := svc.ListBorrowingViews(context.Background(),
				repositories.BorrowingFilter{Status: tc.status, Now: now}, 0, 20)
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, views, 1)
			assert.Equal(t, tc.wantID, views[0].BorrowingID)
			assert.Equal(t, tc.status, views[0].Status)
		})
	}
}

func Test_ListBorrowingViews_FiltersByMemberAndBook(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)
	ctx := context.Background()

	dune := givenBook(t, db, "Dune", "9780441172719", 5, 5)
	sapiens := givenBook(t, db, "Sapiens", "9780062316097", 3, 3)
	ada := givenMember(t, db, "Ada", "Lovelace", "ada@example.com", models.MemberStatusActive)
	alan := givenMember(t, db, "Alan", "Turing", "alan@example.com", models.MemberStatusActive)

	givenBorrowing(t, db, &models.Borrowing{MemberID: ada.MemberID, BookID: dune.BookID, BorrowDate: daysFromNow(-2), DueDate: daysFromNow(12)})
	givenBorrowing(t, db, &models.Borrowing{MemberID: alan.MemberID, BookID: sapiens.BookID, BorrowDate: daysFromNow(-1), DueDate: daysFromNow(13)})

	// act + assert
	views, total, err := svc.ListBorrowingViews(ctx, repositories.BorrowingFilter{MemberID: ada.MemberID}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)
	assert.Equal(t, "Ada Lovelace", views[0].MemberName)

	views, total, err = svc.ListBorrowingViews(ctx, repositories.BorrowingFilter{BookID: sapiens.BookID}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, views, 1)
	assert.Equal(t, "Sapiens", views[0].BookTitle)
}

func Test_GetBorrowingView_When_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := newQueryService(db)

	_, err := svc.GetBorrowingView(context.Background(), 4242)

	assert.ErrorIs(t, err, domain.ErrBorrowingNotFound)
}

func Test_OverdueReport_ListsOpenPastDueOldestFirst(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newQueryService(db)

	book := givenBook(t, db, "Dune", "9780441172719", 5, 5)
	member := givenMember(t, db, "Ada", "Lovelace", "ada@example.com", models.MemberStatusActive)

	lateFive := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-19), DueDate: daysFromNow(-5),
	})
	lateTwo := givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-16), DueDate: daysFromNow(-2),
	})
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-1), DueDate: daysFromNow(13),
	})
	returnDate := daysFromNow(-10)
	givenBorrowing(t, db, &models.Borrowing{
		MemberID: member.MemberID, BookID: book.BookID,
		BorrowDate: daysFromNow(-40), DueDate: daysFromNow(-26),
		ReturnDate: &returnDate, Status: models.BorrowingStatusReturned,
	})

	// act
	report, err := svc.OverdueReport(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, report, 2, "only open borrowings past due belong in the report")

	assert.Equal(t, lateFive.BorrowingID, report[0].BorrowingID)
	assert.Equal(t, 5, report[0].DaysOverdue)
	assert.Equal(t, "Ada Lovelace", report[0].MemberName)
	assert.Equal(t, "ada@example.com", report[0].MemberEmail)
	assert.Equal(t, "Dune", report[0].BookTitle)

	assert.Equal(t, lateTwo.BorrowingID, report[1].BorrowingID)
	assert.Equal(t, 2, report[1].DaysOverdue)
}
