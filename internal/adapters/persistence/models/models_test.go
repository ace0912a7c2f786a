package models_test

import (
	"testing"
	"time"

	"libraryhub/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
)

func Test_Borrowing_DerivedStatus(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	returnDate := now.AddDate(0, 0, -2)

	tests := []struct {
		name            string
		borrowing       models.Borrowing
		wantStatus      string
		wantDaysOverdue int
	}{
		{
			name:       "due in the future",
			borrowing:  models.Borrowing{Status: models.BorrowingStatusBorrowed, DueDate: now.AddDate(0, 0, 4)},
			wantStatus: models.BorrowingStatusBorrowed,
		},
		{
			name:       "due earlier the same day",
			borrowing:  models.Borrowing{Status: models.BorrowingStatusBorrowed, DueDate: now.Add(-6 * time.Hour)},
			wantStatus: models.BorrowingStatusBorrowed,
		},
		{
			name:            "one day past due",
			borrowing:       models.Borrowing{Status: models.BorrowingStatusBorrowed, DueDate: now.AddDate(0, 0, -1)},
			wantStatus:      models.BorrowingStatusOverdue,
			wantDaysOverdue: 1,
		},
		{
			name:            "three days past due",
			borrowing:       models.Borrowing{Status: models.BorrowingStatusBorrowed, DueDate: now.AddDate(0, 0, -3)},
			wantStatus:      models.BorrowingStatusOverdue,
			wantDaysOverdue: 3,
		},
		{
			name: "returned borrowings are never overdue",
			borrowing: models.Borrowing{
				Status:     models.BorrowingStatusReturned,
				DueDate:    now.AddDate(0, 0, -7),
				ReturnDate: &returnDate,
			},
			wantStatus: models.BorrowingStatusReturned,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, tc.borrowing.EffectiveStatus(now))
			assert.Equal(t, tc.wantDaysOverdue, tc.borrowing.DaysOverdue(now))
			assert.Equal(t, tc.wantStatus == models.BorrowingStatusOverdue, tc.borrowing.IsOverdue(now))
		})
	}
}

func Test_Borrowing_ToView_ResolvesNames(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	borrowing := models.Borrowing{
		BorrowingID: 3,
		MemberID:    1,
		BookID:      2,
		BorrowDate:  now.AddDate(0, 0, -20),
		DueDate:     now.AddDate(0, 0, -6),
		Status:      models.BorrowingStatusBorrowed,
		Member:      &models.Member{FirstName: "Ada", LastName: "Lovelace"},
		Book:        &models.Book{Title: "Dune", ISBN: "9780441172719"},
	}

	view := borrowing.ToView(now)

	assert.Equal(t, "Ada Lovelace", view.MemberName)
	assert.Equal(t, "Dune", view.BookTitle)
	assert.Equal(t, "9780441172719", view.ISBN)
	assert.Equal(t, models.BorrowingStatusOverdue, view.Status)
}

func Test_Book_ToView(t *testing.T) {
	book := models.Book{
		BookID:          1,
		ISBN:            "9780441478125",
		Title:           "The Left Hand of Darkness",
		TotalCopies:     3,
		AvailableCopies: 2,
		Category:        &models.Category{CategoryName: "Science Fiction"},
		Authors:         []models.Author{{FirstName: "Ursula", LastName: "Le Guin"}},
	}

	view := book.ToView()

	assert.Equal(t, "Science Fiction", view.CategoryName)
	assert.Equal(t, []string{"Ursula Le Guin"}, view.Authors)

	bare := models.Book{BookID: 2, ISBN: "9780441172719", Title: "Dune"}
	bareView := bare.ToView()

	assert.Equal(t, "", bareView.CategoryName)
	assert.NotNil(t, bareView.Authors, "authors must encode as an empty array, not null")
	assert.Empty(t, bareView.Authors)
}
