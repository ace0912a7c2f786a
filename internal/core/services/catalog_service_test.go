package services_test

import (
	"context"
	"testing"
	"time"

	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateBook_DefaultsToOneCopy(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	book, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:  "9780132350884",
		Title: "Clean Code",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, book.TotalCopies)
	assert.Equal(t, 1, book.AvailableCopies)
}

func Test_CreateBook_AvailableDefaultsToTotal(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	book, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:        "9780201616224",
		Title:       "The Pragmatic Programmer",
		TotalCopies: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 5, book.AvailableCopies)
}

func Test_CreateBook_AcceptsZeroAvailableCopies(t *testing.T) {
	// all copies in repair is a legitimate catalog state
	db := newTestDB(t)
	svc := newCatalogService(db)

	zero := 0
	book, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:            "9780134190440",
		Title:           "The Go Programming Language",
		TotalCopies:     2,
		AvailableCopies: &zero,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, book.TotalCopies)
	assert.Equal(t, 0, book.AvailableCopies)
}

func Test_CreateBook_RejectsBadCopyCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	negative := -1
	three := 3

	tests := []struct {
		name  string
		input *services.CreateBookInput
	}{
		{"negative total", &services.CreateBookInput{ISBN: "9780000000001", Title: "Bad Total", TotalCopies: -2}},
		{"negative available", &services.CreateBookInput{ISBN: "9780000000002", Title: "Bad Available", TotalCopies: 2, AvailableCopies: &negative}},
		{"available above total", &services.CreateBookInput{ISBN: "9780000000003", Title: "Too Available", TotalCopies: 2, AvailableCopies: &three}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateBook(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func Test_CreateBook_RequiresISBNAndTitle(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, &services.CreateBookInput{Title: "No ISBN"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateBook(ctx, &services.CreateBookInput{ISBN: "9780000000004"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func Test_CreateBook_When_ISBNAlreadyRegistered(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, &services.CreateBookInput{
		ISBN:  "9780441478125",
		Title: "The Left Hand of Darkness",
	})
	require.NoError(t, err)

	_, err = svc.CreateBook(ctx, &services.CreateBookInput{
		ISBN:  "9780441478125",
		Title: "A Different Title",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func Test_CreateBook_AttachesCategoryAndAuthors(t *testing.T) {
	// setup
	db := newTestDB(t)
	svc := newCatalogService(db)

	category := givenCategory(t, db, "Science Fiction")
	leGuin := givenAuthor(t, db, "Ursula", "Le Guin")
	herbert := givenAuthor(t, db, "Frank", "Herbert")

	// act: a repeated author ID must not trip the existence check
	book, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:       "9780441013593",
		Title:      "Collected Classics",
		CategoryID: &category.CategoryID,
		AuthorIDs:  []uint{leGuin.AuthorID, herbert.AuthorID, leGuin.AuthorID},
	})

	// assert
	require.NoError(t, err)
	require.NotNil(t, book.Category)
	assert.Equal(t, "Science Fiction", book.Category.CategoryName)
	require.Len(t, book.Authors, 2)
	assert.Equal(t, "Frank Herbert", book.Authors[0].FullName())
	assert.Equal(t, "Ursula Le Guin", book.Authors[1].FullName())
}

func Test_CreateBook_When_CategoryDoesNotExist(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	missing := uint(4242)
	_, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:       "9780553293357",
		Title:      "Foundation",
		CategoryID: &missing,
	})

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func Test_CreateBook_When_AuthorDoesNotExist(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	known := givenAuthor(t, db, "Isaac", "Asimov")

	_, err := svc.CreateBook(context.Background(), &services.CreateBookInput{
		ISBN:      "9780553293357",
		Title:     "Foundation",
		AuthorIDs: []uint{known.AuthorID, 4242},
	})

	assert.ErrorIs(t, err, domain.ErrAuthorNotFound)
}

func Test_GetBook_When_Missing(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.GetBook(context.Background(), 4242)

	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func Test_CreateAuthor_ParsesBirthDate(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	author, err := svc.CreateAuthor(context.Background(), &services.CreateAuthorInput{
		FirstName:   "Ursula",
		LastName:    "Le Guin",
		BirthDate:   "1929-10-21",
		Nationality: "American",
	})

	require.NoError(t, err)
	require.NotNil(t, author.BirthDate)
	assert.Equal(t, 1929, author.BirthDate.Year())
	assert.Equal(t, time.October, author.BirthDate.Month())
}

func Test_CreateAuthor_When_BirthDateMalformed(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.CreateAuthor(context.Background(), &services.CreateAuthorInput{
		FirstName: "Ursula",
		LastName:  "Le Guin",
		BirthDate: "21-10-1929",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func Test_ListAuthors_OrdersByName(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	givenAuthor(t, db, "Ursula", "Le Guin")
	givenAuthor(t, db, "Isaac", "Asimov")
	givenAuthor(t, db, "Frank", "Herbert")

	authors, total, err := svc.ListAuthors(context.Background(), 0, 2)

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, authors, 2)
	assert.Equal(t, "Asimov", authors[0].LastName)
	assert.Equal(t, "Herbert", authors[1].LastName)
}

func Test_CreateCategory_When_NameAlreadyExists(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &services.CreateCategoryInput{CategoryName: "Science Fiction"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &services.CreateCategoryInput{CategoryName: "Science Fiction"})

	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
}

func Test_ListCategories_OrdersByName(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	givenCategory(t, db, "Science Fiction")
	givenCategory(t, db, "History")

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "History", categories[0].CategoryName)
	assert.Equal(t, "Science Fiction", categories[1].CategoryName)
}
