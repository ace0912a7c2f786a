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

// CatalogService handles book, author and category business logic
type CatalogService struct {
	bookRepo     *repositories.BookRepository
	authorRepo   *repositories.AuthorRepository
	categoryRepo *repositories.CategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	bookRepo *repositories.BookRepository,
	authorRepo *repositories.AuthorRepository,
	categoryRepo *repositories.CategoryRepository,
) *CatalogService {
	return &CatalogService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	ISBN            string `json:"isbn" validate:"required"`
	Title           string `json:"title" validate:"required"`
	PublicationYear int    `json:"publication_year,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	TotalCopies     int    `json:"total_copies,omitempty"`
	AvailableCopies *int   `json:"available_copies,omitempty"`
	CategoryID      *uint  `json:"category_id,omitempty"`
	AuthorIDs       []uint `json:"author_ids,omitempty"`
}

// CreateBook registers a new title. Available copies default to the
// total when omitted and may never exceed it.
func (s *CatalogService) CreateBook(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	if input.ISBN == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrValidation)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	totalCopies := input.TotalCopies
	if totalCopies == 0 {
		totalCopies = 1
	}
	if totalCopies < 0 {
		return nil, fmt.Errorf("%w: total_copies must not be negative", domain.ErrValidation)
	}

	availableCopies := totalCopies
	if input.AvailableCopies != nil {
		availableCopies = *input.AvailableCopies
	}
	if availableCopies < 0 {
		return nil, fmt.Errorf("%w: available_copies must not be negative", domain.ErrValidation)
	}
	if availableCopies > totalCopies {
		return nil, fmt.Errorf("%w: available_copies must not exceed total_copies", domain.ErrValidation)
	}

	if exists, err := s.bookRepo.ExistsByISBN(ctx, input.ISBN); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicateISBN
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	var authors []models.Author
	if len(input.AuthorIDs) > 0 {
		found, err := s.authorRepo.GetByIDs(ctx, input.AuthorIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(uniqueIDs(input.AuthorIDs)) {
			return nil, domain.ErrAuthorNotFound
		}
		authors = found
	}

	book := &models.Book{
		ISBN:            input.ISBN,
		Title:           input.Title,
		PublicationYear: input.PublicationYear,
		Publisher:       input.Publisher,
		TotalCopies:     totalCopies,
		AvailableCopies: availableCopies,
		CategoryID:      input.CategoryID,
		Authors:         authors,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		// Races past the pre-check land here via the driver
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateISBN
		}
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, book.BookID)
}

// GetBook gets a book by ID with category and authors
func (s *CatalogService) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// CreateAuthorInput represents create author input
type CreateAuthorInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	BirthDate   string `json:"birth_date,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// CreateAuthor registers a new author
func (s *CatalogService) CreateAuthor(ctx context.Context, input *CreateAuthorInput) (*models.Author, error) {
	if input.FirstName == "" {
		return nil, fmt.Errorf("%w: first_name is required", domain.ErrValidation)
	}
	if input.LastName == "" {
		return nil, fmt.Errorf("%w: last_name is required", domain.ErrValidation)
	}

	author := &models.Author{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Nationality: input.Nationality,
	}

	if input.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", domain.ErrValidation)
		}
		author.BirthDate = &birthDate
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// GetAuthor gets an author by ID
func (s *CatalogService) GetAuthor(ctx context.Context, id uint) (*models.Author, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, err
	}
	return author, nil
}

// ListAuthors lists authors ordered by name
func (s *CatalogService) ListAuthors(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	return s.authorRepo.List(ctx, offset, limit)
}

// CreateCategoryInput represents create category input
type CreateCategoryInput struct {
	CategoryName string `json:"category_name" validate:"required"`
	Description  string `json:"description,omitempty"`
}

// CreateCategory registers a new category with a unique name
func (s *CatalogService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*models.Category, error) {
	if input.CategoryName == "" {
		return nil, fmt.Errorf("%w: category_name is required", domain.ErrValidation)
	}

	if exists, err := s.categoryRepo.ExistsByName(ctx, input.CategoryName); err != nil {
		return nil, err
	} else if exists {
		return nil, domain.ErrDuplicateCategory
	}

	category := &models.Category{
		CategoryName: input.CategoryName,
		Description:  input.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, err
	}
	return category, nil
}

// GetCategory gets a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListCategories lists all categories ordered by name
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// uniqueIDs drops duplicate IDs so the author existence check
// compares like with like
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
