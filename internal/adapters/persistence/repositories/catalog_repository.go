package repositories

import (
	"context"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AuthorRepository handles author data access
type AuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create creates a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID gets an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByIDs gets authors by a set of IDs
func (r *AuthorRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Author, error) {
	var authors []models.Author
	err := r.db.WithContext(ctx).Where("author_id IN ?", ids).Find(&authors).Error
	return authors, err
}

// List lists authors ordered by name with pagination
func (r *AuthorRepository) List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	var authors []*models.Author
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("last_name ASC, first_name ASC").
		Offset(offset).Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// CategoryRepository handles category data access
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// GetByID gets a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List lists all categories ordered by name
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Order("category_name ASC").Find(&categories).Error
	return categories, err
}

// ExistsByName checks if a category name is taken
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("category_name = ?", name).Count(&count).Error
	return count > 0, err
}

// BookRepository handles book data access
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create creates a new book with its author associations. Authors
// must already exist, only join rows are written for them.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Omit("Authors.*").Create(book).Error
}

// GetByID gets a book by ID with category and authors preloaded
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("authors.last_name ASC, authors.first_name ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ExistsByISBN checks if an ISBN is already registered
func (r *BookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// BookFilter narrows book listings
type BookFilter struct {
	Search        string
	CategoryID    uint
	AvailableOnly bool
}

// List lists books ordered by title with category and authors
// preloaded, filtered and paginated
func (r *BookRepository) List(ctx context.Context, filter BookFilter, offset, limit int) ([]*models.Book, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR isbn LIKE ?", pattern, pattern)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("available_copies > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []*models.Book
	err := query.
		Preload("Category").
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("authors.last_name ASC, authors.first_name ASC")
		}).
		Order("title ASC").
		Offset(offset).Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}
