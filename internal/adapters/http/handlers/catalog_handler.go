package handlers

import (
	"errors"
	"strconv"
	"strings"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/pagination"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles book, author and category endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
	queryService   *services.QueryService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService, queryService *services.QueryService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		queryService:   queryService,
	}
}

// CreateBookRequest represents create book request
type CreateBookRequest struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	TotalCopies     int    `json:"total_copies,omitempty"`
	AvailableCopies *int   `json:"available_copies,omitempty"`
	CategoryID      *uint  `json:"category_id,omitempty"`
	AuthorIDs       []uint `json:"author_ids,omitempty"`
}

// CreateBook creates a new book
// @Summary Create book
// @Description Register a new book in the catalog (staff only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *CatalogHandler) CreateBook(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.ISBN) == "" {
		return response.BadRequest(c, "ISBN is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.BadRequest(c, "Title is required")
	}

	input := &services.CreateBookInput{
		ISBN:            strings.TrimSpace(req.ISBN),
		Title:           strings.TrimSpace(req.Title),
		PublicationYear: req.PublicationYear,
		Publisher:       strings.TrimSpace(req.Publisher),
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.AvailableCopies,
		CategoryID:      req.CategoryID,
		AuthorIDs:       req.AuthorIDs,
	}

	book, err := h.catalogService.CreateBook(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicateISBN):
			return response.Conflict(c, domain.KindDuplicateKey, "A book with this ISBN already exists")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return response.NotFound(c, "Category not found")
		case errors.Is(err, domain.ErrAuthorNotFound):
			return response.NotFound(c, "Author not found")
		default:
			return response.InternalServerError(c, "Failed to create book")
		}
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book.ToView(),
	})
}

// ListBooks lists catalog books
// @Summary List books
// @Description List books ordered by title with author and category names
// @Tags Catalog
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Match against title or ISBN"
// @Param category_id query int false "Filter by category ID"
// @Param available query bool false "Only books with available copies"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *CatalogHandler) ListBooks(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.BookFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		id, _ := strconv.ParseUint(categoryID, 10, 32)
		filter.CategoryID = uint(id)
	}

	if c.Query("available") == "true" {
		filter.AvailableOnly = true
	}

	books, total, err := h.queryService.ListBookViews(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// GetBook gets a book by ID
// @Summary Get book by ID
// @Description Get a specific book with its authors and category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *CatalogHandler) GetBook(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.catalogService.GetBook(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book.ToView(),
	})
}

// CreateAuthorRequest represents create author request
type CreateAuthorRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	BirthDate   string `json:"birth_date,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// CreateAuthor creates a new author
// @Summary Create author
// @Description Register a new author (staff only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAuthorRequest true "Author data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /authors [post]
func (h *CatalogHandler) CreateAuthor(c *fiber.Ctx) error {
	var req CreateAuthorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.FirstName) == "" {
		return response.BadRequest(c, "First name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return response.BadRequest(c, "Last name is required")
	}

	input := &services.CreateAuthorInput{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		BirthDate:   strings.TrimSpace(req.BirthDate),
		Nationality: strings.TrimSpace(req.Nationality),
	}

	author, err := h.catalogService.CreateAuthor(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create author")
	}

	return response.Created(c, "Author created successfully", fiber.Map{
		"author": author,
	})
}

// ListAuthors lists authors
// @Summary List authors
// @Description List authors ordered by last name, first name
// @Tags Catalog
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /authors [get]
func (h *CatalogHandler) ListAuthors(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	authors, total, err := h.catalogService.ListAuthors(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list authors")
	}

	return response.Success(c, "Authors retrieved successfully", pagination.NewResponse(authors, params, total))
}

// GetAuthor gets an author by ID
// @Summary Get author by ID
// @Description Get a specific author
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid author ID")
	}

	author, err := h.catalogService.GetAuthor(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAuthorNotFound) {
			return response.NotFound(c, "Author not found")
		}
		return response.InternalServerError(c, "Failed to get author")
	}

	return response.Success(c, "Author retrieved successfully", fiber.Map{
		"author": author,
	})
}

// CreateCategoryRequest represents create category request
type CreateCategoryRequest struct {
	CategoryName string `json:"category_name"`
	Description  string `json:"description,omitempty"`
}

// CreateCategory creates a new category
// @Summary Create category
// @Description Register a new category with a unique name (staff only)
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateCategoryRequest true "Category data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.CategoryName) == "" {
		return response.BadRequest(c, "Category name is required")
	}

	input := &services.CreateCategoryInput{
		CategoryName: strings.TrimSpace(req.CategoryName),
		Description:  strings.TrimSpace(req.Description),
	}

	category, err := h.catalogService.CreateCategory(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicateCategory):
			return response.Conflict(c, domain.KindDuplicateKey, "A category with this name already exists")
		default:
			return response.InternalServerError(c, "Failed to create category")
		}
	}

	return response.Created(c, "Category created successfully", fiber.Map{
		"category": category,
	})
}

// ListCategories lists all categories
// @Summary List categories
// @Description List all categories ordered by name
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, "Categories retrieved successfully", fiber.Map{
		"categories": categories,
	})
}

// GetCategory gets a category by ID
// @Summary Get category by ID
// @Description Get a specific category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	category, err := h.catalogService.GetCategory(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to get category")
	}

	return response.Success(c, "Category retrieved successfully", fiber.Map{
		"category": category,
	})
}
