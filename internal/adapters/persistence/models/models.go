package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Staff Tables
// ============================================================

// User represents users table (library staff accounts)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FirstName string         `gorm:"size:50" json:"first_name"`
	LastName  string         `gorm:"size:50" json:"last_name"`
	Role      string         `gorm:"size:20;default:'LIBRARIAN'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Author represents authors table
type Author struct {
	AuthorID    uint       `gorm:"column:author_id;primaryKey" json:"author_id"`
	FirstName   string     `gorm:"size:50;not null" json:"first_name"`
	LastName    string     `gorm:"size:50;not null" json:"last_name"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Nationality string     `gorm:"size:50" json:"nationality,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Books []Book `gorm:"many2many:book_authors;foreignKey:AuthorID;joinForeignKey:AuthorID;references:BookID;joinReferences:BookID" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

// FullName returns the display name used in catalog views
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Category represents categories table
type Category struct {
	CategoryID   uint      `gorm:"column:category_id;primaryKey" json:"category_id"`
	CategoryName string    `gorm:"uniqueIndex;size:100;not null" json:"category_name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Book represents books table. AvailableCopies is only ever changed
// through conditional updates so it can never go below zero or above
// TotalCopies.
type Book struct {
	BookID          uint      `gorm:"column:book_id;primaryKey" json:"book_id"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	PublicationYear int       `json:"publication_year,omitempty"`
	Publisher       string    `gorm:"size:100" json:"publisher,omitempty"`
	// No gorm column defaults on the counters. GORM drops zero valued
	// fields with a default tag from inserts, which would turn a
	// legitimate zero available count into a one.
	TotalCopies     int       `gorm:"not null" json:"total_copies"`
	AvailableCopies int       `gorm:"not null" json:"available_copies"`
	CategoryID      *uint     `gorm:"column:category_id" json:"category_id,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Authors  []Author  `gorm:"many2many:book_authors;foreignKey:BookID;joinForeignKey:BookID;references:AuthorID;joinReferences:AuthorID" json:"authors,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// BookAuthor represents the book_authors join table
type BookAuthor struct {
	BookID   uint `gorm:"column:book_id;primaryKey" json:"book_id"`
	AuthorID uint `gorm:"column:author_id;primaryKey" json:"author_id"`
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

// ============================================================
// Membership Tables
// ============================================================

// Member statuses
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

// Member represents members table
type Member struct {
	MemberID       uint      `gorm:"column:member_id;primaryKey" json:"member_id"`
	FirstName      string    `gorm:"size:50;not null" json:"first_name"`
	LastName       string    `gorm:"size:50;not null" json:"last_name"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone          string    `gorm:"size:15" json:"phone,omitempty"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	MembershipDate time.Time `gorm:"type:date" json:"membership_date"`
	Status         string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Borrowings []Borrowing `gorm:"foreignKey:MemberID" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// FullName returns the display name used in lending views
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// IsActive reports whether the member may borrow
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// ============================================================
// Lending Tables
// ============================================================

// Borrowing statuses. Only borrowed and returned are persisted,
// overdue is derived from due_date at read time.
const (
	BorrowingStatusBorrowed = "borrowed"
	BorrowingStatusReturned = "returned"
	BorrowingStatusOverdue  = "overdue"
)

// Borrowing represents borrowings table, one loan of one copy
type Borrowing struct {
	BorrowingID uint       `gorm:"column:borrowing_id;primaryKey" json:"borrowing_id"`
	MemberID    uint       `gorm:"column:member_id;index;not null" json:"member_id"`
	BookID      uint       `gorm:"column:book_id;index;not null" json:"book_id"`
	BorrowDate  time.Time  `gorm:"type:date;not null" json:"borrow_date"`
	DueDate     time.Time  `gorm:"type:date;not null" json:"due_date"`
	ReturnDate  *time.Time `gorm:"type:date" json:"return_date,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'borrowed';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Borrowing) TableName() string {
	return "borrowings"
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOverdue reports whether an open borrowing is past its due date.
// Returned borrowings are never overdue.
func (b *Borrowing) IsOverdue(now time.Time) bool {
	if b.Status != BorrowingStatusBorrowed {
		return false
	}
	return startOfDay(b.DueDate).Before(startOfDay(now))
}

// EffectiveStatus returns the status reported to clients, with
// overdue derived for open borrowings past due.
func (b *Borrowing) EffectiveStatus(now time.Time) string {
	if b.IsOverdue(now) {
		return BorrowingStatusOverdue
	}
	return b.Status
}

// DaysOverdue returns whole days past due, zero when not overdue
func (b *Borrowing) DaysOverdue(now time.Time) int {
	if !b.IsOverdue(now) {
		return 0
	}
	return int(startOfDay(now).Sub(startOfDay(b.DueDate)).Hours() / 24)
}

// ============================================================
// Read View DTOs
// ============================================================

// BookView DTO with resolved category and author names
type BookView struct {
	BookID          uint     `json:"book_id"`
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	PublicationYear int      `json:"publication_year,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	TotalCopies     int      `json:"total_copies"`
	AvailableCopies int      `json:"available_copies"`
	CategoryName    string   `json:"category_name"`
	Authors         []string `json:"authors"`
}

// ToView converts a Book with preloaded Category and Authors
func (b *Book) ToView() *BookView {
	view := &BookView{
		BookID:          b.BookID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Authors:         make([]string, 0, len(b.Authors)),
	}
	if b.Category != nil {
		view.CategoryName = b.Category.CategoryName
	}
	for i := range b.Authors {
		view.Authors = append(view.Authors, b.Authors[i].FullName())
	}
	return view
}

// MemberView DTO with all-time borrowing count
type MemberView struct {
	MemberID        uint      `json:"member_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Address         string    `json:"address,omitempty"`
	Status          string    `json:"status"`
	MembershipDate  time.Time `json:"membership_date"`
	TotalBorrowings int64     `json:"total_borrowings"`
}

// BorrowingView DTO with display names and derived status
type BorrowingView struct {
	BorrowingID uint       `json:"borrowing_id"`
	MemberID    uint       `json:"member_id"`
	MemberName  string     `json:"member_name"`
	BookID      uint       `json:"book_id"`
	BookTitle   string     `json:"book_title"`
	ISBN        string     `json:"isbn"`
	BorrowDate  time.Time  `json:"borrow_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Status      string     `json:"status"`
}

// ToView converts a Borrowing with preloaded Member and Book
func (b *Borrowing) ToView(now time.Time) *BorrowingView {
	view := &BorrowingView{
		BorrowingID: b.BorrowingID,
		MemberID:    b.MemberID,
		BookID:      b.BookID,
		BorrowDate:  b.BorrowDate,
		DueDate:     b.DueDate,
		ReturnDate:  b.ReturnDate,
		Status:      b.EffectiveStatus(now),
	}
	if b.Member != nil {
		view.MemberName = b.Member.FullName()
	}
	if b.Book != nil {
		view.BookTitle = b.Book.Title
		view.ISBN = b.Book.ISBN
	}
	return view
}

// OverdueView DTO, one row of the overdue report
type OverdueView struct {
	BorrowingID uint      `json:"borrowing_id"`
	MemberName  string    `json:"member_name"`
	MemberEmail string    `json:"member_email"`
	BookTitle   string    `json:"book_title"`
	ISBN        string    `json:"isbn"`
	BorrowDate  time.Time `json:"borrow_date"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue"`
}

// AutoMigrate runs migrations for all tables. The join table is set
// up first so book_authors keeps its composite primary key.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Book{}, "Authors", &BookAuthor{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Author{}, "Books", &BookAuthor{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Author{},
		&Category{},
		&Book{},
		&BookAuthor{},
		&Member{},
		&Borrowing{},
	)
}
