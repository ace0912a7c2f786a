package config

import (
	"errors"
	"log"
	"time"

	"libraryhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedLibraryData seeds sample catalog, membership and lending data
// for development. Available copy counts always match the number of
// seeded open borrowings.
func SeedLibraryData(db *gorm.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}

	if err := seedAuthors(db); err != nil {
		return err
	}

	if err := seedBooks(db); err != nil {
		return err
	}

	if err := seedMembers(db); err != nil {
		return err
	}

	if err := seedBorrowings(db); err != nil {
		return err
	}

	log.Println("✅ Library data seeded successfully")
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{CategoryName: "Technology", Description: "Books about programming and technology"},
		{CategoryName: "Science", Description: "Scientific literature and research"},
		{CategoryName: "Fiction", Description: "Novels and fiction books"},
		{CategoryName: "Business", Description: "Business and management books"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := db.Where("category_name = ?", cat.CategoryName).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&cat).Error; err != nil {
					return err
				}
				log.Printf("   Created category: %s", cat.CategoryName)
			}
		}
	}
	return nil
}

func seedAuthors(db *gorm.DB) error {
	authors := []models.Author{
		{FirstName: "Robert", LastName: "Martin", Nationality: "American"},
		{FirstName: "Eric", LastName: "Evans", Nationality: "American"},
		{FirstName: "Martin", LastName: "Fowler", Nationality: "British"},
		{FirstName: "Gang of Four", LastName: "Authors", Nationality: "Various"},
	}

	for _, a := range authors {
		var existing models.Author
		if err := db.Where("first_name = ? AND last_name = ?", a.FirstName, a.LastName).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&a).Error; err != nil {
					return err
				}
				log.Printf("   Created author: %s %s", a.FirstName, a.LastName)
			}
		}
	}
	return nil
}

func seedBooks(db *gorm.DB) error {
	type bookSeed struct {
		isbn            string
		title           string
		year            int
		publisher       string
		totalCopies     int
		availableCopies int
		category        string
		authorLastName  string
	}

	books := []bookSeed{
		{"9780132350884", "Clean Code", 2008, "Prentice Hall", 5, 3, "Technology", "Martin"},
		{"9780321125217", "Domain-Driven Design", 2003, "Addison-Wesley", 3, 2, "Technology", "Evans"},
		{"9780201633610", "Design Patterns", 1994, "Addison-Wesley", 4, 4, "Technology", "Authors"},
		{"9780134685991", "Effective Java", 2017, "Addison-Wesley", 6, 5, "Technology", "Fowler"},
	}

	for _, b := range books {
		var existing models.Book
		if err := db.Where("isbn = ?", b.isbn).First(&existing).Error; err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var category models.Category
		if err := db.Where("category_name = ?", b.category).First(&category).Error; err != nil {
			return err
		}

		var author models.Author
		if err := db.Where("last_name = ?", b.authorLastName).First(&author).Error; err != nil {
			return err
		}

		book := models.Book{
			ISBN:            b.isbn,
			Title:           b.title,
			PublicationYear: b.year,
			Publisher:       b.publisher,
			TotalCopies:     b.totalCopies,
			AvailableCopies: b.availableCopies,
			CategoryID:      &category.CategoryID,
			Authors:         []models.Author{author},
		}

		if err := db.Omit("Authors.*").Create(&book).Error; err != nil {
			return err
		}
		log.Printf("   Created book: %s", book.Title)
	}
	return nil
}

func seedMembers(db *gorm.DB) error {
	members := []models.Member{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@email.com", Phone: "+1-555-0101", Address: "123 Main St", Status: models.MemberStatusActive},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@email.com", Phone: "+1-555-0102", Address: "456 Oak Ave", Status: models.MemberStatusActive},
		{FirstName: "Mike", LastName: "Johnson", Email: "mike.j@email.com", Phone: "+1-555-0103", Address: "789 Pine Rd", Status: models.MemberStatusActive},
	}

	for _, m := range members {
		var existing models.Member
		if err := db.Where("email = ?", m.Email).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				m.MembershipDate = time.Now()
				if err := db.Create(&m).Error; err != nil {
					return err
				}
				log.Printf("   Created member: %s %s", m.FirstName, m.LastName)
			}
		}
	}
	return nil
}

// seedBorrowings creates the open loans the seeded available counts
// already account for: two on Clean Code, one on Domain-Driven
// Design, one on Effective Java. Two of them are overdue.
func seedBorrowings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Borrowing{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	type loanSeed struct {
		memberEmail string
		isbn        string
		borrowedAgo int
		dueIn       int
	}

	loans := []loanSeed{
		{"john.doe@email.com", "9780132350884", 30, -16},
		{"jane.smith@email.com", "9780132350884", 3, 11},
		{"jane.smith@email.com", "9780321125217", 21, -7},
		{"mike.j@email.com", "9780134685991", 5, 9},
	}

	now := time.Now()
	for _, l := range loans {
		var member models.Member
		if err := db.Where("email = ?", l.memberEmail).First(&member).Error; err != nil {
			return err
		}

		var book models.Book
		if err := db.Where("isbn = ?", l.isbn).First(&book).Error; err != nil {
			return err
		}

		borrowing := models.Borrowing{
			MemberID:   member.MemberID,
			BookID:     book.BookID,
			BorrowDate: now.AddDate(0, 0, -l.borrowedAgo),
			DueDate:    now.AddDate(0, 0, l.dueIn),
			Status:     models.BorrowingStatusBorrowed,
		}

		if err := db.Create(&borrowing).Error; err != nil {
			return err
		}
		log.Printf("   Created borrowing: %s -> %s", member.Email, book.Title)
	}
	return nil
}
