// Package books provides read access to the book catalog.
//
// This package implements the CatalogStore interface defined in
// internal/http/books.go.
package books

import (
	"gorm.io/gorm"

	"github.com/lunvik/libris/internal/entities"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filters enumerates the recognized catalog listing parameters.
// Title and Author are case-insensitive substring matches.
type Filters struct {
	Title  string
	Author string
	Page   int
	Limit  int
}

// Normalize clamps out-of-range pagination values to their defaults.
func (f *Filters) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// BookView is a catalog listing entry annotated with availability.
type BookView struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	Stock         int    `json:"stock"`
	ISBN          string `json:"isbn"`
	Available     bool   `json:"available"`
}

// Repository handles catalog database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns one page of the catalog, most recently added first,
// together with the total match count.
func (r *Repository) ListBooks(filters Filters) ([]BookView, int64, error) {
	filters.Normalize()

	query := r.db.Model(&entities.Book{})
	if filters.Title != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+filters.Title+"%")
	}
	if filters.Author != "" {
		query = query.Where("LOWER(author) LIKE LOWER(?)", "%"+filters.Author+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var found []entities.Book
	err := query.
		Order("created_at DESC, id DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&found).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]BookView, 0, len(found))
	for _, book := range found {
		views = append(views, BookView{
			ID:            book.ID,
			Title:         book.Title,
			Author:        book.Author,
			PublishedYear: book.PublishedYear,
			Stock:         book.Stock,
			ISBN:          book.ISBN,
			Available:     book.Stock > 0,
		})
	}

	return views, total, nil
}

// GetBookByID retrieves a single book.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}
