// Package members provides member registration and the per-member loan view.
//
// This package implements the MemberStore interface defined in
// internal/http/members.go.
package members

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lunvik/libris/internal/apperrors"
	"github.com/lunvik/libris/internal/entities"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Local numeric format with an optional country-code prefix.
	phonePattern = regexp.MustCompile(`^(\+62|62|0)[0-9]{9,13}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "")
)

// CreateMemberInput carries the registration fields. All are required.
type CreateMemberInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (in CreateMemberInput) validate() []string {
	var problems []string

	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		problems = append(problems, "email is required")
	} else if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		problems = append(problems, "email format is invalid")
	}
	if strings.TrimSpace(in.Phone) == "" {
		problems = append(problems, "phone is required")
	} else if !phonePattern.MatchString(phoneNoise.Replace(strings.TrimSpace(in.Phone))) {
		problems = append(problems, "phone format is invalid")
	}
	if strings.TrimSpace(in.Address) == "" {
		problems = append(problems, "address is required")
	}

	return problems
}

// BorrowingFilters enumerates the recognized loan listing parameters.
type BorrowingFilters struct {
	Status string
	Page   int
	Limit  int
}

// Normalize clamps out-of-range pagination values to their defaults.
func (f *BorrowingFilters) Normalize() {
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

// BookSummary is the book slice embedded in a loan listing entry.
type BookSummary struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear int    `json:"published_year"`
}

// BorrowingView is one entry of a member's loan history.
type BorrowingView struct {
	ID         uint                     `json:"id"`
	Book       BookSummary              `json:"book"`
	BorrowDate time.Time                `json:"borrow_date"`
	ReturnDate *time.Time               `json:"return_date"`
	Status     entities.BorrowingStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
}

// Repository handles member database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateMember validates and registers a new member. The email is stored
// trimmed and lowercased; duplicates are rejected with a ConflictError.
func (r *Repository) CreateMember(in CreateMemberInput) (*entities.Member, error) {
	if problems := in.validate(); len(problems) > 0 {
		return nil, apperrors.NewValidation(strings.Join(problems, ", "))
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing entities.Member
	err := r.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperrors.NewConflict("email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &entities.Member{
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if err := r.db.Create(member).Error; err != nil {
		// The unique index is the backstop for a concurrent registration
		// slipping past the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("email already exists")
		}
		return nil, err
	}

	return member, nil
}

// GetMemberByID retrieves a member.
func (r *Repository) GetMemberByID(id uint) (*entities.Member, error) {
	var member entities.Member
	err := r.db.First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMemberByEmail retrieves a member by their (case-insensitive) email.
func (r *Repository) GetMemberByEmail(email string) (*entities.Member, error) {
	var member entities.Member
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("member not found")
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListBorrowings returns one page of a member's loans, most recent borrow
// first, together with the total match count. The member must exist.
func (r *Repository) ListBorrowings(memberID uint, filters BorrowingFilters) ([]BorrowingView, int64, error) {
	filters.Normalize()

	if _, err := r.GetMemberByID(memberID); err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&entities.Borrowing{}).Where("member_id = ?", memberID)
	if filters.Status != "" {
		status, ok := entities.ParseBorrowingStatus(strings.ToUpper(filters.Status))
		if !ok {
			return nil, 0, apperrors.NewValidation("invalid status filter: " + filters.Status)
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var found []entities.Borrowing
	err := query.
		Preload("Book").
		Order("borrow_date DESC, id DESC").
		Limit(filters.Limit).
		Offset((filters.Page - 1) * filters.Limit).
		Find(&found).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]BorrowingView, 0, len(found))
	for _, b := range found {
		views = append(views, BorrowingView{
			ID: b.ID,
			Book: BookSummary{
				ID:            b.Book.ID,
				Title:         b.Book.Title,
				Author:        b.Book.Author,
				ISBN:          b.Book.ISBN,
				PublishedYear: b.Book.PublishedYear,
			},
			BorrowDate: b.BorrowDate,
			ReturnDate: b.ReturnDate,
			Status:     b.Status,
			CreatedAt:  b.CreatedAt,
		})
	}

	return views, total, nil
}
