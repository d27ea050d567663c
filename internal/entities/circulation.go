package entities

import (
	"time"
)

// BorrowingStatus tracks the lifecycle of a borrowing record.
// A borrowing is created as BORROWED and transitions to RETURNED exactly once.
type BorrowingStatus string

const (
	StatusBorrowed BorrowingStatus = "BORROWED"
	StatusReturned BorrowingStatus = "RETURNED"
)

// ParseBorrowingStatus normalizes a user-supplied status string to the enum.
func ParseBorrowingStatus(s string) (BorrowingStatus, bool) {
	switch BorrowingStatus(s) {
	case StatusBorrowed:
		return StatusBorrowed, true
	case StatusReturned:
		return StatusReturned, true
	}
	return "", false
}

type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512" json:"title"`
	Author        string    `gorm:"index;size:256" json:"author"`
	PublishedYear int       `json:"published_year,omitempty"`
	ISBN          string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Stock         int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:512" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Borrowing links one book copy-slot to one member.
// ReturnDate is nil exactly while Status is BORROWED.
type Borrowing struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BookID     uint            `gorm:"index" json:"book_id"`
	MemberID   uint            `gorm:"index" json:"member_id"`
	Status     BorrowingStatus `gorm:"size:10;index;default:'BORROWED'" json:"status"`
	BorrowDate time.Time       `json:"borrow_date"`
	ReturnDate *time.Time      `json:"return_date"`
	Book       Book            `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Member     Member          `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Member) TableName() string {
	return "members"
}

func (Borrowing) TableName() string {
	return "borrowings"
}
