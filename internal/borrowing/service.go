// Package borrowing implements the borrowing engine: the only code path that
// mutates stock counts and borrowing records. Every operation runs inside one
// database transaction, and every business rule is re-checked against that
// transaction's snapshot, so nothing decided from stale in-process state can
// leak into the ledger.
package borrowing

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lunvik/libris/internal/apperrors"
	"github.com/lunvik/libris/internal/database"
	"github.com/lunvik/libris/internal/entities"
)

// MaxActiveLoans is the per-member quota of simultaneously borrowed books.
const MaxActiveLoans = 3

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *database.Database) *Service {
	return &Service{
		db:  db.DB,
		now: time.Now,
	}
}

// Borrow checks out one or more books for a member in a single transaction.
// Either every requested book yields a new BORROWED record with its stock
// decremented, or the whole request aborts with no visible effect.
//
// The created records are returned in request order, expanded with their
// book and member.
func (s *Service) Borrow(memberID uint, bookIDs []uint) ([]entities.Borrowing, error) {
	if memberID == 0 {
		return nil, apperrors.NewValidation("member_id is required")
	}
	if len(bookIDs) == 0 {
		return nil, apperrors.NewValidation("book_id is required")
	}
	for _, id := range bookIDs {
		if id == 0 {
			return nil, apperrors.NewValidation("book_id is required")
		}
	}

	var created []entities.Borrowing

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var member entities.Member
		if err := tx.First(&member, memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("member not found")
			}
			return err
		}

		var active int64
		err := tx.Model(&entities.Borrowing{}).
			Where("member_id = ? AND status = ?", memberID, entities.StatusBorrowed).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active+int64(len(bookIDs)) > MaxActiveLoans {
			return &apperrors.QuotaExceededError{
				Limit:     MaxActiveLoans,
				Current:   active,
				Requested: len(bookIDs),
			}
		}

		var books []entities.Book
		if err := tx.Where("id IN ?", bookIDs).Find(&books).Error; err != nil {
			return err
		}
		// Resolved as a set: every requested identifier must map to a
		// distinct existing book.
		if len(books) != len(bookIDs) {
			return apperrors.NewNotFound("one or more books not found")
		}

		byID := make(map[uint]entities.Book, len(books))
		var outOfStock []string
		for _, book := range books {
			byID[book.ID] = book
			if book.Stock <= 0 {
				outOfStock = append(outOfStock, book.Title)
			}
		}
		if len(outOfStock) > 0 {
			return &apperrors.StockUnavailableError{Titles: outOfStock}
		}

		now := s.now()
		for _, bookID := range bookIDs {
			record := entities.Borrowing{
				BookID:     bookID,
				MemberID:   memberID,
				Status:     entities.StatusBorrowed,
				BorrowDate: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}

			// Guarded decrement: the stock > 0 predicate makes the
			// check-then-decrement atomic even if another transaction
			// drained the stock after the snapshot read above.
			res := tx.Model(&entities.Book{}).
				Where("id = ? AND stock > 0", bookID).
				UpdateColumn("stock", gorm.Expr("stock - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &apperrors.StockUnavailableError{Titles: []string{byID[bookID].Title}}
			}

			var expanded entities.Borrowing
			if err := tx.Preload("Book").Preload("Member").First(&expanded, record.ID).Error; err != nil {
				return err
			}
			created = append(created, expanded)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Return closes a borrowing record and puts its book back in stock, in a
// single transaction. Returning an already-returned record fails, so a stock
// count can never be incremented twice for the same borrowing.
func (s *Service) Return(borrowingID uint) (*entities.Borrowing, error) {
	var returned entities.Borrowing

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record entities.Borrowing
		if err := tx.First(&record, borrowingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("borrowing record not found")
			}
			return err
		}

		if record.Status == entities.StatusReturned {
			return apperrors.NewInvalidState("book has already been returned")
		}

		now := s.now()
		// The status predicate guarantees the BORROWED -> RETURNED
		// transition happens at most once.
		res := tx.Model(&entities.Borrowing{}).
			Where("id = ? AND status = ?", borrowingID, entities.StatusBorrowed).
			Updates(map[string]any{
				"status":      entities.StatusReturned,
				"return_date": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NewInvalidState("book has already been returned")
		}

		err := tx.Model(&entities.Book{}).
			Where("id = ?", record.BookID).
			UpdateColumn("stock", gorm.Expr("stock + 1")).Error
		if err != nil {
			return err
		}

		return tx.Preload("Book").Preload("Member").First(&returned, borrowingID).Error
	})
	if err != nil {
		return nil, err
	}

	return &returned, nil
}
