package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/entities"
)

// BorrowingEngine defines the mutating circulation operations.
type BorrowingEngine interface {
	Borrow(memberID uint, bookIDs []uint) ([]entities.Borrowing, error)
	Return(borrowingID uint) (*entities.Borrowing, error)
}

// RequestAuditor records mutating requests for later inspection.
type RequestAuditor interface {
	Record(action string, payload any) (string, error)
}

// auditRequest saves the payload if an auditor is configured. Audit failures
// are logged but never block the request.
func auditRequest(auditor RequestAuditor, action string, payload any) {
	if auditor == nil {
		return
	}
	if _, err := auditor.Record(action, payload); err != nil {
		log.Printf("Failed to audit %s request: %v", action, err)
	}
}

// BookIDList accepts either a single id or an array of ids, mirroring the
// member-checks-out-several-books-in-one-visit request shape.
type BookIDList []uint

func (l *BookIDList) UnmarshalJSON(data []byte) error {
	var single uint
	if err := json.Unmarshal(data, &single); err == nil {
		*l = BookIDList{single}
		return nil
	}

	var many []uint
	if err := json.Unmarshal(data, &many); err == nil {
		*l = BookIDList(many)
		return nil
	}

	return errors.New("book_id must be an id or an array of ids")
}

type createBorrowingRequest struct {
	MemberID uint       `json:"member_id"`
	BookID   BookIDList `json:"book_id"`
}

type BorrowingsController struct {
	engine  BorrowingEngine
	auditor RequestAuditor
}

func NewBorrowingsController(engine BorrowingEngine, auditor RequestAuditor) *BorrowingsController {
	return &BorrowingsController{engine: engine, auditor: auditor}
}

// Create checks out one or more books for a member. A single requested book
// yields a single object; a batch yields an array in request order.
// POST /borrowings
func (bc *BorrowingsController) Create(c *gin.Context) {
	var req createBorrowingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	auditRequest(bc.auditor, "borrowing.create", req)

	created, err := bc.engine.Borrow(req.MemberID, req.BookID)
	if err != nil {
		respondDomainError(c, err, "create borrowing")
		return
	}

	if len(created) == 1 {
		respondCreated(c, created[0])
		return
	}
	respondCreated(c, created)
}

// Return closes a borrowing record and restocks its book.
// PUT /borrowings/:id/return
func (bc *BorrowingsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	auditRequest(bc.auditor, "borrowing.return", gin.H{"borrowing_id": id})

	returned, err := bc.engine.Return(id)
	if err != nil {
		respondDomainError(c, err, "return borrowing")
		return
	}

	c.JSON(http.StatusOK, returned)
}
