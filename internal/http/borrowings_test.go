package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunvik/libris/internal/borrowing"
	"github.com/lunvik/libris/internal/database"
	"github.com/lunvik/libris/internal/database/books"
	"github.com/lunvik/libris/internal/database/members"
	"github.com/lunvik/libris/internal/entities"
)

func setupTestRouter(t *testing.T) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Catalog:  books.NewRepository(db.DB),
		Members:  members.NewRepository(db.DB),
		Engine:   borrowing.NewService(db),
		AuditDir: t.TempDir(),
		Database: db,
		Version:  "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

func seedBook(t *testing.T, db *database.Database, title string, stock int) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:  title,
		Author: "Author",
		ISBN:   fmt.Sprintf("isbn-%s-%s", t.Name(), title),
		Stock:  stock,
	}
	require.NoError(t, db.DB.Create(book).Error)
	return book
}

func seedMember(t *testing.T, db *database.Database, email string) *entities.Member {
	t.Helper()
	member := &entities.Member{
		Name:    "Member",
		Email:   email,
		Phone:   "081234567890",
		Address: "1 Test St",
	}
	require.NoError(t, db.DB.Create(member).Error)
	return member
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestBorrowingsController_Create_SingleBook(t *testing.T) {
	db, router, cleanup := setupTestRouter(t)
	defer cleanup()

	book := seedBook(t, db, "The Hobbit", 5)
	member := seedMember(t, db, "reader@example.com")

	w := doJSON(router, "POST", "/borrowings", gin.H{
		"member_id": member.ID,
		"book_id":   book.ID,
	})

	require.Equal(t, http.StatusCreated, w.Code)

	// A single requested book yields a single object, not an array
	var created entities.Borrowing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, entities.StatusBorrowed, created.Status)
	assert.Equal(t, book.ID, created.BookID)
	assert.Equal(t, "The Hobbit", created.Book.Title)

	var stored entities.Book
	require.NoError(t, db.DB.First(&stored, book.ID).Error)
	assert.Equal(t, 4, stored.Stock)
}

func TestBorrowingsController_Create_Batch(t *testing.T) {
	db, router, cleanup := setupTestRouter(t)
	defer cleanup()

	first := seedBook(t, db, "Book One", 2)
	second := seedBook(t, db, "Book Two", 2)
	member := seedMember(t, db, "batch@example.com")

	w := doJSON(router, "POST", "/borrowings", gin.H{
		"member_id": member.ID,
		"book_id":   []uint{first.ID, second.ID},
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var created []entities.Borrowing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 2)
	assert.Equal(t, first.ID, created[0].BookID)
	assert.Equal(t, second.ID, created[1].BookID)
}

func TestBorrowingsController_Create_Failures(t *testing.T) {
	db, router, cleanup := setupTestRouter(t)
	defer cleanup()

	book := seedBook(t, db, "In Stock", 5)
	depleted := seedBook(t, db, "Depleted", 0)
	member := seedMember(t, db, "edge@example.com")

	t.Run("missing member_id", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"book_id": book.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing book_id", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed book_id", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID, "book_id": "one"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown member", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": 999, "book_id": book.ID})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown book", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID, "book_id": 999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("out of stock", func(t *testing.T) {
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID, "book_id": depleted.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Depleted")
	})

	t.Run("quota exceeded", func(t *testing.T) {
		ids := make([]uint, 0, 4)
		for i := 0; i < 4; i++ {
			ids = append(ids, seedBook(t, db, fmt.Sprintf("Quota Book %d", i), 1).ID)
		}
		w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID, "book_id": ids})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBorrowingsController_Return(t *testing.T) {
	db, router, cleanup := setupTestRouter(t)
	defer cleanup()

	book := seedBook(t, db, "Round Trip", 3)
	member := seedMember(t, db, "round@example.com")

	w := doJSON(router, "POST", "/borrowings", gin.H{"member_id": member.ID, "book_id": book.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Borrowing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	t.Run("returns the borrowing", func(t *testing.T) {
		w := doJSON(router, "PUT", fmt.Sprintf("/borrowings/%d/return", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var returned entities.Borrowing
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &returned))
		assert.Equal(t, entities.StatusReturned, returned.Status)
		assert.NotNil(t, returned.ReturnDate)

		var stored entities.Book
		require.NoError(t, db.DB.First(&stored, book.ID).Error)
		assert.Equal(t, 3, stored.Stock)
	})

	t.Run("second return is rejected", func(t *testing.T) {
		w := doJSON(router, "PUT", fmt.Sprintf("/borrowings/%d/return", created.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown borrowing", func(t *testing.T) {
		w := doJSON(router, "PUT", "/borrowings/999/return", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doJSON(router, "PUT", "/borrowings/abc/return", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
