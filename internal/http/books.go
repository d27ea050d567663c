package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/database/books"
)

// CatalogStore defines the read operations the books controller needs.
type CatalogStore interface {
	ListBooks(filters books.Filters) ([]books.BookView, int64, error)
}

type BooksController struct {
	catalog CatalogStore
}

func NewBooksController(catalog CatalogStore) *BooksController {
	return &BooksController{catalog: catalog}
}

// ListBooks returns one page of the catalog with availability flags.
// GET /books?title=&author=&page=&limit=
func (bc *BooksController) ListBooks(c *gin.Context) {
	filters := books.Filters{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Page:   parsePageQuery(c),
		Limit:  parseLimitQuery(c),
	}
	filters.Normalize()

	views, total, err := bc.catalog.ListBooks(filters)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       views,
		Pagination: NewPagination(total, filters.Page, filters.Limit),
	})
}
