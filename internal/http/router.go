package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/database"
)

// RouterConfig carries every dependency the router needs, so handlers get
// their collaborators by injection rather than through package globals.
type RouterConfig struct {
	Catalog  CatalogStore
	Members  MemberStore
	Engine   BorrowingEngine
	Auditor  RequestAuditor
	AuditDir string
	Database *database.Database
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.AuditDir, cfg.Version)
	booksController := NewBooksController(cfg.Catalog)
	membersController := NewMembersController(cfg.Members, cfg.Auditor)
	borrowingsController := NewBorrowingsController(cfg.Engine, cfg.Auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog
	router.GET("/books", booksController.ListBooks)

	// Members
	router.POST("/members", membersController.CreateMember)
	router.GET("/members/:id/borrowings", membersController.ListBorrowings)

	// Circulation
	router.POST("/borrowings", borrowingsController.Create)
	router.PUT("/borrowings/:id/return", borrowingsController.Return)

	return router
}
