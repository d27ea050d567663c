package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/audit"
	"github.com/lunvik/libris/internal/borrowing"
	"github.com/lunvik/libris/internal/config"
	"github.com/lunvik/libris/internal/database"
	"github.com/lunvik/libris/internal/database/books"
	"github.com/lunvik/libris/internal/database/members"
	http_controllers "github.com/lunvik/libris/internal/http"
	"github.com/lunvik/libris/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Libris v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	catalog := books.NewRepository(db.DB)
	memberStore := members.NewRepository(db.DB)
	engine := borrowing.NewService(db)
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	cleanup := scheduler.NewAuditCleanupScheduler(auditor, cfg.Audit.RetentionDays, cfg.Audit.CleanupSchedule)
	if err := cleanup.Start(); err != nil {
		log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:  catalog,
		Members:  memberStore,
		Engine:   engine,
		Auditor:  auditor,
		AuditDir: cfg.Audit.Dir,
		Database: db,
		Version:  version,
	})

	onShutdown := func(ctx context.Context) {
		cleanup.Stop()
	}

	Serve(router, cfg, onShutdown)
}
