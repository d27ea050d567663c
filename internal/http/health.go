package http

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db       *database.Database
	auditDir string
	version  string
}

func NewHealthController(db *database.Database, auditDir, version string) *HealthController {
	return &HealthController{
		db:       db,
		auditDir: auditDir,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	if h.auditDir != "" {
		if err := checkAuditStorage(h.auditDir); err != nil {
			checks["audit_storage"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["audit_storage"] = "ok"
		}
	} else {
		checks["audit_storage"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// checkAuditStorage verifies the audit directory exists and accepts writes.
func checkAuditStorage(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probePath := filepath.Join(dir, ".healthcheck")
	f, err := os.Create(probePath)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probePath)
}
