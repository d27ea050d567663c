package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/apperrors"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Pagination is the envelope attached to every paginated listing.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse wraps one page of data with its pagination envelope.
type PaginatedResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination computes the envelope, with totalPages = ceil(total / limit).
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondDomainError maps an error from the stores or the borrowing engine to
// an HTTP status by its type tag, never by its message text.
func respondDomainError(c *gin.Context, err error, context string) {
	var (
		validation   *apperrors.ValidationError
		notFound     *apperrors.NotFoundError
		quota        *apperrors.QuotaExceededError
		stock        *apperrors.StockUnavailableError
		invalidState *apperrors.InvalidStateError
		conflict     *apperrors.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		respondNotFound(c, err.Error())
	case errors.As(err, &validation),
		errors.As(err, &quota),
		errors.As(err, &stock),
		errors.As(err, &invalidState),
		errors.As(err, &conflict):
		respondBadRequest(c, err.Error())
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns 0, false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parsePageQuery reads the page query parameter. Non-numeric or non-positive
// values fall through to the default via clamping in the store filters.
func parsePageQuery(c *gin.Context) int {
	page, _ := strconv.Atoi(c.Query("page"))
	return page
}

// parseLimitQuery reads the limit query parameter, same clamping contract as
// parsePageQuery.
func parseLimitQuery(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}
