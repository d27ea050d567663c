package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/lunvik/libris/internal/audit"
	"github.com/lunvik/libris/internal/borrowing"
	"github.com/lunvik/libris/internal/database/books"
	"github.com/lunvik/libris/internal/database/members"
	"github.com/lunvik/libris/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// CatalogStore implementations
var _ http.CatalogStore = (*books.Repository)(nil)

// MemberStore implementations
var _ http.MemberStore = (*members.Repository)(nil)

// =============================================================================
// Circulation
// =============================================================================

// BorrowingEngine implementations
var _ http.BorrowingEngine = (*borrowing.Service)(nil)

// RequestAuditor implementations
var _ http.RequestAuditor = (*audit.Auditor)(nil)
