package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunvik/libris/internal/database/members"
	"github.com/lunvik/libris/internal/entities"
)

// MemberStore defines the member operations the members controller needs.
type MemberStore interface {
	CreateMember(in members.CreateMemberInput) (*entities.Member, error)
	ListBorrowings(memberID uint, filters members.BorrowingFilters) ([]members.BorrowingView, int64, error)
}

type MembersController struct {
	store   MemberStore
	auditor RequestAuditor
}

func NewMembersController(store MemberStore, auditor RequestAuditor) *MembersController {
	return &MembersController{store: store, auditor: auditor}
}

// CreateMember registers a new member.
// POST /members
func (mc *MembersController) CreateMember(c *gin.Context) {
	var input members.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	auditRequest(mc.auditor, "member.create", input)

	member, err := mc.store.CreateMember(input)
	if err != nil {
		respondDomainError(c, err, "create member")
		return
	}

	respondCreated(c, member)
}

// ListBorrowings returns one page of a member's loan history.
// GET /members/:id/borrowings?status=&page=&limit=
func (mc *MembersController) ListBorrowings(c *gin.Context) {
	memberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	filters := members.BorrowingFilters{
		Status: c.Query("status"),
		Page:   parsePageQuery(c),
		Limit:  parseLimitQuery(c),
	}
	filters.Normalize()

	views, total, err := mc.store.ListBorrowings(memberID, filters)
	if err != nil {
		respondDomainError(c, err, "list member borrowings")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       views,
		Pagination: NewPagination(total, filters.Page, filters.Limit),
	})
}
