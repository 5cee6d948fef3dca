package http

import (
	"context"
	"net/http"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/service"
)

type LendingHandler struct {
	lendingSvc service.LendingService
}

func NewLendingHandler(lendingSvc service.LendingService) *LendingHandler {
	return &LendingHandler{lendingSvc: lendingSvc}
}

func (h *LendingHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lendingSvc.Borrow)
}

func (h *LendingHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lendingSvc.Return)
}

func (h *LendingHandler) ApproveReturn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.lendingSvc.ApproveReturn)
}

// transition runs one loan state change and answers with the loan id.
func (h *LendingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actor domain.Actor, bookID int32) (int32, error),
) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	bookID, err := pathID(r, "book-id")
	if err != nil {
		writeError(w, err)
		return
	}

	loanID, err := op(r.Context(), actor, bookID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"id": loanID})
}

func (h *LendingHandler) ListBorrowed(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.lendingSvc.ListBorrowed)
}

func (h *LendingHandler) ListReturned(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.lendingSvc.ListReturned)
}

func (h *LendingHandler) list(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actor domain.Actor, page, pageSize int32) ([]domain.Loan, int32, error),
) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	page, size := pagination(r)

	loans, total, err := op(r.Context(), actor, page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		views = append(views, loanResponse{Loan: l, Status: l.Status()})
	}
	writeJSON(w, http.StatusOK, newPageResponse(views, page, size, total))
}

type loanResponse struct {
	domain.Loan
	Status domain.LoanStatus `json:"status"`
}
