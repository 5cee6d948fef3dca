package http

import (
	"net/http"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/service"
)

type FeedbackHandler struct {
	feedbackSvc service.FeedbackService
}

func NewFeedbackHandler(feedbackSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

type submitFeedbackRequest struct {
	BookID  int32   `json:"book_id"`
	Note    float64 `json:"note"`
	Comment string  `json:"comment"`
}

type feedbackResponse struct {
	domain.Feedback
	OwnFeedback bool `json:"own_feedback"`
}

func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	var req submitFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.feedbackSvc.Submit(r.Context(), actor, req.BookID, req.Note, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"id": id})
}

func (h *FeedbackHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
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
	page, size := pagination(r)

	feedbacks, total, err := h.feedbackSvc.ListByBook(r.Context(), bookID, page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]feedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		views = append(views, feedbackResponse{Feedback: fb, OwnFeedback: fb.RaterID == actor.ID})
	}
	writeJSON(w, http.StatusOK, newPageResponse(views, page, size, total))
}
