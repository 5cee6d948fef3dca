package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/logger"
	"booknet-backend/internal/service"
)

// PageResponse is the pagination envelope for every list endpoint.
type PageResponse struct {
	Content       interface{} `json:"content"`
	Number        int32       `json:"number"`
	Size          int32       `json:"size"`
	TotalElements int32       `json:"total_elements"`
	TotalPages    int32       `json:"total_pages"`
	First         bool        `json:"first"`
	Last          bool        `json:"last"`
}

func newPageResponse(content interface{}, page, size, total int32) PageResponse {
	totalPages := int32(0)
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return PageResponse{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page <= 1,
		Last:          page >= totalPages,
	}
}

// decodeJSON parses the request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Validation("malformed request body")
	}
	return nil
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps domain failure kinds to HTTP status codes. Anything not
// recognized is a 500 with a generic body so storage errors never leak.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		writeJSON(w, statusForKind(de.Kind), errorResponse{Kind: string(de.Kind), Message: de.Message})
		return
	}
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: err.Error()})
		return
	}
	logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "INTERNAL", Message: "internal server error"})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindPermissionDenied:
		return http.StatusForbidden
	case domain.KindInvalidState:
		return http.StatusConflict
	case domain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
