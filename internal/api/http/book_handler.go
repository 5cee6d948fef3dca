package http

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"booknet-backend/internal/domain"
	"booknet-backend/internal/logger"
	"booknet-backend/internal/service"
	"booknet-backend/internal/storage"

	"github.com/gorilla/mux"
)

type BookHandler struct {
	bookSvc     service.BookService
	files       storage.FileStore
	maxCoverLen int64
}

func NewBookHandler(bookSvc service.BookService, files storage.FileStore, maxCoverSizeMB int64) *BookHandler {
	return &BookHandler{
		bookSvc:     bookSvc,
		files:       files,
		maxCoverLen: maxCoverSizeMB << 20,
	}
}

type createBookRequest struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	ISBN       string `json:"isbn"`
	Synopsis   string `json:"synopsis"`
	Shareable  bool   `json:"shareable"`
}

type bookResponse struct {
	domain.Book
	Rating float64 `json:"rating"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}

	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	book := &domain.Book{
		Title:      req.Title,
		AuthorName: req.AuthorName,
		ISBN:       req.ISBN,
		Synopsis:   req.Synopsis,
		Shareable:  req.Shareable,
	}
	id, err := h.bookSvc.CreateBook(r.Context(), actor, book)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int32{"id": id})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book-id")
	if err != nil {
		writeError(w, err)
		return
	}

	book, rating, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookResponse{Book: *book, Rating: rating})
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	page, size := pagination(r)

	books, total, err := h.bookSvc.ListBooks(r.Context(), actor, page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(books, page, size, total))
}

func (h *BookHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	page, size := pagination(r)

	books, total, err := h.bookSvc.ListOwnedBooks(r.Context(), actor, page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPageResponse(books, page, size, total))
}

func (h *BookHandler) ToggleShareable(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.bookSvc.ToggleShareable, "shareable")
}

func (h *BookHandler) ToggleArchived(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.bookSvc.ToggleArchived, "archived")
}

func (h *BookHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actor domain.Actor, bookID int32) (bool, error),
	field string,
) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	id, err := pathID(r, "book-id")
	if err != nil {
		writeError(w, err)
		return
	}

	value, err := op(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{field: value})
}

func (h *BookHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Kind: "UNAUTHORIZED", Message: "authentication required"})
		return
	}
	id, err := pathID(r, "book-id")
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxCoverLen)
	if err := r.ParseMultipartForm(h.maxCoverLen); err != nil {
		writeError(w, domain.Validation("cover file is too large or malformed"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, domain.Validation("missing cover file"))
		return
	}
	defer file.Close()

	key, err := h.files.Save(r.Context(), file, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, domain.Validation("unsupported cover file type"))
		return
	}

	previous, err := h.bookSvc.UpdateCover(r.Context(), actor, id, key)
	if err != nil {
		// The book update failed, drop the orphaned upload.
		if delErr := h.files.Delete(r.Context(), key); delErr != nil {
			logger.Warn("failed to delete orphaned cover upload", "key", key, "error", delErr)
		}
		writeError(w, err)
		return
	}
	if previous != "" {
		if delErr := h.files.Delete(r.Context(), previous); delErr != nil {
			logger.Warn("failed to delete replaced cover", "key", previous, "error", delErr)
		}
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *BookHandler) DownloadCover(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "book-id")
	if err != nil {
		writeError(w, err)
		return
	}

	book, _, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if book.CoverRef == "" {
		writeError(w, domain.NotFound("book has no cover"))
		return
	}

	content, contentType, err := h.files.Open(r.Context(), book.CoverRef)
	if err != nil {
		writeError(w, domain.NotFound("cover file not found"))
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, content); err != nil {
		logger.Warn("failed to stream cover", "book_id", id, "error", err)
	}
}

// pathID parses the numeric id path variable.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.Validation("invalid id: " + raw)
	}
	return int32(id), nil
}

// pagination reads page/size query parameters with sane bounds.
func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	size := int32(10)
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 && n <= 100 {
			size = int32(n)
		}
	}
	return page, size
}
