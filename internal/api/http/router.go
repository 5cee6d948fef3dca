package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all routes. Auth endpoints, the book view and the cover
// download are public; everything else requires a Bearer token.
func NewRouter(
	auth *AuthHandler,
	books *BookHandler,
	lending *LendingHandler,
	feedback *FeedbackHandler,
	authMW *AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost)

	r.HandleFunc("/books/{book-id:[0-9]+}", books.Get).Methods(http.MethodGet)
	r.HandleFunc("/books/cover/{book-id:[0-9]+}", books.DownloadCover).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(authMW.Require)

	protected.HandleFunc("/books", books.Create).Methods(http.MethodPost)
	protected.HandleFunc("/books", books.List).Methods(http.MethodGet)
	protected.HandleFunc("/books/owner", books.ListOwned).Methods(http.MethodGet)
	protected.HandleFunc("/books/borrowed", lending.ListBorrowed).Methods(http.MethodGet)
	protected.HandleFunc("/books/returned", lending.ListReturned).Methods(http.MethodGet)
	protected.HandleFunc("/books/shareable/{book-id:[0-9]+}", books.ToggleShareable).Methods(http.MethodPatch)
	protected.HandleFunc("/books/archived/{book-id:[0-9]+}", books.ToggleArchived).Methods(http.MethodPatch)
	protected.HandleFunc("/books/borrow/{book-id:[0-9]+}", lending.Borrow).Methods(http.MethodPost)
	protected.HandleFunc("/books/borrow/return/{book-id:[0-9]+}", lending.Return).Methods(http.MethodPost)
	protected.HandleFunc("/books/borrow/return/approve/{book-id:[0-9]+}", lending.ApproveReturn).Methods(http.MethodPost)
	protected.HandleFunc("/books/cover/{book-id:[0-9]+}", books.UploadCover).Methods(http.MethodPost)

	protected.HandleFunc("/feedbacks", feedback.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/feedbacks/book/{book-id:[0-9]+}", feedback.ListByBook).Methods(http.MethodGet)

	return r
}
