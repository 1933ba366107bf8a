/*
Package rating provides the HTTP interface for manga rating management.

# Routing Strategy

  - All rating mutations require an authenticated user.
  - Reads of the user's own rating are likewise authenticated; aggregated
    histograms are served through the manga detail endpoint instead.
*/
package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for rating management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the rating domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createRating)
		authed.Patch("/{id}", handler.updateRating)
		authed.Delete("/{id}", handler.deleteRating)
		authed.Get("/manga/{slug}", handler.getRatingForManga)
	})

	return router
}

// # Request Payloads

// ratingRequest defines the inbound JSON schema for rating mutations.
type ratingRequest struct {
	MangaID string `json:"manga_id"`
	Star    int    `json:"star"`
}

// # Endpoints

/*
POST /api/v1/ratings.

Description: Records the authenticated user's star score for a manga.

Request (Body):
  - manga_id: string (UUID)
  - star: int (1..10)

Response:
  - 201: Rating: The persisted rating
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
  - 409: ErrConflict: The user has already rated this manga
*/
func (handler *Handler) createRating(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Strict JSON decoding
	var input ratingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	rating, err := handler.service.Rate(request.Context(), userID, input.MangaID, input.Star)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, rating)
}

/*
PATCH /api/v1/ratings/{id}.

Description: Changes the star value of an existing rating owned by the
authenticated user.

Request:
  - id: string (Rating UUID)
  - body: { star: int }

Response:
  - 204: Updated
  - 400: Validation: Star outside the accepted range
  - 404: ErrNotFound: No owned rating with this ID
*/
func (handler *Handler) updateRating(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Target extraction and decoding
	ratingID := requestutil.ID(request, "id")

	var input ratingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	if err := handler.service.ChangeStar(request.Context(), ratingID, userID, input.Star); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
DELETE /api/v1/ratings/{id}.

Description: Withdraws a rating owned by the authenticated user.

Response:
  - 204: Deleted
  - 404: ErrNotFound: No owned rating with this ID
*/
func (handler *Handler) deleteRating(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	ratingID := requestutil.ID(request, "id")
	if err := handler.service.Withdraw(request.Context(), ratingID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
GET /api/v1/ratings/manga/{slug}.

Description: Returns the authenticated user's rating for the manga behind
the given slug, so detail pages can pre-fill the star widget.

Response:
  - 200: Rating: The user's rating
  - 404: ErrNotFound: The user has not rated this manga
*/
func (handler *Handler) getRatingForManga(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	slug := requestutil.Param(request, "slug")
	rating, err := handler.service.ForManga(request.Context(), userID, slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, rating)
}
