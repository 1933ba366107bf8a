/*
Package shelf provides the HTTP interface for user reading lists.

# Routing Strategy

All shelf endpoints operate on the authenticated user's own library and
therefore require a valid token.
*/
package shelf

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for shelf management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new shelf [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the shelf domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/", handler.listShelves)
		authed.Put("/{slug}", handler.putEntry)
		authed.Delete("/{slug}/{listType}", handler.removeEntry)
	})

	return router
}

// # Request Payloads

// putEntryRequest defines the inbound JSON schema for shelf placement.
type putEntryRequest struct {
	ListType ListType `json:"list_type"`
	Comment  *string  `json:"comment"`
}

// # Endpoints

/*
GET /api/v1/shelves.

Description: Returns every shelf entry of the authenticated user with a
denormalized manga summary, newest first.

Response:
  - 200: []Entry: The user's library
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listShelves(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	entries, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, entries)
}

/*
PUT /api/v1/shelves/{slug}.

Description: Places the slug-identified manga on one of the user's
shelves. Re-adding the same entry is idempotent.

Request:
  - slug: string (Manga slug)
  - body: { list_type: string, comment?: string }

Response:
  - 204: Placed
  - 400: Validation: Unknown list type
  - 404: ErrNotFound: Unknown manga slug
*/
func (handler *Handler) putEntry(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Target extraction and decoding
	slug := requestutil.Param(request, "slug")

	var input putEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	if err := handler.service.Put(request.Context(), userID, slug, input.ListType, input.Comment); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
DELETE /api/v1/shelves/{slug}/{listType}.

Description: Takes the slug-identified manga off the named shelf.

Response:
  - 204: Removed
  - 404: ErrNotFound: No matching shelf entry
*/
func (handler *Handler) removeEntry(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	slug := requestutil.Param(request, "slug")
	listType := ListType(requestutil.Param(request, "listType"))

	if err := handler.service.Remove(request.Context(), userID, slug, listType); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
