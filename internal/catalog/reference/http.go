/*
Package reference provides the HTTP interface for catalogue master data.

# Access Control

  - Public: Discovery of genres, tags, creators, publishers and types.
  - Admin: Creation of new vocabulary entries.
*/
package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
	"github.com/valeXeich/Mangalib/internal/platform/sec"
	"github.com/valeXeich/Mangalib/pkg/convert"
)

// Handler implements the HTTP layer for catalogue master data.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the master data endpoints.
// The composition root mounts it at the API version root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Taxonomy Endpoints
	router.Get("/genres", handler.listGenres)
	router.Get("/tags", handler.listTags)
	router.Get("/manga-types", handler.listMangaTypes)

	// # Creator and Publisher Endpoints
	router.Get("/authors", handler.listAuthors)
	router.Get("/painters", handler.listPainters)
	router.Get("/publishers", handler.listPublishers)

	// # Administrative Vocabulary Management
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/genres", handler.createGenre)
		admin.Post("/tags", handler.createTag)
		admin.Post("/authors", handler.createAuthor)
		admin.Post("/painters", handler.createPainter)
		admin.Post("/publishers", handler.createPublisher)
	})

	return router
}

// nameRequest is the shared inbound JSON schema for vocabulary creation.
type nameRequest struct {
	Name string `json:"name"`
}

/*
GET /api/v1/genres.

Description: The genre vocabulary with per-genre manga totals.

Request:
  - limit: int query parameter (Optional, keeps only the most used)

Response:
  - 200: []Genre: Success
*/
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {

	// Optional top-N bound
	limit := convert.ToInt(request.URL.Query().Get("limit"))

	// Domain Logic Execution
	genres, err := handler.service.Genres(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, genres)
}

/*
GET /api/v1/tags.

Description: The full tag vocabulary ordered by name.

Response:
  - 200: []Tag: Success
*/
func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.Tags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

/*
GET /api/v1/manga-types.

Description: The fixed set of publication origins accepted by the catalogue.

Response:
  - 200: []string: Success
*/
func (handler *Handler) listMangaTypes(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.MangaTypes())
}

/*
GET /api/v1/authors.

Description: The writing creator registry ordered by name.

Response:
  - 200: []Contributor: Success
*/
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.Contributors(request.Context(), KindAuthor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authors)
}

/*
GET /api/v1/painters.

Description: The drawing creator registry ordered by name.

Response:
  - 200: []Contributor: Success
*/
func (handler *Handler) listPainters(writer http.ResponseWriter, request *http.Request) {
	painters, err := handler.service.Contributors(request.Context(), KindPainter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, painters)
}

/*
GET /api/v1/publishers.

Description: The publisher registry ordered by name.

Response:
  - 200: []Publisher: Success
*/
func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	publishers, err := handler.service.Publishers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publishers)
}

/*
POST /api/v1/genres.

Description: Adds a genre to the vocabulary. Admin only.

Response:
  - 201: Genre: Created
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {

	// Payload decoding
	var payload nameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	genre, err := handler.service.CreateGenre(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, genre)
}

/*
POST /api/v1/tags.

Description: Adds a tag to the vocabulary. Admin only.

Response:
  - 201: Tag: Created
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {

	var payload nameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.service.CreateTag(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

/*
POST /api/v1/authors.

Description: Registers a writing creator. Admin only.

Response:
  - 201: Contributor: Created
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	handler.createContributor(writer, request, KindAuthor)
}

/*
POST /api/v1/painters.

Description: Registers a drawing creator. Admin only.

Response:
  - 201: Contributor: Created
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) createPainter(writer http.ResponseWriter, request *http.Request) {
	handler.createContributor(writer, request, KindPainter)
}

// createContributor shares the decode and respond flow of both registries.
func (handler *Handler) createContributor(writer http.ResponseWriter, request *http.Request, kind ContributorKind) {

	var payload nameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	contributor, err := handler.service.CreateContributor(request.Context(), kind, payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contributor)
}

/*
POST /api/v1/publishers.

Description: Registers a publisher. Admin only.

Response:
  - 201: Publisher: Created
  - 409: ErrConflict: Duplicate name
*/
func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {

	var payload nameRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.service.CreatePublisher(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, publisher)
}
