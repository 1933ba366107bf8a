/*
Package chapter provides the HTTP interface for reading and releasing
chapters.

# Routing Strategy

Reading endpoints are public. Releasing chapters and uploading pages is
reserved for administrators. The per-manga chapter listing is exported
separately so the composition root can mount it under the manga tree.
*/
package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
	"github.com/valeXeich/Mangalib/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters and pages.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the chapter endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reading
	router.Get("/latest", handler.latest)
	router.Get("/{id}", handler.getChapter)
	router.Get("/{id}/pages", handler.listPages)

	// Administrative releasing
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createChapter)
		admin.Post("/{id}/pages", handler.addPages)
	})

	return router
}

// # Request Payloads

// createChapterRequest defines the inbound JSON schema for releasing.
type createChapterRequest struct {
	MangaID       string  `json:"manga_id"`
	VolumeNumber  int     `json:"volume_number"`
	ChapterNumber string  `json:"chapter_number"`
	Title         *string `json:"title"`
	Slug          string  `json:"slug"`
}

// addPagesRequest defines the inbound JSON schema for page uploads.
type addPagesRequest struct {
	Pages []PageInput `json:"pages"`
}

// # Endpoints

/*
GET /api/v1/manga/{slug}/chapters.

Description: Returns every chapter of the manga in reading order with
volume numbers and page counts. Mounted under the manga tree by the
composition root.

Response:
  - 200: []Chapter
  - 404: ErrNotFound: Unknown manga slug
*/
func (handler *Handler) MangaChapters(writer http.ResponseWriter, request *http.Request) {

	// Domain Logic Execution
	chapters, err := handler.service.ListByManga(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, chapters)
}

/*
GET /api/v1/chapters/latest.

Description: The most recent releases across the whole catalogue with
manga summaries, served cache-aside from Redis.

Response:
  - 200: []Chapter
*/
func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.Latest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

/*
GET /api/v1/chapters/{id}.

Description: One chapter with its volume number, page count and manga
summary.

Response:
  - 200: Chapter
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
GET /api/v1/chapters/{id}/pages.

Description: The chapter's pages ordered by page number.

Response:
  - 200: []Page
  - 404: ErrNotFound: Unknown chapter
*/
func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	pages, err := handler.service.ListPages(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, pages)
}

/*
POST /api/v1/chapters.

Description: Releases a new chapter, creating its volume on first use.
Admin only.

Response:
  - 201: Chapter
  - 400: Validation: Missing numbering
  - 404: ErrNotFound: Unknown manga
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {

	// Payload decoding
	var payload createChapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapter, err := handler.service.Create(request.Context(), CreateInput{
		MangaID:       payload.MangaID,
		VolumeNumber:  payload.VolumeNumber,
		ChapterNumber: payload.ChapterNumber,
		Title:         payload.Title,
		Slug:          payload.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, chapter)
}

/*
POST /api/v1/chapters/{id}/pages.

Description: Appends an ordered batch of pages to a chapter. Admin only.

Response:
  - 204: Uploaded
  - 400: Validation: Empty batch or malformed URLs
  - 404: ErrNotFound: Unknown chapter
*/
func (handler *Handler) addPages(writer http.ResponseWriter, request *http.Request) {

	// Payload decoding
	var payload addPagesRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	chapterID := requestutil.ID(request, "id")
	if err := handler.service.AddPages(request.Context(), chapterID, payload.Pages); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
