/*
Package manga provides the HTTP interface for the catalogue.

# Routing Strategy

Discovery and detail reads are public. Authoring endpoints (create,
update, delete) are reserved for administrators.
*/
package manga

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
	"github.com/valeXeich/Mangalib/internal/platform/sec"
	"github.com/valeXeich/Mangalib/pkg/pagination"
	"github.com/valeXeich/Mangalib/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the manga catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manga [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue's endpoints.
// The chapter listing of a title belongs to the chapter domain, so its
// handler is injected by the composition root.
func (handler *Handler) Routes(mangaChapters http.HandlerFunc) chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/", handler.listManga)
	router.Get("/popular", handler.popular)
	router.Get("/new", handler.newest)
	router.Get("/popular-chapters", handler.popularWithChapters)
	router.Get("/{slug}", handler.getDetail)
	router.Get("/{slug}/short-info", handler.getShortInfo)
	router.Get("/{slug}/chapters", mangaChapters)

	// Administrative authoring
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createManga)
		admin.Patch("/{slug}", handler.updateManga)
		admin.Delete("/{slug}", handler.deleteManga)
	})

	return router
}

// # Query Parsing

// parseFilter maps the listing query string onto a [Filter].
func parseFilter(request *http.Request) Filter {
	values := request.URL.Query()

	return Filter{
		Query:      values.Get("q"),
		Type:       Type(values.Get("type")),
		Status:     Status(values.Get("status")),
		AgeRating:  AgeRating(values.Get("age_rating")),
		GenreIDs:   query.IntCSV(values.Get("genres")),
		TagIDs:     query.IntCSV(values.Get("tags")),
		ChapterMin: intParam(values.Get("chapters_min")),
		ChapterMax: intParam(values.Get("chapters_max")),
		YearMin:    intParam(values.Get("year_min")),
		YearMax:    intParam(values.Get("year_max")),
		RatingMin:  floatParam(values.Get("rating_min")),
		RatingMax:  floatParam(values.Get("rating_max")),
		Sort:       values.Get("sort"),
		SortDir:    values.Get("dir"),
	}
}

// intParam parses an optional integer query value. Absent or malformed
// values mean "unconstrained".
func intParam(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// floatParam parses an optional float query value.
func floatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// # Request Payloads

// mangaRequest defines the inbound JSON schema for authoring. The same
// shape serves create (full) and update (partial) payloads.
type mangaRequest struct {
	Title         string    `json:"title"`
	Subtitle      *string   `json:"subtitle"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description"`
	Type          Type      `json:"type"`
	AgeRating     AgeRating `json:"age_rating"`
	Status        Status    `json:"status"`
	ReleaseYear   *int      `json:"release_year"`
	PosterURL     *string   `json:"poster_url"`
	BackgroundURL *string   `json:"background_url"`
	AuthorID      *int      `json:"author_id"`
	PainterID     *int      `json:"painter_id"`
	GenreIDs      []int     `json:"genre_ids"`
	TagIDs        []int     `json:"tag_ids"`
	PublisherIDs  []int     `json:"publisher_ids"`
	RelatedIDs    []string  `json:"related_ids"`
}

// toInput converts the wire payload into the service input.
func (payload mangaRequest) toInput() CreateInput {
	return CreateInput{
		Title:         payload.Title,
		Subtitle:      payload.Subtitle,
		Slug:          payload.Slug,
		Description:   payload.Description,
		Type:          payload.Type,
		AgeRating:     payload.AgeRating,
		Status:        payload.Status,
		ReleaseYear:   payload.ReleaseYear,
		PosterURL:     payload.PosterURL,
		BackgroundURL: payload.BackgroundURL,
		AuthorID:      payload.AuthorID,
		PainterID:     payload.PainterID,
		GenreIDs:      payload.GenreIDs,
		TagIDs:        payload.TagIDs,
		PublisherIDs:  payload.PublisherIDs,
		RelatedIDs:    payload.RelatedIDs,
	}
}

// # Discovery Endpoints

/*
GET /api/v1/manga.

Description: Lists catalogue titles with combinable filters, free-text
search over title and subtitle, sorting and pagination.

Request:
  - q, type, status, age_rating: string filters
  - genres, tags: comma-separated IDs (any-of)
  - chapters_min/max, year_min/max, rating_min/max: ranges
  - sort: rating|created|latest_chapter|chapters|views|ratings
  - dir: asc|desc, page, limit

Response:
  - 200: Paginated []Manga with statistics and genres
*/
func (handler *Handler) listManga(writer http.ResponseWriter, request *http.Request) {

	// Filter and pagination extraction
	filter := parseFilter(request)
	params := pagination.FromRequest(request)

	// Domain Logic Execution
	mangas, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, mangas, meta)
}

/*
GET /api/v1/manga/{slug}.

Description: Returns the composed detail page model: the hydrated title,
its rating histogram, the community shelf distribution and related
titles. Each hit bumps the view counter.

Response:
  - 200: Detail
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getDetail(writer http.ResponseWriter, request *http.Request) {

	// Domain Logic Execution
	detail, err := handler.service.GetDetail(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, detail)
}

/*
GET /api/v1/manga/{slug}/short-info.

Description: Returns the compact card model used by hover previews,
without bumping the view counter.

Response:
  - 200: ShortInfo
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getShortInfo(writer http.ResponseWriter, request *http.Request) {

	// Domain Logic Execution
	info, err := handler.service.GetShortInfo(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, info)
}

/*
GET /api/v1/manga/popular.

Description: Top titles by view count, served cache-aside from Redis.

Response:
  - 200: []Manga
*/
func (handler *Handler) popular(writer http.ResponseWriter, request *http.Request) {
	mangas, err := handler.service.Popular(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mangas)
}

/*
GET /api/v1/manga/new.

Description: Most recently added titles, served cache-aside from Redis.

Response:
  - 200: []Manga
*/
func (handler *Handler) newest(writer http.ResponseWriter, request *http.Request) {
	mangas, err := handler.service.Newest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mangas)
}

/*
GET /api/v1/manga/popular-chapters.

Description: Most viewed titles that already have chapters, freshest
chapter first among ties, served cache-aside from Redis.

Response:
  - 200: []Manga
*/
func (handler *Handler) popularWithChapters(writer http.ResponseWriter, request *http.Request) {
	mangas, err := handler.service.PopularWithChapters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, mangas)
}

// # Authoring Endpoints

/*
POST /api/v1/manga.

Description: Registers a new catalogue title with its associations.
Admin only. The slug is derived from the title when omitted.

Response:
  - 201: Manga: The persisted title
  - 400: Validation: Missing title or unknown enum values
  - 409: ErrConflict: Duplicate slug
*/
func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {

	// Payload decoding
	var payload mangaRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	manga, err := handler.service.Create(request.Context(), payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, manga)
}

/*
PATCH /api/v1/manga/{slug}.

Description: Applies a partial metadata update. Absent fields stay
unchanged; absent association arrays keep their existing links. Admin
only.

Response:
  - 204: Updated
  - 404: ErrNotFound: Unknown slug
  - 409: ErrConflict: Duplicate slug
*/
func (handler *Handler) updateManga(writer http.ResponseWriter, request *http.Request) {

	// Payload decoding
	var payload mangaRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	slug := requestutil.Param(request, "slug")
	if err := handler.service.Update(request.Context(), slug, payload.toInput()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
DELETE /api/v1/manga/{slug}.

Description: Removes a title permanently, cascading to chapters, pages
and social data. Admin only.

Response:
  - 204: Deleted
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {

	// Domain Logic Execution
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}
