/*
Package comment provides the HTTP interface for threaded discussions.

# Routing Strategy

Reading a discussion is public. Posting, editing, deleting and voting all
require authentication.
*/
package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
	"github.com/valeXeich/Mangalib/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments and votes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comment domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discussion reads
	router.Get("/", handler.listThreads)

	// Authenticated writes
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.createComment)
		authed.Patch("/{id}", handler.updateComment)
		authed.Delete("/{id}", handler.deleteComment)
		authed.Post("/{id}/vote", handler.castVote)
	})

	return router
}

// # Request And Response Payloads

// createCommentRequest defines the inbound JSON schema for posting.
type createCommentRequest struct {
	MangaID  *string `json:"manga_id"`
	PageID   *string `json:"page_id"`
	ParentID *string `json:"parent_id"`
	Content  string  `json:"content"`
}

// updateCommentRequest defines the inbound JSON schema for editing.
type updateCommentRequest struct {
	Content string `json:"content"`
}

// voteRequest defines the inbound JSON schema for vote casting.
type voteRequest struct {
	Vote int `json:"vote"`
}

// voteResponse reports what the cast did to the user's vote.
type voteResponse struct {
	Outcome VoteOutcome `json:"outcome"`
}

// # Endpoints

/*
GET /api/v1/comments?manga=&chapter=&page=.

Description: Returns one target's discussion as nested reply trees with
vote scores. Exactly one of the three target parameters should be set;
page wins over chapter, chapter over manga. The manga parameter takes
the public slug, chapter and page take IDs.

Response:
  - 200: []Comment: Top-level comments with nested replies
  - 400: Validation: No target parameter given
*/
func (handler *Handler) listThreads(writer http.ResponseWriter, request *http.Request) {

	// Target extraction
	target := Target{
		MangaSlug: request.URL.Query().Get("manga"),
		ChapterID: request.URL.Query().Get("chapter"),
		PageID:    request.URL.Query().Get("page"),
	}

	// Target presence validation
	validator := &validate.Validator{}
	validator.Custom(FieldMangaID,
		target.MangaSlug == "" && target.ChapterID == "" && target.PageID == "",
		"A manga, chapter or page parameter is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	threads, err := handler.service.ListThreads(request.Context(), target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, threads)
}

/*
POST /api/v1/comments.

Description: Posts a comment on a manga or page, or a reply to an
existing comment.

Request:
  - body: { manga_id?: string, page_id?: string, parent_id?: string, content: string }

Response:
  - 201: Comment: The persisted comment
  - 400: Validation: Empty content, missing target or page/manga mismatch
  - 404: ErrNotFound: Unknown parent or page
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Payload decoding
	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	comment, err := handler.service.Create(request.Context(), CreateInput{
		AuthorID: userID,
		MangaID:  input.MangaID,
		PageID:   input.PageID,
		ParentID: input.ParentID,
		Content:  input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, comment)
}

/*
PATCH /api/v1/comments/{id}.

Description: Rewrites the text of the caller's own comment. Nothing else
is editable.

Response:
  - 204: Updated
  - 404: ErrNotFound: No comment of the caller's matches the ID
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Payload decoding
	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	commentID := requestutil.ID(request, "id")
	if err := handler.service.UpdateContent(request.Context(), commentID, userID, input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
DELETE /api/v1/comments/{id}.

Description: Removes the caller's own comment together with its replies
and votes.

Response:
  - 204: Deleted
  - 404: ErrNotFound: No comment of the caller's matches the ID
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	commentID := requestutil.ID(request, "id")
	if err := handler.service.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.NoContent(writer)
}

/*
POST /api/v1/comments/{id}/vote.

Description: Toggles the caller's vote on a comment. Casting the same
vote twice withdraws it, casting the opposite vote flips it.

Request:
  - body: { vote: 1 | -1 }

Response:
  - 200: { outcome: "added" | "updated" | "removed" }
  - 400: Validation: Vote outside {1, -1}
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) castVote(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Payload decoding
	var input voteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	commentID := requestutil.ID(request, "id")
	outcome, err := handler.service.CastVote(request.Context(), userID, commentID, input.Vote)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, voteResponse{Outcome: outcome})
}
