/*
Package account provides the HTTP interface for private profile data.

Every endpoint operates on the authenticated caller, there is no way to
address another member's account through this surface.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valeXeich/Mangalib/internal/platform/middleware"
	requestutil "github.com/valeXeich/Mangalib/internal/platform/request"
	"github.com/valeXeich/Mangalib/internal/platform/respond"
)

// Handler implements the HTTP layer for profile management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the profile endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.me)
	router.Patch("/me", handler.updateMe)

	return router
}

// updateRequest defines the inbound JSON schema for profile patches.
type updateRequest struct {
	Username      *string `json:"username"`
	AvatarURL     *string `json:"avatar_url"`
	BackgroundURL *string `json:"background_url"`
}

/*
GET /api/v1/account/me.

Description: The authenticated member's full private profile.

Response:
  - 200: User: Success
  - 401: ErrUnauthorized: Missing authentication
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, user)
}

/*
PATCH /api/v1/account/me.

Description: Partially updates the authenticated member's profile.
Absent fields keep their current values.

Request:
  - Body: updateRequest (Username, AvatarURL, BackgroundURL)

Response:
  - 200: User: Updated profile
  - 400: ErrValidation: Malformed URLs or handle
  - 409: ErrConflict: Handle already taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {

	// Actor resolution
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Payload decoding
	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	user, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username:      payload.Username,
		AvatarURL:     payload.AvatarURL,
		BackgroundURL: payload.BackgroundURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, user)
}
