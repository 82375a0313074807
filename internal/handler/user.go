package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osse101/UsersAPI_Go/internal/domain"
	"github.com/osse101/UsersAPI_Go/internal/dto"
	"github.com/osse101/UsersAPI_Go/internal/logger"
	"github.com/osse101/UsersAPI_Go/internal/mapping"
	"github.com/osse101/UsersAPI_Go/internal/pagination"
	"github.com/osse101/UsersAPI_Go/internal/user"
)

// AllowedCollectionMethods is advertised by OPTIONS /users.
const AllowedCollectionMethods = "GET, POST, OPTIONS"

// UserHandler handles the /users resource
type UserHandler struct {
	service user.Service
	rules   *mapping.Rules
}

// NewUserHandler creates a new user handler
func NewUserHandler(service user.Service, rules *mapping.Rules) *UserHandler {
	return &UserHandler{
		service: service,
		rules:   rules,
	}
}

// Routes mounts the users resource on a fresh sub-router. Content
// negotiation applies to every route, and HEAD is served by the GET handlers.
func (h *UserHandler) Routes(r chi.Router) {
	r.Use(Negotiate)
	r.Use(middleware.GetHead)

	r.Get("/", h.HandleListUsers)
	r.Post("/", h.HandleCreateUser)
	r.Options("/", h.HandleOptions)

	r.Get("/{"+ParamUserID+"}", h.HandleGetUser)
	r.Put("/{"+ParamUserID+"}", h.HandleReplaceUser)
	r.Patch("/{"+ParamUserID+"}", h.HandlePatchUser)
	r.Delete("/{"+ParamUserID+"}", h.HandleDeleteUser)
}

// ReplaceUserRequest is the PUT body. Pointer fields distinguish a missing
// or null member from an empty string.
type ReplaceUserRequest struct {
	Login     *string `json:"login"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// missing lists the members that were absent or null.
func (req ReplaceUserRequest) missing() []string {
	var names []string
	if req.Login == nil {
		names = append(names, string(user.FieldLogin))
	}
	if req.FirstName == nil {
		names = append(names, string(user.FieldFirstName))
	}
	if req.LastName == nil {
		names = append(names, string(user.FieldLastName))
	}
	return names
}

func (req ReplaceUserRequest) toDto() dto.UserToUpdateDto {
	return dto.UserToUpdateDto{
		Login:     *req.Login,
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
	}
}

// HandleGetUser returns a single user
// @Summary Get user
// @Description Returns one user by id. HEAD returns the same headers without a body.
// @Tags users
// @Produce json,xml
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} dto.UserDto
// @Failure 404 {object} ErrorResponse
// @Failure 406 {string} string "Not Acceptable"
// @Router /users/{userId} [get]
// @Router /users/{userId} [head]
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrMsgUserNotFound)
		return
	}

	u, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get user", err)
		return
	}

	respond(w, r, http.StatusOK, h.rules.ToUserDto(*u))
}

// HandleListUsers returns one page of users
// @Summary List users
// @Description Returns a page of users in insertion order. Navigation data is in the X-Pagination header.
// @Tags users
// @Produce json,xml
// @Param pageNumber query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 10, max 20)"
// @Success 200 {array} dto.UserDto
// @Header 200 {string} X-Pagination "JSON pagination metadata"
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	pageNumber := queryInt(r, QueryPageNumber, pagination.DefaultPageNumber)
	pageSize := queryInt(r, QueryPageSize, pagination.DefaultPageSize)

	result, err := h.service.ListUsers(r.Context(), pageNumber, pageSize)
	if err != nil {
		respondServiceError(w, r, "List users", err)
		return
	}

	meta, err := encodePaginationHeader(buildPaginationMetadata(r, result.Page))
	if err != nil {
		respondServiceError(w, r, "List users", err)
		return
	}
	w.Header().Set(HeaderPagination, meta)

	users := h.rules.ToUserDtos(result.Users)
	respondNegotiated(w, r, http.StatusOK, users, dto.UserListDto{Users: users})
}

// HandleCreateUser creates a user with a generated id
// @Summary Create user
// @Description Creates a user and returns its id. The Location header points at the new resource.
// @Tags users
// @Accept json
// @Produce json,xml
// @Param request body dto.UserToCreateDto true "User to create"
// @Success 201 {string} string "New user ID"
// @Header 201 {string} Location "URI of the created user"
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req dto.UserToCreateDto
	if err := decodeBody(r, &req); err != nil {
		log.Warn(LogMsgDecodeFailed, "operation", "Create user", "error", err)
		respondBodyError(w, r, err, bodyErrorMessage(err))
		return
	}

	created, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Create user", err)
		return
	}

	w.Header().Set(HeaderLocation, userLocation(r, created.ID))
	respond(w, r, http.StatusCreated, created.ID)
}

// HandleReplaceUser replaces a user, creating it under the given id when absent
// @Summary Replace user
// @Description Overwrites every field of a user. An unknown id creates the user under that id.
// @Tags users
// @Accept json
// @Produce json,xml
// @Param userId path string true "User ID (UUID)"
// @Param request body dto.UserToUpdateDto true "Replacement user"
// @Success 201 {string} string "Created user ID"
// @Success 204 "Updated"
// @Header 201 {string} Location "URI of the created user"
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId} [put]
func (h *UserHandler) HandleReplaceUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, ok := parseUserID(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidUserID)
		return
	}

	var req ReplaceUserRequest
	if err := decodeBody(r, &req); err != nil {
		log.Warn(LogMsgDecodeFailed, "operation", "Replace user", "error", err)
		respondBodyError(w, r, err, bodyErrorMessage(err))
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		log.Warn(LogMsgDecodeFailed, "operation", "Replace user", "missing", missing)
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingFields, strings.Join(missing, ", ")))
		return
	}

	result, err := h.service.ReplaceUser(r.Context(), id, req.toDto())
	if err != nil {
		if errors.Is(err, domain.ErrMalformedRequest) {
			log.Warn(LogMsgDecodeFailed, "operation", "Replace user", "error", err)
			respondError(w, r, http.StatusBadRequest, ErrMsgInvalidUserID)
			return
		}
		respondServiceError(w, r, "Replace user", err)
		return
	}

	if result.Created {
		w.Header().Set(HeaderLocation, userLocation(r, result.User.ID))
		respond(w, r, http.StatusCreated, result.User.ID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePatchUser applies a partial update to an existing user
// @Summary Patch user
// @Description Applies a JSON Patch (add, replace, remove) array or a merge-patch object to an existing user.
// @Tags users
// @Accept json
// @Produce json,xml
// @Param userId path string true "User ID (UUID)"
// @Param request body []user.PatchOperation true "JSON Patch document"
// @Success 204 "Updated"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId} [patch]
func (h *UserHandler) HandlePatchUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, ok := parseUserID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrMsgUserNotFound)
		return
	}

	body, err := readBody(r)
	if err != nil {
		log.Warn(LogMsgDecodeFailed, "operation", "Patch user", "error", err)
		respondBodyError(w, r, err, ErrMsgMissingPatch)
		return
	}

	doc, err := decodePatch(r, body)
	if err != nil {
		log.Warn(LogMsgDecodeFailed, "operation", "Patch user", "error", err)
		respondError(w, r, http.StatusBadRequest, ErrMsgUnsupportedPatchBody)
		return
	}

	if _, err := h.service.PatchUser(r.Context(), id, doc); err != nil {
		respondServiceError(w, r, "Patch user", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteUser removes a user
// @Summary Delete user
// @Tags users
// @Produce json,xml
// @Param userId path string true "User ID (UUID)"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userId} [delete]
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrMsgUserNotFound)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete user", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleOptions advertises the methods of the users collection
// @Summary Collection options
// @Tags users
// @Success 200 "Allow header lists supported methods"
// @Header 200 {string} Allow "GET, POST, OPTIONS"
// @Router /users [options]
func (h *UserHandler) HandleOptions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderAllow, AllowedCollectionMethods)
	w.WriteHeader(http.StatusOK)
}

// decodePatch picks the patch dialect from the body shape. The Content-Type
// header, when it names a patch media type, must agree with the shape.
// Operations are left unchecked until the service has loaded the user.
func decodePatch(r *http.Request, body []byte) (user.PatchDocument, error) {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))

	switch body[0] {
	case '[':
		if strings.HasPrefix(contentType, MediaTypeMergePatch) {
			return nil, fmt.Errorf("%w: array body sent as merge patch", domain.ErrMalformedRequest)
		}
		var ops user.JSONPatchDocument
		if err := json.Unmarshal(body, &ops); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
		}
		return ops, nil
	case '{':
		if strings.HasPrefix(contentType, MediaTypeJSONPatch) {
			return nil, fmt.Errorf("%w: object body sent as JSON Patch", domain.ErrMalformedRequest)
		}
		var doc user.MergePatchDocument
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: unsupported patch body", domain.ErrMalformedRequest)
	}
}

// respondBodyError answers 413 when the body hit the size limit and 400 with
// message otherwise.
func respondBodyError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, errBodyTooLarge) {
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
		return
	}
	respondError(w, r, http.StatusBadRequest, message)
}

// bodyErrorMessage distinguishes an absent body from an undecodable one.
func bodyErrorMessage(err error) string {
	if errors.Is(err, errMissingBody) {
		return ErrMsgMissingBody
	}
	return ErrMsgInvalidRequest
}
