// Copyright (c) 2026 Tuition LMS. All rights reserved.
// Author: jafer.pilakkal@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/jaferpilakkal/tuition-lms/internal/platform/request"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/respond"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
)

// Handler implements the HTTP layer for administrative user management.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new profile [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Routes returns a [chi.Router] configured with the user management
// endpoints. The caller mounts it behind the admin role gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)
	router.Put("/{id}/active", handler.setUserActive)

	return router
}

// # User Management Endpoints

/*
GET /api/v1/users.

Description: Enumerates registered users, optionally filtered by role.

Request:
  - query role: string (optional: admin | teacher | student)

Response:
  - 200: []Profile: Users ordered by name
  - 400: Validation: Unknown role filter
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	role := sec.Role(request.URL.Query().Get("role"))

	users, err := handler.profileService.ListUsers(request.Context(), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

// createUserRequest defines the expected JSON payload for user creation.
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

/*
POST /api/v1/users.

Description: Provisions a new user account with an initial password.

Request:
  - body: createUserRequest

Response:
  - 201: Profile: The created user
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: Conflict: Email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 100).
		Required("email", input.Email).Email("email", input.Email).
		Required("password", input.Password).MinLen("password", input.Password, 8).
		OneOf("role", input.Role, string(sec.RoleAdmin), string(sec.RoleTeacher), string(sec.RoleStudent))

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.profileService.CreateUser(request.Context(), CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     sec.Role(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{id}.

Description: Retrieves a single user's profile.

Request:
  - id: string (UUID)

Response:
  - 200: Profile: Hydrated profile
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID := chi.URLParam(request, "id")

	v := &validate.Validator{}
	v.UUID("id", userID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.profileService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the expected JSON payload for profile updates.
type updateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

/*
PATCH /api/v1/users/{id}.

Description: Applies partial updates to a user's name or role.

Request:
  - id: string (UUID)
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: Profile: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID := chi.URLParam(request, "id")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.UUID("id", userID)
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleAdmin), string(sec.RoleTeacher), string(sec.RoleStudent))
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	serviceInput := UpdateUserInput{Name: input.Name}
	if input.Role != nil {
		role := sec.Role(*input.Role)
		serviceInput.Role = &role
	}

	user, err := handler.profileService.UpdateUser(request.Context(), userID, serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setUserActiveRequest defines the payload for the activation toggle.
type setUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}

/*
PUT /api/v1/users/{id}/active.

Description: Activates or deactivates a user. Deactivated users are rejected
on their next explicit login attempt.

Request:
  - id: string (UUID)
  - body: setUserActiveRequest

Response:
  - 204: No Content: Flag updated
  - 404: ErrNotFound: Unknown user
*/
func (handler *Handler) setUserActive(writer http.ResponseWriter, request *http.Request) {
	userID := chi.URLParam(request, "id")

	var input setUserActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.UUID("id", userID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.profileService.SetUserActive(request.Context(), userID, input.IsActive); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
