package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/jaferpilakkal/tuition-lms/internal/platform/request"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/respond"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.dashboard)
}

// dashboard serves the caller's landing aggregate, shaped by role.
func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var board any
	switch sec.Role(claims.Role) {
	case sec.RoleAdmin:
		board, err = handler.service.Admin(request.Context())
	case sec.RoleTeacher:
		board, err = handler.service.Teacher(request.Context(), claims.UserID)
	default:
		board, err = handler.service.Student(request.Context(), claims.UserID)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, board)
}
