package attendance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/middleware"
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
	// Students read their own history
	router.Get("/mine", handler.myHistory)
	router.Get("/mine/stats", handler.myStats)

	// Staff
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRoles(sec.RoleAdmin, sec.RoleTeacher))

		staffRoute.Get("/lessons/{lessonID}/sheet", handler.sheet)
		staffRoute.Put("/lessons/{lessonID}/sheet", handler.saveSheet)
		staffRoute.Get("/students/{studentID}", handler.studentHistory)
		staffRoute.Get("/students/{studentID}/stats", handler.studentStats)
	})
}

func (handler *Handler) sheet(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Sheet(request.Context(), chi.URLParam(request, "lessonID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

type saveSheetRequest struct {
	Marks []Mark `json:"marks"`
}

func (handler *Handler) saveSheet(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input saveSheetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lessonID := chi.URLParam(request, "lessonID")
	if err := handler.service.SaveSheet(request.Context(), lessonID, claims.UserID, input.Marks); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) myHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	history, err := handler.service.HistoryForStudent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, history)
}

func (handler *Handler) myStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.StatsForStudent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) studentHistory(writer http.ResponseWriter, request *http.Request) {
	history, err := handler.service.HistoryForStudent(request.Context(), chi.URLParam(request, "studentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, history)
}

func (handler *Handler) studentStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.StatsForStudent(request.Context(), chi.URLParam(request, "studentID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
