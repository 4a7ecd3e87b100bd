package lesson

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/constants"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/middleware"
	requestutil "github.com/jaferpilakkal/tuition-lms/internal/platform/request"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/respond"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Any authenticated role
	router.Get("/mine", handler.listMine)
	router.Get("/{id}", handler.getLesson)

	// Staff
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRoles(sec.RoleAdmin, sec.RoleTeacher))

		staffRoute.Post("/", handler.scheduleLesson)
		staffRoute.Put("/{id}/complete", handler.markCompleted)
		staffRoute.Get("/class/{classID}", handler.listForClass)
	})
}

type scheduleRequest struct {
	ClassID    string  `json:"class_id"`
	LessonDate string  `json:"lesson_date"`
	LessonTime string  `json:"lesson_time"`
	LiveLink   *string `json:"live_link"`
}

func (handler *Handler) scheduleLesson(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input scheduleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLessonDate, input.LessonDate).Date(FieldLessonDate, input.LessonDate)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	lessonDate, _ := time.Parse(constants.DateLayout, input.LessonDate)

	scheduled := &Lesson{
		ClassID:    input.ClassID,
		LessonDate: lessonDate,
		LessonTime: input.LessonTime,
		LiveLink:   input.LiveLink,
		CreatedBy:  claims.UserID,
	}
	if err := handler.service.ScheduleLesson(request.Context(), scheduled); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, scheduled)
}

func (handler *Handler) getLesson(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetLesson(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// listMine resolves the caller's lessons by role: taught classes for a
// teacher, enrolled classes for a student.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	window := ParseWindow(request.URL.Query().Get("window"))

	var lessons []*Detail
	switch sec.Role(claims.Role) {
	case sec.RoleStudent:
		lessons, err = handler.service.ListForStudent(request.Context(), claims.UserID, window)
	default:
		lessons, err = handler.service.ListForTeacher(request.Context(), claims.UserID, window)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lessons)
}

func (handler *Handler) listForClass(writer http.ResponseWriter, request *http.Request) {
	window := ParseWindow(request.URL.Query().Get("window"))

	lessons, err := handler.service.ListForClass(request.Context(), chi.URLParam(request, "classID"), window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lessons)
}

func (handler *Handler) markCompleted(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.MarkCompleted(request.Context(), chi.URLParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
