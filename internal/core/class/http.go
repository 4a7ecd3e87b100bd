package class

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
	router.Get("/{id}", handler.getClass)

	// Staff
	router.With(middleware.RequireRoles(sec.RoleAdmin, sec.RoleTeacher)).Get("/", handler.listClasses)
	router.With(middleware.RequireRoles(sec.RoleAdmin, sec.RoleTeacher)).Get("/{id}/roster", handler.roster)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRoles(sec.RoleAdmin))

		adminRoute.Post("/", handler.createClass)
		adminRoute.Patch("/{id}", handler.updateClass)
		adminRoute.Delete("/{id}", handler.deactivateClass)
		adminRoute.Post("/{id}/enrollments", handler.enroll)
		adminRoute.Delete("/{id}/enrollments/{studentID}", handler.unenroll)
	})
}

type classRequest struct {
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
	TeacherID string `json:"teacher_id"`
	StartDate string `json:"start_date"`
}

func (handler *Handler) listClasses(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		OnlyActive: request.URL.Query().Get("include_inactive") != "true",
	}

	// Teachers only ever see their own classes; admins see everything.
	if sec.Role(claims.Role) == sec.RoleTeacher {
		filter.TeacherID = claims.UserID
	} else if teacherID := request.URL.Query().Get("teacher_id"); teacherID != "" {
		filter.TeacherID = teacherID
	}

	classes, err := handler.service.ListClasses(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classes)
}

// listMine resolves the caller's classes by role: a teacher's taught
// classes, a student's enrolled classes.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var classes []*Summary
	switch sec.Role(claims.Role) {
	case sec.RoleStudent:
		classes, err = handler.service.ClassesForStudent(request.Context(), claims.UserID)
	default:
		classes, err = handler.service.ListClasses(request.Context(), Filter{TeacherID: claims.UserID, OnlyActive: true})
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, classes)
}

func (handler *Handler) getClass(writer http.ResponseWriter, request *http.Request) {
	classID := chi.URLParam(request, "id")

	found, err := handler.service.GetClass(request.Context(), classID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createClass(writer http.ResponseWriter, request *http.Request) {
	var input classRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldStartDate, input.StartDate).Date(FieldStartDate, input.StartDate)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	startDate, _ := time.Parse(constants.DateLayout, input.StartDate)

	created := &Class{
		ClassName: input.ClassName,
		Subject:   input.Subject,
		TeacherID: input.TeacherID,
		StartDate: startDate,
	}
	if err := handler.service.CreateClass(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateClass(writer http.ResponseWriter, request *http.Request) {
	classID := chi.URLParam(request, "id")

	var input classRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	existing, err := handler.service.GetClass(request.Context(), classID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated := &Class{
		ClassName: input.ClassName,
		Subject:   input.Subject,
		TeacherID: input.TeacherID,
		StartDate: existing.StartDate,
	}
	if input.StartDate != "" {
		validator := &validate.Validator{}
		validator.Date(FieldStartDate, input.StartDate)
		if err := validator.Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		updated.StartDate, _ = time.Parse(constants.DateLayout, input.StartDate)
	}

	if err := handler.service.UpdateClass(request.Context(), classID, updated); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deactivateClass(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeactivateClass(request.Context(), chi.URLParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

type enrollRequest struct {
	StudentID string `json:"student_id"`
}

func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
	classID := chi.URLParam(request, "id")

	var input enrollRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	enrollment, err := handler.service.EnrollStudent(request.Context(), classID, input.StudentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, enrollment)
}

func (handler *Handler) unenroll(writer http.ResponseWriter, request *http.Request) {
	classID := chi.URLParam(request, "id")
	studentID := chi.URLParam(request, "studentID")

	if err := handler.service.RemoveStudent(request.Context(), classID, studentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) roster(writer http.ResponseWriter, request *http.Request) {
	roster, err := handler.service.Roster(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roster)
}
