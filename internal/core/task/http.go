package task

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
	// Students
	router.Get("/mine", handler.listMine)
	router.Put("/{id}/submit", handler.submit)

	// Staff
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRoles(sec.RoleAdmin, sec.RoleTeacher))

		staffRoute.Post("/", handler.createTask)
		staffRoute.Get("/{id}", handler.getTask)
		staffRoute.Get("/class/{classID}/progress", handler.progressForClass)
		staffRoute.Get("/review-queue", handler.reviewQueue)
		staffRoute.Put("/submissions/{submissionID}/review", handler.review)
	})
}

type createRequest struct {
	ClassID     string `json:"class_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldDueDate, input.DueDate).Date(FieldDueDate, input.DueDate)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}
	dueDate, _ := time.Parse(constants.DateLayout, input.DueDate)

	created := &Task{
		ClassID:     input.ClassID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
		CreatedBy:   claims.UserID,
	}
	if err := handler.service.CreateTask(request.Context(), created); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetTask(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.service.ListForStudent(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tasks)
}

type submitRequest struct {
	Text *string `json:"submission_text"`
	Link *string `json:"submission_link"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	submission, err := handler.service.Submit(request.Context(), chi.URLParam(request, "id"), userID, input.Text, input.Link)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submission)
}

func (handler *Handler) progressForClass(writer http.ResponseWriter, request *http.Request) {
	progress, err := handler.service.ProgressForClass(request.Context(), chi.URLParam(request, "classID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, progress)
}

func (handler *Handler) reviewQueue(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.ReviewQueue(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

type reviewRequest struct {
	Status  Status  `json:"status"`
	Remarks *string `json:"remarks"`
}

func (handler *Handler) review(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	submissionID := chi.URLParam(request, "submissionID")
	if err := handler.service.Review(request.Context(), submissionID, input.Status, input.Remarks, claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
