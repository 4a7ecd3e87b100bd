package lesson

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) GetLesson(context context.Context, id string) (*Lesson, error) {
	return service.repo.GetLesson(context, id)
}

func (service *Service) ScheduleLesson(context context.Context, lesson *Lesson) error {
	validator := &validate.Validator{}

	validator.Required(FieldClassID, lesson.ClassID).UUID(FieldClassID, lesson.ClassID).
		Required(FieldLessonTime, lesson.LessonTime).
		Custom(FieldLessonTime, !timeOfDayPattern.MatchString(lesson.LessonTime), "must be a valid HH:MM time").
		Custom(FieldLessonDate, lesson.LessonDate.IsZero(), "is required")

	if err := validator.Err(); err != nil {
		return err
	}

	lesson.ID = uuid.New()
	lesson.IsCompleted = false

	if err := service.repo.CreateLesson(context, lesson); err != nil {
		return err
	}

	service.logger.Info("lesson_scheduled",
		slog.String("lesson_id", lesson.ID),
		slog.String("class_id", lesson.ClassID),
	)
	return nil
}

func (service *Service) ListForTeacher(context context.Context, teacherID string, window Window) ([]*Detail, error) {
	return service.repo.ListForTeacher(context, teacherID, window)
}

func (service *Service) ListForClass(context context.Context, classID string, window Window) ([]*Detail, error) {
	return service.repo.ListForClass(context, classID, window)
}

func (service *Service) ListForStudent(context context.Context, studentID string, window Window) ([]*Detail, error) {
	return service.repo.ListForStudent(context, studentID, window)
}

func (service *Service) MarkCompleted(context context.Context, id string) error {
	if err := service.repo.SetCompleted(context, id, true); err != nil {
		return err
	}

	service.logger.Info("lesson_completed", slog.String("lesson_id", id))
	return nil
}

// ParseWindow maps a query value onto the closed Window set, defaulting to all.
func ParseWindow(raw string) Window {
	switch Window(raw) {
	case WindowUpcoming, WindowPast:
		return Window(raw)
	default:
		return WindowAll
	}
}
