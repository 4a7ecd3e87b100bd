package attendance

import (
	"context"
	"log/slog"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
)

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

func (service *Service) Sheet(context context.Context, lessonID string) ([]*SheetEntry, error) {
	return service.repo.Sheet(context, lessonID)
}

// SaveSheet persists a full marking round. Saving any marks also closes the
// lesson: a marked lesson counts as held.
func (service *Service) SaveSheet(context context.Context, lessonID, markedBy string, marks []Mark) error {
	validator := &validate.Validator{}
	validator.UUID(FieldLessonID, lessonID).
		Custom(FieldMarks, len(marks) == 0, "at least one mark is required")

	for _, mark := range marks {
		validator.UUID(FieldStudentID, mark.StudentID).
			Custom(FieldStatus, !mark.Status.Valid(), "must be Present or Absent")
	}

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.SaveMarks(context, lessonID, markedBy, marks); err != nil {
		return err
	}

	service.logger.Info("attendance_saved",
		slog.String("lesson_id", lessonID),
		slog.Int("marks", len(marks)),
	)
	return nil
}

func (service *Service) HistoryForStudent(context context.Context, studentID string) ([]*HistoryEntry, error) {
	return service.repo.HistoryForStudent(context, studentID)
}

func (service *Service) StatsForStudent(context context.Context, studentID string) (*Stats, error) {
	return service.repo.StatsForStudent(context, studentID)
}
