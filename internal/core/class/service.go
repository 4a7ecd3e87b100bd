package class

import (
	"context"
	"log/slog"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
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

func (service *Service) ListClasses(context context.Context, filter Filter) ([]*Summary, error) {
	return service.repo.ListClasses(context, filter)
}

func (service *Service) GetClass(context context.Context, id string) (*Class, error) {
	return service.repo.GetClass(context, id)
}

func (service *Service) CreateClass(context context.Context, class *Class) error {
	validator := &validate.Validator{}

	validator.Required(FieldClassName, class.ClassName).MaxLen(FieldClassName, class.ClassName, 150).
		Required(FieldSubject, class.Subject).MaxLen(FieldSubject, class.Subject, 100).
		Required(FieldTeacherID, class.TeacherID).UUID(FieldTeacherID, class.TeacherID).
		Custom(FieldStartDate, class.StartDate.IsZero(), "is required")

	if err := validator.Err(); err != nil {
		return err
	}

	class.ID = uuid.New()
	class.IsActive = true

	if err := service.repo.CreateClass(context, class); err != nil {
		return err
	}

	service.logger.Info("class_created",
		slog.String("class_id", class.ID),
		slog.String("class_name", class.ClassName),
	)
	return nil
}

func (service *Service) UpdateClass(context context.Context, id string, class *Class) error {
	class.ID = id
	validator := &validate.Validator{}

	validator.Required(FieldClassName, class.ClassName).MaxLen(FieldClassName, class.ClassName, 150).
		Required(FieldSubject, class.Subject).MaxLen(FieldSubject, class.Subject, 100).
		Required(FieldTeacherID, class.TeacherID).UUID(FieldTeacherID, class.TeacherID)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateClass(context, class); err != nil {
		return err
	}

	service.logger.Info("class_updated", slog.String("class_id", class.ID))
	return nil
}

// DeactivateClass is the soft delete: the class disappears from active
// listings but its lessons, tasks, and attendance history stay intact.
func (service *Service) DeactivateClass(context context.Context, id string) error {
	if err := service.repo.SetClassActive(context, id, false); err != nil {
		return err
	}

	service.logger.Warn("class_deactivated", slog.String("class_id", id))
	return nil
}

func (service *Service) EnrollStudent(context context.Context, classID, studentID string) (*Enrollment, error) {
	validator := &validate.Validator{}
	validator.UUID("class_id", classID).UUID(FieldStudentID, studentID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Confirm the class exists and is still active before adding anyone.
	if _, err := service.repo.GetClass(context, classID); err != nil {
		return nil, err
	}

	enrollment := &Enrollment{
		ID:        uuid.New(),
		ClassID:   classID,
		StudentID: studentID,
		IsActive:  true,
	}

	if err := service.repo.Enroll(context, enrollment); err != nil {
		return nil, err
	}

	service.logger.Info("student_enrolled",
		slog.String("class_id", classID),
		slog.String("student_id", studentID),
	)
	return enrollment, nil
}

func (service *Service) RemoveStudent(context context.Context, classID, studentID string) error {
	if err := service.repo.Unenroll(context, classID, studentID); err != nil {
		return err
	}

	service.logger.Info("student_unenrolled",
		slog.String("class_id", classID),
		slog.String("student_id", studentID),
	)
	return nil
}

func (service *Service) Roster(context context.Context, classID string) ([]*Enrollee, error) {
	return service.repo.Roster(context, classID)
}

func (service *Service) ClassesForStudent(context context.Context, studentID string) ([]*Summary, error) {
	return service.repo.ClassesForStudent(context, studentID)
}
