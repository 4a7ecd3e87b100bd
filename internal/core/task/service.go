package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/validate"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (service *Service) GetTask(context context.Context, id string) (*Task, error) {
	return service.repo.GetTask(context, id)
}

func (service *Service) CreateTask(context context.Context, task *Task) error {
	validator := &validate.Validator{}

	validator.Required(FieldClassID, task.ClassID).UUID(FieldClassID, task.ClassID).
		Required(FieldTitle, task.Title).MaxLen(FieldTitle, task.Title, 200).
		MaxLen(FieldDescription, task.Description, 5000).
		Custom(FieldDueDate, task.DueDate.IsZero(), "is required")

	if err := validator.Err(); err != nil {
		return err
	}

	task.ID = uuid.New()

	if err := service.repo.CreateTask(context, task); err != nil {
		return err
	}

	service.logger.Info("task_created",
		slog.String("task_id", task.ID),
		slog.String("class_id", task.ClassID),
	)
	return nil
}

func (service *Service) ProgressForClass(context context.Context, classID string) ([]*Progress, error) {
	return service.repo.ProgressForClass(context, classID)
}

func (service *Service) ListForStudent(context context.Context, studentID string) ([]*StudentTask, error) {
	tasks, err := service.repo.ListForStudent(context, studentID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	for _, t := range tasks {
		t.IsOverdue = t.Submission.Status != StatusCompleted && t.Task.IsOverdue(now)
	}
	return tasks, nil
}

// Submit records a student's answer. Resubmission is allowed until the
// teacher closes the submission as Completed.
func (service *Service) Submit(context context.Context, taskID, studentID string, text, link *string) (*Submission, error) {
	validator := &validate.Validator{}

	validator.UUID("task_id", taskID).
		Custom(FieldText, emptyPtr(text) && emptyPtr(link), "either text or link is required")
	if text != nil {
		validator.MaxLen(FieldText, *text, 10000)
	}
	if link != nil {
		validator.MaxLen(FieldLink, *link, 2048)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	submission, err := service.repo.FindSubmission(context, taskID, studentID)
	if err != nil {
		return nil, err
	}
	if submission.Status == StatusCompleted {
		return nil, apperr.Conflict("submission is already completed")
	}

	if err := service.repo.Submit(context, submission.ID, text, link); err != nil {
		return nil, err
	}

	service.logger.Info("task_submitted",
		slog.String("task_id", taskID),
		slog.String("student_id", studentID),
	)
	return service.repo.GetSubmission(context, submission.ID)
}

// Review closes out a submission as Reviewed or Completed.
func (service *Service) Review(context context.Context, submissionID string, status Status, remarks *string, reviewedBy string) error {
	validator := &validate.Validator{}

	validator.UUID("submission_id", submissionID).
		Custom(FieldStatus, status != StatusReviewed && status != StatusCompleted, "must be Reviewed or Completed")
	if remarks != nil {
		validator.MaxLen(FieldRemarks, *remarks, 5000)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	submission, err := service.repo.GetSubmission(context, submissionID)
	if err != nil {
		return err
	}
	if submission.Status == StatusAssigned {
		return apperr.Conflict("nothing has been submitted yet")
	}

	if err := service.repo.Review(context, submissionID, status, remarks, reviewedBy); err != nil {
		return err
	}

	service.logger.Info("submission_reviewed",
		slog.String("submission_id", submissionID),
		slog.String("status", string(status)),
	)
	return nil
}

func (service *Service) ReviewQueue(context context.Context, teacherID string) ([]*ReviewEntry, error) {
	return service.repo.ReviewQueue(context, teacherID)
}

func emptyPtr(value *string) bool {
	return value == nil || *value == ""
}
