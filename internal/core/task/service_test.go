package task_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/core/task"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

type fakeRepository struct {
	tasks       map[string]*task.Task
	submissions map[string]*task.Submission
	enrollees   []string // fan-out targets for every class
}

func newFakeRepository(enrollees ...string) *fakeRepository {
	return &fakeRepository{
		tasks:       map[string]*task.Task{},
		submissions: map[string]*task.Submission{},
		enrollees:   enrollees,
	}
}

func (repository *fakeRepository) GetTask(_ context.Context, id string) (*task.Task, error) {
	found, ok := repository.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	copied := *found
	return &copied, nil
}

func (repository *fakeRepository) CreateTask(_ context.Context, t *task.Task) error {
	copied := *t
	repository.tasks[t.ID] = &copied
	for _, studentID := range repository.enrollees {
		id := uuid.New()
		repository.submissions[id] = &task.Submission{
			ID:        id,
			TaskID:    t.ID,
			StudentID: studentID,
			Status:    task.StatusAssigned,
		}
	}
	return nil
}

func (repository *fakeRepository) ProgressForClass(_ context.Context, _ string) ([]*task.Progress, error) {
	return nil, nil
}

func (repository *fakeRepository) GetSubmission(_ context.Context, id string) (*task.Submission, error) {
	found, ok := repository.submissions[id]
	if !ok {
		return nil, apperr.NotFound("Submission")
	}
	copied := *found
	return &copied, nil
}

func (repository *fakeRepository) FindSubmission(_ context.Context, taskID, studentID string) (*task.Submission, error) {
	for _, s := range repository.submissions {
		if s.TaskID == taskID && s.StudentID == studentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Submission")
}

func (repository *fakeRepository) ListForStudent(_ context.Context, studentID string) ([]*task.StudentTask, error) {
	listed := make([]*task.StudentTask, 0)
	for _, s := range repository.submissions {
		if s.StudentID != studentID {
			continue
		}
		listed = append(listed, &task.StudentTask{
			Task:       *repository.tasks[s.TaskID],
			Submission: *s,
		})
	}
	return listed, nil
}

func (repository *fakeRepository) Submit(_ context.Context, submissionID string, text, link *string) error {
	found, ok := repository.submissions[submissionID]
	if !ok {
		return apperr.NotFound("Submission")
	}
	now := time.Now()
	found.Text = text
	found.Link = link
	found.Status = task.StatusSubmitted
	found.SubmittedAt = &now
	return nil
}

func (repository *fakeRepository) Review(_ context.Context, submissionID string, status task.Status, remarks *string, reviewedBy string) error {
	found, ok := repository.submissions[submissionID]
	if !ok {
		return apperr.NotFound("Submission")
	}
	found.Status = status
	found.Remarks = remarks
	found.ReviewedBy = &reviewedBy
	return nil
}

func (repository *fakeRepository) ReviewQueue(_ context.Context, _ string) ([]*task.ReviewEntry, error) {
	return nil, nil
}

const (
	classID   = "7b0d12a0-9c4e-4a3b-8d5f-1e2a3b4c5d6e"
	teacherID = "11111111-2222-3333-4444-555555555555"
	aminaID   = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	bilalID   = "99999999-8888-7777-6666-555555555555"
)

func newService(repository *fakeRepository) *task.Service {
	return task.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedTask(t *testing.T, service *task.Service, dueDate time.Time) *task.Task {
	t.Helper()
	seeded := &task.Task{
		ClassID:   classID,
		Title:     "Chapter 4 problem set",
		DueDate:   dueDate,
		CreatedBy: teacherID,
	}
	require.NoError(t, service.CreateTask(context.Background(), seeded))
	return seeded
}

func TestService_CreateTask(t *testing.T) {
	repository := newFakeRepository(aminaID, bilalID)
	service := newService(repository)

	created := seedTask(t, service, time.Now().AddDate(0, 0, 7))
	assert.NotEmpty(t, created.ID)

	// One Assigned submission per enrollee.
	assert.Len(t, repository.submissions, 2)
	for _, submission := range repository.submissions {
		assert.Equal(t, task.StatusAssigned, submission.Status)
		assert.Equal(t, created.ID, submission.TaskID)
	}

	t.Run("missing_fields", func(t *testing.T) {
		err := service.CreateTask(context.Background(), &task.Task{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestService_Submit(t *testing.T) {
	repository := newFakeRepository(aminaID)
	service := newService(repository)

	created := seedTask(t, service, time.Now().AddDate(0, 0, 7))

	text := "My worked answers"
	submission, err := service.Submit(context.Background(), created.ID, aminaID, &text, nil)
	require.NoError(t, err)
	assert.Equal(t, task.StatusSubmitted, submission.Status)
	require.NotNil(t, submission.SubmittedAt)

	t.Run("resubmission_allowed", func(t *testing.T) {
		revised := "Revised answers"
		submission, err := service.Submit(context.Background(), created.ID, aminaID, &revised, nil)
		require.NoError(t, err)
		require.NotNil(t, submission.Text)
		assert.Equal(t, "Revised answers", *submission.Text)
	})

	t.Run("empty_payload", func(t *testing.T) {
		_, err := service.Submit(context.Background(), created.ID, aminaID, nil, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("not_assigned", func(t *testing.T) {
		_, err := service.Submit(context.Background(), created.ID, bilalID, &text, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("already_completed", func(t *testing.T) {
		found, err := repository.FindSubmission(context.Background(), created.ID, aminaID)
		require.NoError(t, err)
		require.NoError(t, service.Review(context.Background(), found.ID, task.StatusCompleted, nil, teacherID))

		_, err = service.Submit(context.Background(), created.ID, aminaID, &text, nil)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})
}

func TestService_Review(t *testing.T) {
	repository := newFakeRepository(aminaID)
	service := newService(repository)

	created := seedTask(t, service, time.Now().AddDate(0, 0, 7))

	found, err := repository.FindSubmission(context.Background(), created.ID, aminaID)
	require.NoError(t, err)

	t.Run("nothing_submitted", func(t *testing.T) {
		err := service.Review(context.Background(), found.ID, task.StatusReviewed, nil, teacherID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	})

	text := "Answers"
	_, err = service.Submit(context.Background(), created.ID, aminaID, &text, nil)
	require.NoError(t, err)

	t.Run("bad_status", func(t *testing.T) {
		err := service.Review(context.Background(), found.ID, task.StatusAssigned, nil, teacherID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	remarks := "Good work, minor slips in part b"
	require.NoError(t, service.Review(context.Background(), found.ID, task.StatusReviewed, &remarks, teacherID))

	reviewed, err := repository.GetSubmission(context.Background(), found.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusReviewed, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, teacherID, *reviewed.ReviewedBy)
}

func TestService_ListForStudent_Overdue(t *testing.T) {
	repository := newFakeRepository(aminaID)
	service := newService(repository)

	overdue := seedTask(t, service, time.Now().AddDate(0, 0, -3))
	upcoming := seedTask(t, service, time.Now().AddDate(0, 0, 3))

	listed, err := service.ListForStudent(context.Background(), aminaID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byTask := map[string]*task.StudentTask{}
	for _, st := range listed {
		byTask[st.Task.ID] = st
	}
	assert.True(t, byTask[overdue.ID].IsOverdue)
	assert.False(t, byTask[upcoming.ID].IsOverdue)

	t.Run("completed_never_overdue", func(t *testing.T) {
		found, err := repository.FindSubmission(context.Background(), overdue.ID, aminaID)
		require.NoError(t, err)
		text := "Late but done"
		_, err = service.Submit(context.Background(), overdue.ID, aminaID, &text, nil)
		require.NoError(t, err)
		require.NoError(t, service.Review(context.Background(), found.ID, task.StatusCompleted, nil, teacherID))

		listed, err := service.ListForStudent(context.Background(), aminaID)
		require.NoError(t, err)
		for _, st := range listed {
			if st.Task.ID == overdue.ID {
				assert.False(t, st.IsOverdue)
			}
		}
	})
}
