package class_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/core/class"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
)

type fakeRepository struct {
	classes     map[string]*class.Class
	enrollments map[string]*class.Enrollment // keyed classID+"/"+studentID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		classes:     map[string]*class.Class{},
		enrollments: map[string]*class.Enrollment{},
	}
}

func (repository *fakeRepository) ListClasses(_ context.Context, f class.Filter) ([]*class.Summary, error) {
	listed := make([]*class.Summary, 0)
	for _, c := range repository.classes {
		if f.TeacherID != "" && c.TeacherID != f.TeacherID {
			continue
		}
		if f.OnlyActive && !c.IsActive {
			continue
		}
		listed = append(listed, &class.Summary{Class: *c})
	}
	return listed, nil
}

func (repository *fakeRepository) GetClass(_ context.Context, id string) (*class.Class, error) {
	found, ok := repository.classes[id]
	if !ok {
		return nil, apperr.NotFound("Class")
	}
	copied := *found
	return &copied, nil
}

func (repository *fakeRepository) CreateClass(_ context.Context, c *class.Class) error {
	copied := *c
	repository.classes[c.ID] = &copied
	return nil
}

func (repository *fakeRepository) UpdateClass(_ context.Context, c *class.Class) error {
	if _, ok := repository.classes[c.ID]; !ok {
		return apperr.NotFound("Class")
	}
	copied := *c
	repository.classes[c.ID] = &copied
	return nil
}

func (repository *fakeRepository) SetClassActive(_ context.Context, id string, isActive bool) error {
	found, ok := repository.classes[id]
	if !ok {
		return apperr.NotFound("Class")
	}
	found.IsActive = isActive
	return nil
}

func (repository *fakeRepository) Enroll(_ context.Context, e *class.Enrollment) error {
	key := e.ClassID + "/" + e.StudentID
	if existing, ok := repository.enrollments[key]; ok {
		existing.IsActive = true
		*e = *existing
		return nil
	}
	copied := *e
	repository.enrollments[key] = &copied
	return nil
}

func (repository *fakeRepository) Unenroll(_ context.Context, classID, studentID string) error {
	found, ok := repository.enrollments[classID+"/"+studentID]
	if !ok || !found.IsActive {
		return apperr.NotFound("Enrollment")
	}
	found.IsActive = false
	return nil
}

func (repository *fakeRepository) Roster(_ context.Context, classID string) ([]*class.Enrollee, error) {
	roster := make([]*class.Enrollee, 0)
	for _, e := range repository.enrollments {
		if e.ClassID == classID && e.IsActive {
			roster = append(roster, &class.Enrollee{EnrollmentID: e.ID, StudentID: e.StudentID})
		}
	}
	return roster, nil
}

func (repository *fakeRepository) ClassesForStudent(_ context.Context, studentID string) ([]*class.Summary, error) {
	listed := make([]*class.Summary, 0)
	for _, e := range repository.enrollments {
		if e.StudentID != studentID || !e.IsActive {
			continue
		}
		if c, ok := repository.classes[e.ClassID]; ok {
			listed = append(listed, &class.Summary{Class: *c})
		}
	}
	return listed, nil
}

func newService(repository *fakeRepository) *class.Service {
	return class.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const teacherID = "7b0d12a0-9c4e-4a3b-8d5f-1e2a3b4c5d6e"
const studentID = "0f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0"

func seedClass(t *testing.T, service *class.Service) *class.Class {
	t.Helper()
	seeded := &class.Class{
		ClassName: "Algebra II",
		Subject:   "Mathematics",
		TeacherID: teacherID,
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.CreateClass(context.Background(), seeded))
	return seeded
}

func TestService_CreateClass(t *testing.T) {
	service := newService(newFakeRepository())

	created := seedClass(t, service)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive, "new classes start active")

	t.Run("missing_fields", func(t *testing.T) {
		err := service.CreateClass(context.Background(), &class.Class{})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("bad_teacher_id", func(t *testing.T) {
		err := service.CreateClass(context.Background(), &class.Class{
			ClassName: "X", Subject: "Y", TeacherID: "not-a-uuid",
			StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

func TestService_DeactivateClass(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository)

	created := seedClass(t, service)
	require.NoError(t, service.DeactivateClass(context.Background(), created.ID))

	found, err := service.GetClass(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	// Deactivated classes drop out of active listings but stay fetchable.
	active, err := service.ListClasses(context.Background(), class.Filter{OnlyActive: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	err = service.DeactivateClass(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestService_EnrollStudent(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository)

	created := seedClass(t, service)

	enrollment, err := service.EnrollStudent(context.Background(), created.ID, studentID)
	require.NoError(t, err)
	assert.True(t, enrollment.IsActive)

	roster, err := service.Roster(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, studentID, roster[0].StudentID)

	t.Run("unknown_class", func(t *testing.T) {
		_, err := service.EnrollStudent(context.Background(), "11111111-2222-3333-4444-555555555555", studentID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("remove_then_reenroll", func(t *testing.T) {
		require.NoError(t, service.RemoveStudent(context.Background(), created.ID, studentID))

		roster, err := service.Roster(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Empty(t, roster)

		// Re-enrolling reactivates the original row.
		again, err := service.EnrollStudent(context.Background(), created.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.ID, again.ID)
		assert.True(t, again.IsActive)
	})
}

func TestService_ClassesForStudent(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository)

	first := seedClass(t, service)
	second := &class.Class{
		ClassName: "Physics", Subject: "Science", TeacherID: teacherID,
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, service.CreateClass(context.Background(), second))

	_, err := service.EnrollStudent(context.Background(), first.ID, studentID)
	require.NoError(t, err)

	mine, err := service.ClassesForStudent(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}
