package lesson_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaferpilakkal/tuition-lms/internal/core/lesson"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/apperr"
)

type fakeRepository struct {
	lessons map[string]*lesson.Lesson
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{lessons: map[string]*lesson.Lesson{}}
}

func (repository *fakeRepository) GetLesson(_ context.Context, id string) (*lesson.Lesson, error) {
	found, ok := repository.lessons[id]
	if !ok {
		return nil, apperr.NotFound("Lesson")
	}
	copied := *found
	return &copied, nil
}

func (repository *fakeRepository) CreateLesson(_ context.Context, l *lesson.Lesson) error {
	copied := *l
	repository.lessons[l.ID] = &copied
	return nil
}

func (repository *fakeRepository) ListForTeacher(_ context.Context, _ string, _ lesson.Window) ([]*lesson.Detail, error) {
	return nil, nil
}

func (repository *fakeRepository) ListForClass(_ context.Context, _ string, _ lesson.Window) ([]*lesson.Detail, error) {
	return nil, nil
}

func (repository *fakeRepository) ListForStudent(_ context.Context, _ string, _ lesson.Window) ([]*lesson.Detail, error) {
	return nil, nil
}

func (repository *fakeRepository) SetCompleted(_ context.Context, id string, isCompleted bool) error {
	found, ok := repository.lessons[id]
	if !ok {
		return apperr.NotFound("Lesson")
	}
	found.IsCompleted = isCompleted
	return nil
}

func newService(repository *fakeRepository) *lesson.Service {
	return lesson.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const classID = "7b0d12a0-9c4e-4a3b-8d5f-1e2a3b4c5d6e"

func TestService_ScheduleLesson(t *testing.T) {
	service := newService(newFakeRepository())

	scheduled := &lesson.Lesson{
		ClassID:    classID,
		LessonDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		LessonTime: "16:30",
	}
	require.NoError(t, service.ScheduleLesson(context.Background(), scheduled))
	assert.NotEmpty(t, scheduled.ID)
	assert.False(t, scheduled.IsCompleted)

	badCases := []struct {
		name   string
		lesson lesson.Lesson
	}{
		{"missing_class", lesson.Lesson{
			LessonDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), LessonTime: "16:30",
		}},
		{"missing_date", lesson.Lesson{ClassID: classID, LessonTime: "16:30"}},
		{"bad_time_format", lesson.Lesson{
			ClassID: classID, LessonDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), LessonTime: "4:30pm",
		}},
		{"out_of_range_time", lesson.Lesson{
			ClassID: classID, LessonDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), LessonTime: "25:00",
		}},
	}
	for _, testCase := range badCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := service.ScheduleLesson(context.Background(), &testCase.lesson)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}
}

func TestService_MarkCompleted(t *testing.T) {
	repository := newFakeRepository()
	service := newService(repository)

	scheduled := &lesson.Lesson{
		ClassID:    classID,
		LessonDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		LessonTime: "16:30",
	}
	require.NoError(t, service.ScheduleLesson(context.Background(), scheduled))
	require.NoError(t, service.MarkCompleted(context.Background(), scheduled.ID))

	found, err := service.GetLesson(context.Background(), scheduled.ID)
	require.NoError(t, err)
	assert.True(t, found.IsCompleted)

	err = service.MarkCompleted(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestParseWindow(t *testing.T) {
	assert.Equal(t, lesson.WindowUpcoming, lesson.ParseWindow("upcoming"))
	assert.Equal(t, lesson.WindowPast, lesson.ParseWindow("past"))
	assert.Equal(t, lesson.WindowAll, lesson.ParseWindow(""))
	assert.Equal(t, lesson.WindowAll, lesson.ParseWindow("yesterday"))
}
