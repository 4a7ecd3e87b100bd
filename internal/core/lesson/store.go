package lesson

import "context"

type Repository interface {
	GetLesson(context context.Context, id string) (*Lesson, error)
	CreateLesson(context context.Context, l *Lesson) error
	ListForTeacher(context context.Context, teacherID string, window Window) ([]*Detail, error)
	ListForClass(context context.Context, classID string, window Window) ([]*Detail, error)
	ListForStudent(context context.Context, studentID string, window Window) ([]*Detail, error)
	SetCompleted(context context.Context, id string, isCompleted bool) error
}
