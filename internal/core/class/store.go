package class

import "context"

type Repository interface {
	ListClasses(context context.Context, f Filter) ([]*Summary, error)
	GetClass(context context.Context, id string) (*Class, error)
	CreateClass(context context.Context, c *Class) error
	UpdateClass(context context.Context, c *Class) error
	SetClassActive(context context.Context, id string, isActive bool) error

	Enroll(context context.Context, e *Enrollment) error
	Unenroll(context context.Context, classID, studentID string) error
	Roster(context context.Context, classID string) ([]*Enrollee, error)
	ClassesForStudent(context context.Context, studentID string) ([]*Summary, error)
}
