package dashboard

import "context"

type Repository interface {
	Student(context context.Context, studentID string) (*StudentDashboard, error)
	Teacher(context context.Context, teacherID string) (*TeacherDashboard, error)
	Admin(context context.Context) (*AdminDashboard, error)
}
