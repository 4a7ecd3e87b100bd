package dashboard

import (
	"context"
	"log/slog"
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

func (service *Service) Student(context context.Context, studentID string) (*StudentDashboard, error) {
	return service.repo.Student(context, studentID)
}

func (service *Service) Teacher(context context.Context, teacherID string) (*TeacherDashboard, error) {
	return service.repo.Teacher(context, teacherID)
}

func (service *Service) Admin(context context.Context) (*AdminDashboard, error) {
	return service.repo.Admin(context)
}
