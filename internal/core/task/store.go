package task

import "context"

type Repository interface {
	GetTask(context context.Context, id string) (*Task, error)
	// CreateTask inserts the task and one Assigned submission per active
	// enrollee of the class, in a single transaction.
	CreateTask(context context.Context, t *Task) error
	ProgressForClass(context context.Context, classID string) ([]*Progress, error)

	GetSubmission(context context.Context, id string) (*Submission, error)
	FindSubmission(context context.Context, taskID, studentID string) (*Submission, error)
	ListForStudent(context context.Context, studentID string) ([]*StudentTask, error)
	Submit(context context.Context, submissionID string, text, link *string) error
	Review(context context.Context, submissionID string, status Status, remarks *string, reviewedBy string) error
	ReviewQueue(context context.Context, teacherID string) ([]*ReviewEntry, error)
}
