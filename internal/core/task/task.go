package task

import "time"

// Status tracks a submission through its lifecycle. A task itself has no
// status; state lives on the per-student submission rows.
type Status string

const (
	StatusAssigned  Status = "Assigned"
	StatusSubmitted Status = "Submitted"
	StatusReviewed  Status = "Reviewed"
	StatusCompleted Status = "Completed"
)

func (status Status) Valid() bool {
	switch status {
	case StatusAssigned, StatusSubmitted, StatusReviewed, StatusCompleted:
		return true
	}
	return false
}

// Task is an assignment issued against a class. Creating one fans out an
// Assigned submission row to every active enrollee.
type Task struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsOverdue reports whether the task's due date has passed. Completed
// submissions are never overdue regardless of the date.
func (task *Task) IsOverdue(now time.Time) bool {
	due := time.Date(task.DueDate.Year(), task.DueDate.Month(), task.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// Submission is one student's copy of a task.
type Submission struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	StudentID   string     `json:"student_id"`
	Status      Status     `json:"status"`
	Text        *string    `json:"submission_text"`
	Link        *string    `json:"submission_link"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Remarks     *string    `json:"remarks"`
	ReviewedBy  *string    `json:"reviewed_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StudentTask joins a student's submission with the task it answers. Overdue
// is derived server-side so every client agrees on the cutoff.
type StudentTask struct {
	Task       Task       `json:"task"`
	Submission Submission `json:"submission"`
	ClassName  string     `json:"class_name"`
	IsOverdue  bool       `json:"is_overdue"`
}

// Progress summarizes how a class is doing against one task.
type Progress struct {
	Task      Task `json:"task"`
	Total     int  `json:"total"`
	Submitted int  `json:"submitted"`
	Reviewed  int  `json:"reviewed"`
	Completed int  `json:"completed"`
}

// ReviewEntry is a submission enriched with the student's name, for the
// teacher's review queue.
type ReviewEntry struct {
	Submission
	StudentName string `json:"student_name"`
	TaskTitle   string `json:"task_title"`
}

// Global field names for validation
const (
	FieldClassID     = "class_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "due_date"
	FieldStatus      = "status"
	FieldText        = "submission_text"
	FieldLink        = "submission_link"
	FieldRemarks     = "remarks"
)
