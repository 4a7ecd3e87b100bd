package class

import "time"

// Class represents a subject group taught by one teacher.
type Class struct {
	ID        string    `json:"id"`
	ClassName string    `json:"class_name"`
	Subject   string    `json:"subject"`
	TeacherID string    `json:"teacher_id"`
	StartDate time.Time `json:"start_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the list view of a class with its teacher and roster size.
type Summary struct {
	Class
	TeacherName   string `json:"teacher_name"`
	EnrolledCount int    `json:"enrolled_count"`
}

// Enrollment links a student to a class. Removal flips IsActive rather than
// deleting the row, preserving history.
type Enrollment struct {
	ID         string    `json:"id"`
	ClassID    string    `json:"class_id"`
	StudentID  string    `json:"student_id"`
	IsActive   bool      `json:"is_active"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Enrollee is a roster entry joined with the student's profile.
type Enrollee struct {
	EnrollmentID string    `json:"enrollment_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// Filter restricts class listings.
type Filter struct {
	TeacherID  string
	OnlyActive bool
}

// Global field names for validation
const (
	FieldClassName = "class_name"
	FieldSubject   = "subject"
	FieldTeacherID = "teacher_id"
	FieldStartDate = "start_date"
	FieldStudentID = "student_id"
)
