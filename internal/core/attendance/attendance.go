package attendance

import "time"

// Status is the closed attendance mark set.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Valid reports membership in the closed status set.
func (status Status) Valid() bool {
	switch status {
	case StatusPresent, StatusAbsent:
		return true
	}
	return false
}

// Record is one student's mark for one lesson. The (lesson, student) pair is
// unique; saving again overwrites the previous mark.
type Record struct {
	ID        string    `json:"id"`
	LessonID  string    `json:"lesson_id"`
	StudentID string    `json:"student_id"`
	Status    Status    `json:"status"`
	MarkedBy  string    `json:"marked_by"`
	MarkedAt  time.Time `json:"marked_at"`
}

// SheetEntry is one roster row of the marking sheet: the student plus any
// existing mark.
type SheetEntry struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name"`
	Status      *Status `json:"status"` // nil = not yet marked
}

// Mark is one submitted sheet row.
type Mark struct {
	StudentID string `json:"student_id"`
	Status    Status `json:"status"`
}

// HistoryEntry is a student's mark joined with its lesson and class.
type HistoryEntry struct {
	RecordID   string    `json:"record_id"`
	LessonID   string    `json:"lesson_id"`
	LessonDate time.Time `json:"lesson_date"`
	ClassName  string    `json:"class_name"`
	Subject    string    `json:"subject"`
	Status     Status    `json:"status"`
	MarkedAt   time.Time `json:"marked_at"`
}

// Stats summarizes a student's attendance. Percentage is present over total
// marked, 0 when nothing has been marked yet.
type Stats struct {
	TotalMarked int     `json:"total_marked"`
	Present     int     `json:"present"`
	Percentage  float64 `json:"percentage"`
}

// Global field names for validation
const (
	FieldLessonID  = "lesson_id"
	FieldStudentID = "student_id"
	FieldStatus    = "status"
	FieldMarks     = "marks"
)
