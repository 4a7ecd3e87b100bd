package lesson

import "time"

// Lesson is a single scheduled sitting of a class.
type Lesson struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	LessonDate  time.Time `json:"lesson_date"`
	LessonTime  string    `json:"lesson_time"` // HH:MM, local to the center
	LiveLink    *string   `json:"live_link"`
	IsCompleted bool      `json:"is_completed"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail joins a lesson with its class for list views.
type Detail struct {
	Lesson
	ClassName string `json:"class_name"`
	Subject   string `json:"subject"`
}

// Window selects which side of today a listing covers.
type Window string

const (
	WindowUpcoming Window = "upcoming"
	WindowPast     Window = "past"
	WindowAll      Window = "all"
)

// Global field names for validation
const (
	FieldClassID    = "class_id"
	FieldLessonDate = "lesson_date"
	FieldLessonTime = "lesson_time"
	FieldLiveLink   = "live_link"
)
