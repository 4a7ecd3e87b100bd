// Package dashboard serves the read-only landing aggregates for each role.
// It queries the core tables directly; nothing here mutates state.
package dashboard

import "time"

// AttendanceSummary counts held (marked) lessons for a student.
type AttendanceSummary struct {
	TotalMarked int     `json:"total_marked"`
	Present     int     `json:"present"`
	Percentage  float64 `json:"percentage"`
}

// TaskCounts buckets a student's submissions. Pending is everything not yet
// Completed; Overdue is the pending subset whose due date has passed.
type TaskCounts struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// OverdueItem is one overdue task on the student's list.
type OverdueItem struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	ClassName string    `json:"class_name"`
	DueDate   time.Time `json:"due_date"`
}

// LessonItem is a lesson row trimmed down for dashboard lists.
type LessonItem struct {
	LessonID   string    `json:"lesson_id"`
	ClassName  string    `json:"class_name"`
	Subject    string    `json:"subject"`
	LessonDate time.Time `json:"lesson_date"`
	LessonTime string    `json:"lesson_time"`
	LiveLink   *string   `json:"live_link"`
}

type StudentDashboard struct {
	Attendance      AttendanceSummary `json:"attendance"`
	Tasks           TaskCounts        `json:"tasks"`
	OverdueTasks    []OverdueItem     `json:"overdue_tasks"`
	UpcomingLessons []LessonItem      `json:"upcoming_lessons"`
}

// ClassCompletion is a teacher's per-class submission completion rate.
type ClassCompletion struct {
	ClassID        string  `json:"class_id"`
	ClassName      string  `json:"class_name"`
	Submissions    int     `json:"submissions"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

type TeacherDashboard struct {
	TodaysLessons  []LessonItem      `json:"todays_lessons"`
	AwaitingReview int               `json:"awaiting_review"`
	Classes        []ClassCompletion `json:"classes"`
}

type AdminDashboard struct {
	ActiveStudents int `json:"active_students"`
	ActiveTeachers int `json:"active_teachers"`
	ActiveClasses  int `json:"active_classes"`
	PendingReviews int `json:"pending_reviews"`
}
