package schema

// CoreLessonTable represents the 'core.lesson' table
//
// A lesson is a single scheduled sitting of a class (the original product
// calls these "sessions"; renamed here to avoid clashing with auth sessions).
type CoreLessonTable struct {
	Table       string
	ID          string
	ClassID     string
	LessonDate  string
	LessonTime  string
	LiveLink    string
	IsCompleted string
	CreatedBy   string
	CreatedAt   string
}

// CoreLesson is the schema definition for core.lesson
var CoreLesson = CoreLessonTable{
	Table:       "core.lesson",
	ID:          "id",
	ClassID:     "classid",
	LessonDate:  "lessondate",
	LessonTime:  "lessontime",
	LiveLink:    "livelink",
	IsCompleted: "iscompleted",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
}

func (t CoreLessonTable) Columns() []string {
	return []string{t.ID, t.ClassID, t.LessonDate, t.LessonTime, t.LiveLink, t.IsCompleted, t.CreatedBy, t.CreatedAt}
}

// CoreAttendanceTable represents the 'core.attendance' table
type CoreAttendanceTable struct {
	Table     string
	ID        string
	LessonID  string
	StudentID string
	Status    string
	MarkedBy  string
	MarkedAt  string
}

// CoreAttendance is the schema definition for core.attendance
var CoreAttendance = CoreAttendanceTable{
	Table:     "core.attendance",
	ID:        "id",
	LessonID:  "lessonid",
	StudentID: "studentid",
	Status:    "status",
	MarkedBy:  "markedby",
	MarkedAt:  "markedat",
}

func (t CoreAttendanceTable) Columns() []string {
	return []string{t.ID, t.LessonID, t.StudentID, t.Status, t.MarkedBy, t.MarkedAt}
}
