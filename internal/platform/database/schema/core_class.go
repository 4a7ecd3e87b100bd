package schema

// CoreClassTable represents the 'core.class' table
type CoreClassTable struct {
	Table     string
	ID        string
	ClassName string
	Subject   string
	TeacherID string
	StartDate string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// CoreClass is the schema definition for core.class
var CoreClass = CoreClassTable{
	Table:     "core.class",
	ID:        "id",
	ClassName: "classname",
	Subject:   "subject",
	TeacherID: "teacherid",
	StartDate: "startdate",
	IsActive:  "isactive",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreClassTable) Columns() []string {
	return []string{t.ID, t.ClassName, t.Subject, t.TeacherID, t.StartDate, t.IsActive, t.CreatedAt, t.UpdatedAt}
}

// CoreEnrollmentTable represents the 'core.enrollment' table
type CoreEnrollmentTable struct {
	Table      string
	ID         string
	ClassID    string
	StudentID  string
	IsActive   string
	EnrolledAt string
}

// CoreEnrollment is the schema definition for core.enrollment
var CoreEnrollment = CoreEnrollmentTable{
	Table:      "core.enrollment",
	ID:         "id",
	ClassID:    "classid",
	StudentID:  "studentid",
	IsActive:   "isactive",
	EnrolledAt: "enrolledat",
}

func (t CoreEnrollmentTable) Columns() []string {
	return []string{t.ID, t.ClassID, t.StudentID, t.IsActive, t.EnrolledAt}
}
