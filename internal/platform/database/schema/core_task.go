package schema

// CoreTaskTable represents the 'core.task' table
type CoreTaskTable struct {
	Table       string
	ID          string
	ClassID     string
	Title       string
	Description string
	DueDate     string
	CreatedBy   string
	CreatedAt   string
}

// CoreTask is the schema definition for core.task
var CoreTask = CoreTaskTable{
	Table:       "core.task",
	ID:          "id",
	ClassID:     "classid",
	Title:       "title",
	Description: "description",
	DueDate:     "duedate",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
}

func (t CoreTaskTable) Columns() []string {
	return []string{t.ID, t.ClassID, t.Title, t.Description, t.DueDate, t.CreatedBy, t.CreatedAt}
}

// CoreSubmissionTable represents the 'core.submission' table
type CoreSubmissionTable struct {
	Table          string
	ID             string
	TaskID         string
	StudentID      string
	Status         string
	SubmissionText string
	SubmissionLink string
	SubmittedAt    string
	Remarks        string
	ReviewedBy     string
	CreatedAt      string
	UpdatedAt      string
}

// CoreSubmission is the schema definition for core.submission
var CoreSubmission = CoreSubmissionTable{
	Table:          "core.submission",
	ID:             "id",
	TaskID:         "taskid",
	StudentID:      "studentid",
	Status:         "status",
	SubmissionText: "submissiontext",
	SubmissionLink: "submissionlink",
	SubmittedAt:    "submittedat",
	Remarks:        "remarks",
	ReviewedBy:     "reviewedby",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CoreSubmissionTable) Columns() []string {
	return []string{
		t.ID, t.TaskID, t.StudentID, t.Status, t.SubmissionText, t.SubmissionLink,
		t.SubmittedAt, t.Remarks, t.ReviewedBy, t.CreatedAt, t.UpdatedAt,
	}
}
