package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/database/schema"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
	"github.com/jaferpilakkal/tuition-lms/pkg/uuid"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetTask(context context.Context, id string) (*Task, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreTask.ID, schema.CoreTask.ClassID, schema.CoreTask.Title, schema.CoreTask.Description,
		schema.CoreTask.DueDate, schema.CoreTask.CreatedBy, schema.CoreTask.CreatedAt,
		schema.CoreTask.Table, schema.CoreTask.ID,
	)

	t := &Task{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&t.ID, &t.ClassID, &t.Title, &t.Description, &t.DueDate, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_task")
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTask(context context.Context, t *Task) error {
	insertTask := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s
	`,
		schema.CoreTask.Table,
		schema.CoreTask.ID, schema.CoreTask.ClassID, schema.CoreTask.Title, schema.CoreTask.Description,
		schema.CoreTask.DueDate, schema.CoreTask.CreatedBy, schema.CoreTask.CreatedAt,
		schema.CoreTask.CreatedAt,
	)
	selectEnrollees := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = TRUE`,
		schema.CoreEnrollment.StudentID, schema.CoreEnrollment.Table,
		schema.CoreEnrollment.ClassID, schema.CoreEnrollment.IsActive,
	)
	insertSubmission := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`,
		schema.CoreSubmission.Table,
		schema.CoreSubmission.ID, schema.CoreSubmission.TaskID, schema.CoreSubmission.StudentID,
		schema.CoreSubmission.Status, schema.CoreSubmission.CreatedAt, schema.CoreSubmission.UpdatedAt,
	)

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_task_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if err := transaction.QueryRow(context, insertTask,
		t.ID, t.ClassID, t.Title, t.Description, t.DueDate, t.CreatedBy,
	).Scan(&t.CreatedAt); err != nil {
		return dberr.Wrap(err, "insert_task")
	}

	rows, err := transaction.Query(context, selectEnrollees, t.ClassID)
	if err != nil {
		return dberr.Wrap(err, "select_enrollees")
	}

	enrollees := make([]string, 0)
	for rows.Next() {
		var studentID string
		if err := rows.Scan(&studentID); err != nil {
			rows.Close()
			return dberr.Wrap(err, "scan_enrollee")
		}
		enrollees = append(enrollees, studentID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "select_enrollees")
	}

	for _, studentID := range enrollees {
		if _, err := transaction.Exec(context, insertSubmission,
			uuid.New(), t.ID, studentID, StatusAssigned,
		); err != nil {
			return dberr.Wrap(err, "fan_out_submission")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_task_commit")
	}
	return nil
}

func (repository *PostgresRepository) ProgressForClass(context context.Context, classID string) ([]*Progress, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       count(s.%s),
		       count(*) FILTER (WHERE s.%s = $2),
		       count(*) FILTER (WHERE s.%s = $3),
		       count(*) FILTER (WHERE s.%s = $4)
		FROM %s t
		LEFT JOIN %s s ON s.%s = t.%s
		WHERE t.%s = $1
		GROUP BY t.%s
		ORDER BY t.%s DESC
	`,
		schema.CoreTask.ID, schema.CoreTask.ClassID, schema.CoreTask.Title, schema.CoreTask.Description,
		schema.CoreTask.DueDate, schema.CoreTask.CreatedBy, schema.CoreTask.CreatedAt,
		schema.CoreSubmission.ID,
		schema.CoreSubmission.Status, schema.CoreSubmission.Status, schema.CoreSubmission.Status,
		schema.CoreTask.Table,
		schema.CoreSubmission.Table, schema.CoreSubmission.TaskID, schema.CoreTask.ID,
		schema.CoreTask.ClassID,
		schema.CoreTask.ID,
		schema.CoreTask.DueDate,
	)

	rows, err := repository.db.Query(context, query, classID, StatusSubmitted, StatusReviewed, StatusCompleted)
	if err != nil {
		return nil, dberr.Wrap(err, "task_progress")
	}
	defer rows.Close()

	progress := make([]*Progress, 0)
	for rows.Next() {
		p := &Progress{}
		if err := rows.Scan(
			&p.Task.ID, &p.Task.ClassID, &p.Task.Title, &p.Task.Description,
			&p.Task.DueDate, &p.Task.CreatedBy, &p.Task.CreatedAt,
			&p.Total, &p.Submitted, &p.Reviewed, &p.Completed,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_task_progress")
		}
		progress = append(progress, p)
	}

	return progress, rows.Err()
}

func submissionColumns(alias string) string {
	cols := schema.CoreSubmission.Columns()
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

func scanSubmission(row pgx.Row, s *Submission) error {
	return row.Scan(
		&s.ID, &s.TaskID, &s.StudentID, &s.Status, &s.Text, &s.Link,
		&s.SubmittedAt, &s.Remarks, &s.ReviewedBy, &s.CreatedAt, &s.UpdatedAt,
	)
}

func (repository *PostgresRepository) GetSubmission(context context.Context, id string) (*Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`,
		submissionColumns("s"), schema.CoreSubmission.Table, schema.CoreSubmission.ID,
	)

	s := &Submission{}
	if err := scanSubmission(repository.db.QueryRow(context, query, id), s); err != nil {
		return nil, dberr.Wrap(err, "get_submission")
	}
	return s, nil
}

func (repository *PostgresRepository) FindSubmission(context context.Context, taskID, studentID string) (*Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1 AND s.%s = $2`,
		submissionColumns("s"), schema.CoreSubmission.Table,
		schema.CoreSubmission.TaskID, schema.CoreSubmission.StudentID,
	)

	s := &Submission{}
	if err := scanSubmission(repository.db.QueryRow(context, query, taskID, studentID), s); err != nil {
		return nil, dberr.Wrap(err, "find_submission")
	}
	return s, nil
}

func (repository *PostgresRepository) ListForStudent(context context.Context, studentID string) ([]*StudentTask, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, %s, c.%s
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		JOIN %s c ON c.%s = t.%s
		WHERE s.%s = $1
		ORDER BY t.%s ASC
	`,
		schema.CoreTask.ID, schema.CoreTask.ClassID, schema.CoreTask.Title, schema.CoreTask.Description,
		schema.CoreTask.DueDate, schema.CoreTask.CreatedBy, schema.CoreTask.CreatedAt,
		submissionColumns("s"), schema.CoreClass.ClassName,
		schema.CoreSubmission.Table,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreSubmission.TaskID,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreTask.ClassID,
		schema.CoreSubmission.StudentID,
		schema.CoreTask.DueDate,
	)

	rows, err := repository.db.Query(context, query, studentID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tasks_for_student")
	}
	defer rows.Close()

	tasks := make([]*StudentTask, 0)
	for rows.Next() {
		st := &StudentTask{}
		if err := rows.Scan(
			&st.Task.ID, &st.Task.ClassID, &st.Task.Title, &st.Task.Description,
			&st.Task.DueDate, &st.Task.CreatedBy, &st.Task.CreatedAt,
			&st.Submission.ID, &st.Submission.TaskID, &st.Submission.StudentID, &st.Submission.Status,
			&st.Submission.Text, &st.Submission.Link, &st.Submission.SubmittedAt,
			&st.Submission.Remarks, &st.Submission.ReviewedBy, &st.Submission.CreatedAt, &st.Submission.UpdatedAt,
			&st.ClassName,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_student_task")
		}
		tasks = append(tasks, st)
	}

	return tasks, rows.Err()
}

func (repository *PostgresRepository) Submit(context context.Context, submissionID string, text, link *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW(), %s = NOW()
		WHERE %s = $1
	`,
		schema.CoreSubmission.Table,
		schema.CoreSubmission.SubmissionText, schema.CoreSubmission.SubmissionLink,
		schema.CoreSubmission.Status, schema.CoreSubmission.SubmittedAt, schema.CoreSubmission.UpdatedAt,
		schema.CoreSubmission.ID,
	)

	cmd, err := repository.db.Exec(context, query, submissionID, text, link, StatusSubmitted)
	if err != nil {
		return dberr.Wrap(err, "submit_task")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Review(context context.Context, submissionID string, status Status, remarks *string, reviewedBy string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
	`,
		schema.CoreSubmission.Table,
		schema.CoreSubmission.Status, schema.CoreSubmission.Remarks,
		schema.CoreSubmission.ReviewedBy, schema.CoreSubmission.UpdatedAt,
		schema.CoreSubmission.ID,
	)

	cmd, err := repository.db.Exec(context, query, submissionID, status, remarks, reviewedBy)
	if err != nil {
		return dberr.Wrap(err, "review_submission")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ReviewQueue(context context.Context, teacherID string) ([]*ReviewEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.%s, t.%s
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		JOIN %s c ON c.%s = t.%s
		JOIN %s p ON p.%s = s.%s
		WHERE c.%s = $1 AND s.%s = $2
		ORDER BY s.%s ASC
	`,
		submissionColumns("s"), schema.UserProfile.Name, schema.CoreTask.Title,
		schema.CoreSubmission.Table,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreSubmission.TaskID,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreTask.ClassID,
		schema.UserProfile.Table, schema.UserProfile.ID, schema.CoreSubmission.StudentID,
		schema.CoreClass.TeacherID, schema.CoreSubmission.Status,
		schema.CoreSubmission.SubmittedAt,
	)

	rows, err := repository.db.Query(context, query, teacherID, StatusSubmitted)
	if err != nil {
		return nil, dberr.Wrap(err, "review_queue")
	}
	defer rows.Close()

	entries := make([]*ReviewEntry, 0)
	for rows.Next() {
		entry := &ReviewEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.TaskID, &entry.StudentID, &entry.Status, &entry.Text, &entry.Link,
			&entry.SubmittedAt, &entry.Remarks, &entry.ReviewedBy, &entry.CreatedAt, &entry.UpdatedAt,
			&entry.StudentName, &entry.TaskTitle,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_review_entry")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
