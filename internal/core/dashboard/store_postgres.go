package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/core/attendance"
	"github.com/jaferpilakkal/tuition-lms/internal/core/task"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/database/schema"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/sec"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Student(context context.Context, studentID string) (*StudentDashboard, error) {
	board := &StudentDashboard{
		OverdueTasks:    make([]OverdueItem, 0),
		UpcomingLessons: make([]LessonItem, 0),
	}

	if err := repository.studentAttendance(context, studentID, &board.Attendance); err != nil {
		return nil, err
	}
	if err := repository.studentTaskCounts(context, studentID, &board.Tasks); err != nil {
		return nil, err
	}

	var err error
	if board.OverdueTasks, err = repository.studentOverdue(context, studentID); err != nil {
		return nil, err
	}
	if board.UpcomingLessons, err = repository.studentUpcoming(context, studentID); err != nil {
		return nil, err
	}
	return board, nil
}

func (repository *PostgresRepository) studentAttendance(context context.Context, studentID string, summary *AttendanceSummary) error {
	query := fmt.Sprintf(`
		SELECT count(*), count(*) FILTER (WHERE %s = $2)
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreAttendance.Status,
		schema.CoreAttendance.Table,
		schema.CoreAttendance.StudentID,
	)

	err := repository.db.QueryRow(context, query, studentID, attendance.StatusPresent).
		Scan(&summary.TotalMarked, &summary.Present)
	if err != nil {
		return dberr.Wrap(err, "dashboard_attendance")
	}
	if summary.TotalMarked > 0 {
		summary.Percentage = float64(summary.Present) / float64(summary.TotalMarked) * 100
	}
	return nil
}

func (repository *PostgresRepository) studentTaskCounts(context context.Context, studentID string, counts *TaskCounts) error {
	query := fmt.Sprintf(`
		SELECT count(*) FILTER (WHERE s.%s = $2),
		       count(*) FILTER (WHERE s.%s <> $2),
		       count(*) FILTER (WHERE s.%s <> $2 AND t.%s < CURRENT_DATE)
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		WHERE s.%s = $1
	`,
		schema.CoreSubmission.Status, schema.CoreSubmission.Status,
		schema.CoreSubmission.Status, schema.CoreTask.DueDate,
		schema.CoreSubmission.Table,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreSubmission.TaskID,
		schema.CoreSubmission.StudentID,
	)

	err := repository.db.QueryRow(context, query, studentID, task.StatusCompleted).
		Scan(&counts.Completed, &counts.Pending, &counts.Overdue)
	return dberr.Wrap(err, "dashboard_task_counts")
}

func (repository *PostgresRepository) studentOverdue(context context.Context, studentID string) ([]OverdueItem, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, c.%s, t.%s
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		JOIN %s c ON c.%s = t.%s
		WHERE s.%s = $1 AND s.%s <> $2 AND t.%s < CURRENT_DATE
		ORDER BY t.%s ASC
		LIMIT 5
	`,
		schema.CoreTask.ID, schema.CoreTask.Title, schema.CoreClass.ClassName, schema.CoreTask.DueDate,
		schema.CoreSubmission.Table,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreSubmission.TaskID,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreTask.ClassID,
		schema.CoreSubmission.StudentID, schema.CoreSubmission.Status, schema.CoreTask.DueDate,
		schema.CoreTask.DueDate,
	)

	rows, err := repository.db.Query(context, query, studentID, task.StatusCompleted)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_overdue")
	}
	defer rows.Close()

	items := make([]OverdueItem, 0)
	for rows.Next() {
		var item OverdueItem
		if err := rows.Scan(&item.TaskID, &item.Title, &item.ClassName, &item.DueDate); err != nil {
			return nil, dberr.Wrap(err, "scan_overdue_item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func lessonItemQuery() string {
	return fmt.Sprintf(`
		SELECT l.%s, c.%s, c.%s, l.%s, l.%s, l.%s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
	`,
		schema.CoreLesson.ID, schema.CoreClass.ClassName, schema.CoreClass.Subject,
		schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime, schema.CoreLesson.LiveLink,
		schema.CoreLesson.Table,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreLesson.ClassID,
	)
}

func (repository *PostgresRepository) listLessonItems(context context.Context, query, action string, args ...any) ([]LessonItem, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	items := make([]LessonItem, 0)
	for rows.Next() {
		var item LessonItem
		if err := rows.Scan(
			&item.LessonID, &item.ClassName, &item.Subject,
			&item.LessonDate, &item.LessonTime, &item.LiveLink,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_lesson_item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *PostgresRepository) studentUpcoming(context context.Context, studentID string) ([]LessonItem, error) {
	query := lessonItemQuery() + fmt.Sprintf(`
		WHERE l.%s IN (SELECT e.%s FROM %s e WHERE e.%s = $1 AND e.%s = TRUE)
		  AND l.%s >= CURRENT_DATE AND l.%s = FALSE
		ORDER BY l.%s ASC, l.%s ASC
		LIMIT 5
	`,
		schema.CoreLesson.ClassID, schema.CoreEnrollment.ClassID, schema.CoreEnrollment.Table,
		schema.CoreEnrollment.StudentID, schema.CoreEnrollment.IsActive,
		schema.CoreLesson.LessonDate, schema.CoreLesson.IsCompleted,
		schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime,
	)
	return repository.listLessonItems(context, query, "dashboard_upcoming_lessons", studentID)
}

func (repository *PostgresRepository) Teacher(context context.Context, teacherID string) (*TeacherDashboard, error) {
	board := &TeacherDashboard{
		TodaysLessons: make([]LessonItem, 0),
		Classes:       make([]ClassCompletion, 0),
	}

	todayQuery := lessonItemQuery() + fmt.Sprintf(`
		WHERE c.%s = $1 AND l.%s = CURRENT_DATE
		ORDER BY l.%s ASC
	`,
		schema.CoreClass.TeacherID, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime,
	)

	var err error
	if board.TodaysLessons, err = repository.listLessonItems(context, todayQuery, "dashboard_todays_lessons", teacherID); err != nil {
		return nil, err
	}
	if board.AwaitingReview, err = repository.pendingReviews(context, &teacherID); err != nil {
		return nil, err
	}
	if board.Classes, err = repository.teacherCompletion(context, teacherID); err != nil {
		return nil, err
	}
	return board, nil
}

// pendingReviews counts submitted-but-unreviewed work; a nil teacherID counts
// across all classes.
func (repository *PostgresRepository) pendingReviews(context context.Context, teacherID *string) (int, error) {
	query := fmt.Sprintf(`
		SELECT count(*)
		FROM %s s
		JOIN %s t ON t.%s = s.%s
		JOIN %s c ON c.%s = t.%s
		WHERE s.%s = $1 AND ($2::uuid IS NULL OR c.%s = $2)
	`,
		schema.CoreSubmission.Table,
		schema.CoreTask.Table, schema.CoreTask.ID, schema.CoreSubmission.TaskID,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreTask.ClassID,
		schema.CoreSubmission.Status, schema.CoreClass.TeacherID,
	)

	var count int
	err := repository.db.QueryRow(context, query, task.StatusSubmitted, teacherID).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "dashboard_pending_reviews")
	}
	return count, nil
}

func (repository *PostgresRepository) teacherCompletion(context context.Context, teacherID string) ([]ClassCompletion, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, count(s.%s), count(*) FILTER (WHERE s.%s = $2)
		FROM %s c
		LEFT JOIN %s t ON t.%s = c.%s
		LEFT JOIN %s s ON s.%s = t.%s
		WHERE c.%s = $1 AND c.%s = TRUE
		GROUP BY c.%s, c.%s
		ORDER BY c.%s ASC
	`,
		schema.CoreClass.ID, schema.CoreClass.ClassName, schema.CoreSubmission.ID, schema.CoreSubmission.Status,
		schema.CoreClass.Table,
		schema.CoreTask.Table, schema.CoreTask.ClassID, schema.CoreClass.ID,
		schema.CoreSubmission.Table, schema.CoreSubmission.TaskID, schema.CoreTask.ID,
		schema.CoreClass.TeacherID, schema.CoreClass.IsActive,
		schema.CoreClass.ID, schema.CoreClass.ClassName,
		schema.CoreClass.ClassName,
	)

	rows, err := repository.db.Query(context, query, teacherID, task.StatusCompleted)
	if err != nil {
		return nil, dberr.Wrap(err, "dashboard_class_completion")
	}
	defer rows.Close()

	classes := make([]ClassCompletion, 0)
	for rows.Next() {
		var completion ClassCompletion
		if err := rows.Scan(&completion.ClassID, &completion.ClassName, &completion.Submissions, &completion.Completed); err != nil {
			return nil, dberr.Wrap(err, "scan_class_completion")
		}
		if completion.Submissions > 0 {
			completion.CompletionRate = float64(completion.Completed) / float64(completion.Submissions) * 100
		}
		classes = append(classes, completion)
	}
	return classes, rows.Err()
}

func (repository *PostgresRepository) Admin(context context.Context) (*AdminDashboard, error) {
	board := &AdminDashboard{}

	profileQuery := fmt.Sprintf(`
		SELECT count(*) FILTER (WHERE %s = $1), count(*) FILTER (WHERE %s = $2)
		FROM %s
		WHERE %s = TRUE
	`,
		schema.UserProfile.Role, schema.UserProfile.Role,
		schema.UserProfile.Table,
		schema.UserProfile.IsActive,
	)
	if err := repository.db.QueryRow(context, profileQuery, sec.RoleStudent, sec.RoleTeacher).
		Scan(&board.ActiveStudents, &board.ActiveTeachers); err != nil {
		return nil, dberr.Wrap(err, "dashboard_profile_counts")
	}

	classQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = TRUE`,
		schema.CoreClass.Table, schema.CoreClass.IsActive,
	)
	if err := repository.db.QueryRow(context, classQuery).Scan(&board.ActiveClasses); err != nil {
		return nil, dberr.Wrap(err, "dashboard_class_count")
	}

	var err error
	if board.PendingReviews, err = repository.pendingReviews(context, nil); err != nil {
		return nil, err
	}
	return board, nil
}
