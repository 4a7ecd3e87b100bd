package lesson

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaferpilakkal/tuition-lms/internal/platform/database/schema"
	"github.com/jaferpilakkal/tuition-lms/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) GetLesson(context context.Context, id string) (*Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreLesson.ID, schema.CoreLesson.ClassID, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime,
		schema.CoreLesson.LiveLink, schema.CoreLesson.IsCompleted, schema.CoreLesson.CreatedBy, schema.CoreLesson.CreatedAt,
		schema.CoreLesson.Table, schema.CoreLesson.ID,
	)

	l := &Lesson{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&l.ID, &l.ClassID, &l.LessonDate, &l.LessonTime, &l.LiveLink, &l.IsCompleted, &l.CreatedBy, &l.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_lesson")
	}
	return l, nil
}

func (repository *PostgresRepository) CreateLesson(context context.Context, l *Lesson) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING %s
	`,
		schema.CoreLesson.Table,
		schema.CoreLesson.ID, schema.CoreLesson.ClassID, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime,
		schema.CoreLesson.LiveLink, schema.CoreLesson.IsCompleted, schema.CoreLesson.CreatedBy, schema.CoreLesson.CreatedAt,
		schema.CoreLesson.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		l.ID, l.ClassID, l.LessonDate, l.LessonTime, l.LiveLink, l.IsCompleted, l.CreatedBy,
	).Scan(&l.CreatedAt)
	return dberr.Wrap(err, "create_lesson")
}

// detailQuery selects lessons joined to their class. The extra WHERE tail is
// appended by each caller.
func detailQuery() string {
	return fmt.Sprintf(`
		SELECT l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, l.%s, c.%s, c.%s
		FROM %s l
		JOIN %s c ON c.%s = l.%s
	`,
		schema.CoreLesson.ID, schema.CoreLesson.ClassID, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime,
		schema.CoreLesson.LiveLink, schema.CoreLesson.IsCompleted, schema.CoreLesson.CreatedBy, schema.CoreLesson.CreatedAt,
		schema.CoreClass.ClassName, schema.CoreClass.Subject,
		schema.CoreLesson.Table,
		schema.CoreClass.Table, schema.CoreClass.ID, schema.CoreLesson.ClassID,
	)
}

func windowClause(window Window) string {
	switch window {
	case WindowUpcoming:
		return fmt.Sprintf(" AND l.%s >= CURRENT_DATE ORDER BY l.%s ASC, l.%s ASC",
			schema.CoreLesson.LessonDate, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime)
	case WindowPast:
		return fmt.Sprintf(" AND l.%s < CURRENT_DATE ORDER BY l.%s DESC, l.%s DESC",
			schema.CoreLesson.LessonDate, schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime)
	default:
		return fmt.Sprintf(" ORDER BY l.%s DESC, l.%s DESC",
			schema.CoreLesson.LessonDate, schema.CoreLesson.LessonTime)
	}
}

func (repository *PostgresRepository) ListForTeacher(context context.Context, teacherID string, window Window) ([]*Detail, error) {
	query := detailQuery() + fmt.Sprintf(" WHERE c.%s = $1", schema.CoreClass.TeacherID) + windowClause(window)
	return repository.listDetails(context, query, "list_lessons_for_teacher", teacherID)
}

func (repository *PostgresRepository) ListForClass(context context.Context, classID string, window Window) ([]*Detail, error) {
	query := detailQuery() + fmt.Sprintf(" WHERE l.%s = $1", schema.CoreLesson.ClassID) + windowClause(window)
	return repository.listDetails(context, query, "list_lessons_for_class", classID)
}

func (repository *PostgresRepository) ListForStudent(context context.Context, studentID string, window Window) ([]*Detail, error) {
	query := detailQuery() + fmt.Sprintf(
		` WHERE l.%s IN (SELECT e.%s FROM %s e WHERE e.%s = $1 AND e.%s = TRUE)`,
		schema.CoreLesson.ClassID, schema.CoreEnrollment.ClassID, schema.CoreEnrollment.Table,
		schema.CoreEnrollment.StudentID, schema.CoreEnrollment.IsActive,
	) + windowClause(window)
	return repository.listDetails(context, query, "list_lessons_for_student", studentID)
}

func (repository *PostgresRepository) listDetails(context context.Context, query, action string, args ...any) ([]*Detail, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	details := make([]*Detail, 0)
	for rows.Next() {
		d := &Detail{}
		if err := rows.Scan(
			&d.ID, &d.ClassID, &d.LessonDate, &d.LessonTime, &d.LiveLink, &d.IsCompleted,
			&d.CreatedBy, &d.CreatedAt, &d.ClassName, &d.Subject,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_lesson")
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

func (repository *PostgresRepository) SetCompleted(context context.Context, id string, isCompleted bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CoreLesson.Table, schema.CoreLesson.IsCompleted, schema.CoreLesson.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, isCompleted)
	if err != nil {
		return dberr.Wrap(err, "set_lesson_completed")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
